package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"offboarding-service/internal/errs"
	"offboarding-service/internal/models"
)

const selectColumns = `id, full_name, employee_id, email, department, position, last_work_day,
	personal_email, phone_number, alternate_contact_name, alternate_contact_number,
	current_address, current_projects, project_status, handover_person,
	resignation_reason, other_reason_details, feedback, would_recommend,
	assets, laptop_serial, phone_serial, monitor_serial, access_card_number,
	additional_assets, status, submission_date, updated_at`

// OffboardingRepository stores offboarding requests in PostgreSQL.
// Every statement uses bound parameters.
type OffboardingRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewOffboardingRepository returns a repository over pool. now decides the
// submission time and the calendar day used for duplicate detection; nil
// means time.Now.
func NewOffboardingRepository(pool *pgxpool.Pool, now func() time.Time) *OffboardingRepository {
	if now == nil {
		now = time.Now
	}
	return &OffboardingRepository{pool: pool, now: now}
}

// Create stores a new request with status Pending and returns its id.
//
// The duplicate check and the insert are separate statements, so two
// identical submissions racing each other can both be stored.
func (r *OffboardingRepository) Create(ctx context.Context, req *models.OffboardingRequest) (int64, error) {
	now := r.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var duplicate bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM offboarding_requests
			WHERE employee_id = $1 AND email = $2
			  AND submission_date >= $3 AND submission_date < $4
		)`,
		req.EmployeeID, req.Email, dayStart, dayStart.AddDate(0, 0, 1),
	).Scan(&duplicate); err != nil {
		return 0, errors.Wrap(err, "check duplicate submission")
	}
	if duplicate {
		return 0, errs.ErrDuplicateSubmission
	}

	lastWorkDay, err := time.Parse(models.DateLayout, req.LastWorkDay)
	if err != nil {
		return 0, errors.Wrap(err, "parse last work day")
	}

	assets := req.Assets
	if assets == nil {
		assets = []models.Asset{}
	}
	assetsJSON, err := json.Marshal(assets)
	if err != nil {
		return 0, errors.Wrap(err, "encode assets")
	}

	var id int64
	if err := r.pool.QueryRow(ctx,
		`INSERT INTO offboarding_requests (
			full_name, employee_id, email, department, position, last_work_day,
			personal_email, phone_number, alternate_contact_name, alternate_contact_number,
			current_address, current_projects, project_status, handover_person,
			resignation_reason, other_reason_details, feedback, would_recommend,
			assets, laptop_serial, phone_serial, monitor_serial, access_card_number,
			additional_assets, status, submission_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING id`,
		req.FullName, req.EmployeeID, req.Email, req.Department, req.Position, lastWorkDay,
		req.PersonalEmail, req.PhoneNumber, req.AlternateContactName, req.AlternateContactNumber,
		req.CurrentAddress, req.CurrentProjects, req.ProjectStatus, req.HandoverPerson,
		req.ResignationReason, req.OtherReasonDetails, req.Feedback, req.WouldRecommend,
		assetsJSON, req.LaptopSerial, req.PhoneSerial, req.MonitorSerial, req.AccessCardNumber,
		req.AdditionalAssets, string(models.StatusPending), now,
	).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert offboarding request")
	}
	return id, nil
}

// List returns requests whose full name or department contains search,
// ignoring case. status filters exactly unless it is "All".
func (r *OffboardingRepository) List(ctx context.Context, search, status string) ([]models.OffboardingRequest, error) {
	q := `SELECT ` + selectColumns + ` FROM offboarding_requests
		WHERE (full_name ILIKE $1 OR department ILIKE $1)`
	args := []any{"%" + escapeLike(search) + "%"}

	if status != models.StatusFilterAll {
		q += ` AND status = $2`
		args = append(args, status)
	}
	q += ` ORDER BY submission_date DESC, id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query offboarding requests")
	}
	defer rows.Close()

	list := make([]models.OffboardingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate offboarding requests")
	}
	return list, nil
}

// GetByID returns a single request or errs.ErrNotFound.
func (r *OffboardingRepository) GetByID(ctx context.Context, id int64) (*models.OffboardingRequest, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM offboarding_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(errs.ErrNotFound, "offboarding request %d", id)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus approves or rejects a request and stamps updated_at.
func (r *OffboardingRepository) UpdateStatus(ctx context.Context, id int64, status models.Status) (int64, error) {
	if !status.IsDecision() {
		return 0, errs.ErrInvalidStatus
	}

	var updatedID int64
	err := r.pool.QueryRow(ctx,
		`UPDATE offboarding_requests
		 SET status = $1, updated_at = $2
		 WHERE id = $3
		 RETURNING id`,
		string(status), r.now(), id,
	).Scan(&updatedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errors.Wrapf(errs.ErrNotFound, "offboarding request %d", id)
	}
	if err != nil {
		return 0, errors.Wrap(err, "update offboarding status")
	}
	return updatedID, nil
}

// DeleteAll removes every request and returns how many were deleted.
func (r *OffboardingRepository) DeleteAll(ctx context.Context) (int64, error) {
	ct, err := r.pool.Exec(ctx, `DELETE FROM offboarding_requests`)
	if err != nil {
		return 0, errors.Wrap(err, "delete offboarding requests")
	}
	return ct.RowsAffected(), nil
}

// Ping checks that a pooled connection can reach the database.
func (r *OffboardingRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanRequest(row pgx.Row) (*models.OffboardingRequest, error) {
	var (
		req         models.OffboardingRequest
		lastWorkDay time.Time
		status      string
	)
	err := row.Scan(
		&req.ID, &req.FullName, &req.EmployeeID, &req.Email, &req.Department, &req.Position, &lastWorkDay,
		&req.PersonalEmail, &req.PhoneNumber, &req.AlternateContactName, &req.AlternateContactNumber,
		&req.CurrentAddress, &req.CurrentProjects, &req.ProjectStatus, &req.HandoverPerson,
		&req.ResignationReason, &req.OtherReasonDetails, &req.Feedback, &req.WouldRecommend,
		&req.Assets, &req.LaptopSerial, &req.PhoneSerial, &req.MonitorSerial, &req.AccessCardNumber,
		&req.AdditionalAssets, &status, &req.SubmissionDate, &req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan offboarding request")
	}

	req.LastWorkDay = lastWorkDay.Format(models.DateLayout)
	req.Status = models.Status(status)
	if req.Assets == nil {
		req.Assets = []models.Asset{}
	}
	return &req, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
