package handlers_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"offboarding-service/internal/errs"
	"offboarding-service/internal/models"
)

// fakeStore keeps requests in memory and mirrors the repository's rules.
type fakeStore struct {
	mu     sync.Mutex
	now    time.Time
	nextID int64
	rows   []models.OffboardingRequest
	// failWith makes every call return this error when set.
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{now: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)}
}

func (s *fakeStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *fakeStore) Create(_ context.Context, req *models.OffboardingRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}

	y, m, d := s.now.Date()
	for _, row := range s.rows {
		ry, rm, rd := row.SubmissionDate.Date()
		if row.EmployeeID == req.EmployeeID && row.Email == req.Email && ry == y && rm == m && rd == d {
			return 0, errs.ErrDuplicateSubmission
		}
	}

	s.nextID++
	row := *req
	row.ID = s.nextID
	row.Status = models.StatusPending
	row.SubmissionDate = s.now
	s.rows = append(s.rows, row)
	return row.ID, nil
}

func (s *fakeStore) List(_ context.Context, search, status string) ([]models.OffboardingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	term := strings.ToLower(search)
	list := make([]models.OffboardingRequest, 0)
	for _, row := range s.rows {
		if !strings.Contains(strings.ToLower(row.FullName), term) && !strings.Contains(strings.ToLower(row.Department), term) {
			continue
		}
		if status != models.StatusFilterAll && string(row.Status) != status {
			continue
		}
		list = append(list, row)
	}
	return list, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*models.OffboardingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, row := range s.rows {
		if row.ID == id {
			found := row
			return &found, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *fakeStore) UpdateStatus(_ context.Context, id int64, status models.Status) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	if !status.IsDecision() {
		return 0, errs.ErrInvalidStatus
	}

	for i := range s.rows {
		if s.rows[i].ID == id {
			updated := s.now
			s.rows[i].Status = status
			s.rows[i].UpdatedAt = &updated
			return id, nil
		}
	}
	return 0, errs.ErrNotFound
}

func (s *fakeStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}

	n := int64(len(s.rows))
	s.rows = nil
	return n, nil
}

func (s *fakeStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failWith
}
