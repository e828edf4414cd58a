package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"offboarding-service/internal/errs"
	"offboarding-service/internal/middleware"
	"offboarding-service/internal/models"
	"offboarding-service/internal/validation"
)

// OffboardingStore is the persistence used by OffboardingHandler.
// *repository.OffboardingRepository implements it.
type OffboardingStore interface {
	Create(ctx context.Context, req *models.OffboardingRequest) (int64, error)
	List(ctx context.Context, search, status string) ([]models.OffboardingRequest, error)
	GetByID(ctx context.Context, id int64) (*models.OffboardingRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.Status) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type OffboardingHandler struct {
	store OffboardingStore
	log   *zap.Logger
}

func NewOffboardingHandler(store OffboardingStore, log *zap.Logger) *OffboardingHandler {
	return &OffboardingHandler{store: store, log: log}
}

// POST /api/offboarding
func (h *OffboardingHandler) CreateRequest(c *gin.Context) {
	var in models.OffboardingSubmission
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, "create", errs.ErrInvalidInput)
		return
	}

	if res := validation.Validate(in); !res.Valid() {
		h.respondError(c, "create", &errs.ValidationError{Field: res.Field, Message: res.Message})
		return
	}

	req := in.ToRequest()
	id, err := h.store.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, "create", err)
		return
	}

	h.logger(c).Info("offboarding request submitted",
		zap.Int64("id", id),
		zap.String("employee_id", req.EmployeeID),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Offboarding request submitted successfully",
		"id":      id,
	})
}

// GET /api/offboarding?search=&status=
func (h *OffboardingHandler) ListRequests(c *gin.Context) {
	search := c.Query("search")
	status := c.DefaultQuery("status", models.StatusFilterAll)

	list, err := h.store.List(c.Request.Context(), search, status)
	if err != nil {
		h.respondError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/offboarding/:id
func (h *OffboardingHandler) GetRequestByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.respondError(c, "get", errs.ErrNotFound)
		return
	}

	req, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// PUT /api/offboarding/:id
func (h *OffboardingHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status models.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !in.Status.IsDecision() {
		h.respondError(c, "update_status", errs.ErrInvalidStatus)
		return
	}

	id, ok := parseID(c)
	if !ok {
		h.respondError(c, "update_status", errs.ErrNotFound)
		return
	}

	updatedID, err := h.store.UpdateStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		h.respondError(c, "update_status", err)
		return
	}

	h.logger(c).Info("offboarding request status changed",
		zap.Int64("id", updatedID),
		zap.String("status", string(in.Status)),
	)
	c.JSON(http.StatusOK, gin.H{
		"message": "Request " + strings.ToLower(string(in.Status)) + " successfully",
		"id":      updatedID,
	})
}

// DELETE /api/offboarding
func (h *OffboardingHandler) DeleteAllRequests(c *gin.Context) {
	n, err := h.store.DeleteAll(c.Request.Context())
	if err != nil {
		h.respondError(c, "delete_all", err)
		return
	}

	h.logger(c).Warn("all offboarding requests deleted", zap.Int64("deleted", n))
	c.JSON(http.StatusOK, gin.H{"message": "All offboarding requests deleted successfully"})
}

// GET /health
func (h *OffboardingHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger(c).Error("health check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "db_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError writes the public form of err. Unexpected errors are logged
// in full; the client only sees the generic message.
func (h *OffboardingHandler) respondError(c *gin.Context, op string, err error) {
	httpErr := errs.FromError(err)
	if httpErr.IsInternal() {
		h.logger(c).Error("offboarding request failed", zap.String("op", op), zap.Error(err))
	}
	c.JSON(httpErr.Status, httpErr)
}

func (h *OffboardingHandler) logger(c *gin.Context) *zap.Logger {
	return middleware.GetLogger(c, h.log)
}

// Ids that are not positive integers can't match a row.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
