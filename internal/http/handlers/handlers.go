package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/campuspulse/console/internal/feedback"
	"github.com/campuspulse/console/internal/models"
	"github.com/campuspulse/console/internal/service"
)

type Handler struct {
	Session   *service.Session
	Board     *service.Board
	Poller    *service.Poller
	Gateway   *service.Gateway
	Validator *validator.Validate
	Logger    zerolog.Logger
	AdminKey  string
	AdminUser string
	AdminPass string
}

func (h *Handler) Healthz(c *gin.Context) {
	state := h.Session.State()
	if state.Link == service.LinkError {
		writeError(c, http.StatusServiceUnavailable, "LINK_DOWN", "Feedback service link interrupted", state)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login is a plain credential comparison, per the original system. The
// returned token is the shared admin key the middleware checks.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	if req.Username != h.AdminUser || req.Password != h.AdminPass {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "token": h.AdminKey})
}

// Dashboard renders every projection plus the filtered feed from the
// current snapshot. Optional q and role query params update the session
// filters before rendering.
func (h *Handler) Dashboard(c *gin.Context) {
	if q, ok := c.GetQuery("q"); ok {
		h.Session.SetSearch(q)
	}
	if role, ok := c.GetQuery("role"); ok {
		h.Session.SetRole(role)
	}

	state := h.Session.State()
	snap, hasData := h.Session.Snapshot()
	if !hasData && state.Link == service.LinkError {
		writeError(c, http.StatusServiceUnavailable, "LINK_DOWN", "Feedback service link interrupted", state)
		return
	}

	search, role := h.Session.Filters()
	c.JSON(http.StatusOK, gin.H{
		"state": state,
		"summary": gin.H{
			"total":           snap.Total,
			"unique_students": snap.UniqueStudents,
			"resolved_count":  snap.ResolvedCount,
			"resolution_rate": service.ResolutionRate(snap),
			"ai_summary":      snap.AISummary,
		},
		"charts": gin.H{
			"sentiment":  service.SentimentDistribution(snap),
			"trend":      service.TemporalTrend(snap),
			"geo":        service.GeoDistribution(snap),
			"categories": service.CategoryDistribution(snap),
		},
		"feed": service.FilterFeed(snap.RecentFeed, search, role),
	})
}

func (h *Handler) SessionState(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.State())
}

type ViewRequest struct {
	View string `json:"view" validate:"required"`
}

func (h *Handler) SetView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Session.SetView(service.View(req.View)); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, h.Session.State())
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	var sub feedback.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Gateway.SubmitRecord(c.Request.Context(), sub); err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) UploadFeedback(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}
	count, err := h.Gateway.SubmitBatch(c.Request.Context(), file)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": count})
}

type ResolveRequest struct {
	Note string `json:"note"`
}

func (h *Handler) ResolveFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid feedback id", c.Param("id"))
		return
	}
	var req ResolveRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.Gateway.ResolveRecord(c.Request.Context(), id, req.Note); err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type EscalateRequest struct {
	RecordID int64 `json:"record_id" validate:"required"`
}

// EscalateTask creates a board task from a record in the current feed. The
// task is local to this console and never reported back to the service.
func (h *Handler) EscalateTask(c *gin.Context) {
	var req EscalateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	snap, ok := h.Session.Snapshot()
	if !ok {
		writeError(c, http.StatusConflict, "NO_SNAPSHOT", "No snapshot loaded yet", nil)
		return
	}
	for _, rec := range snap.RecentFeed {
		if rec.ID == req.RecordID {
			task := h.Board.Escalate(rec)
			c.JSON(http.StatusCreated, task)
			return
		}
	}
	writeError(c, http.StatusNotFound, "NOT_FOUND", "Record not in current feed", req.RecordID)
}

func (h *Handler) TasksList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"todo":  h.Board.TasksByStatus(models.TaskTodo),
		"doing": h.Board.TasksByStatus(models.TaskDoing),
		"done":  h.Board.TasksByStatus(models.TaskDone),
	})
}

type AdvanceRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) AdvanceTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid task id", c.Param("id"))
		return
	}
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	switch err := h.Board.Advance(id, models.TaskStatus(req.Status)); {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown task status", req.Status)
	case errors.Is(err, service.ErrTaskNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Task not found", id)
	case err != nil:
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Failed to advance task", err.Error())
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func (h *Handler) RemoveTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid task id", c.Param("id"))
		return
	}
	if err := h.Board.Remove(id); err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Task not found", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeMutationError maps the gateway error taxonomy onto HTTP responses.
// Service rejection details are passed through verbatim.
func (h *Handler) writeMutationError(c *gin.Context, err error) {
	var localErr *service.ValidationError
	var svcErr *feedback.ServiceValidationError
	var connErr *feedback.ConnectivityError
	switch {
	case errors.As(err, &localErr):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", localErr.Reason, nil)
	case errors.As(err, &svcErr):
		writeError(c, http.StatusUnprocessableEntity, "SERVICE_REJECTED", svcErr.Detail, nil)
	case errors.As(err, &connErr):
		writeError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Feedback service unreachable", connErr.Error())
	default:
		h.Logger.Error().Err(err).Msg("mutation failed")
		writeError(c, http.StatusInternalServerError, "INTERNAL", "Mutation failed", err.Error())
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
