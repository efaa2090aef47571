package performancehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/audit"
	"hrrecords/internal/domain/auth"
	"hrrecords/internal/domain/performance"
	"hrrecords/internal/requestctx"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

// DomainRecorder counts performance mutations by entity and outcome.
type DomainRecorder interface {
	Domain(entity, outcome string)
}

type Handler struct {
	Service *performance.Service
	Perms   middleware.PermissionStore
	Audit   audit.Recorder
	Metrics DomainRecorder
	// Verbose exposes internal error text in 500 responses.
	Verbose bool
}

func NewHandler(service *performance.Service, perms middleware.PermissionStore, auditSvc audit.Recorder, metrics DomainRecorder) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc, Metrics: metrics}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermPerformanceRead, h.Perms)
	write := middleware.RequirePermission(auth.PermPerformanceWrite, h.Perms)
	review := middleware.RequirePermission(auth.PermPerformanceReview, h.Perms)
	approve := middleware.RequirePermission(auth.PermPerformanceApprove, h.Perms)
	admin := middleware.RequirePermission(auth.PermPerformanceAdmin, h.Perms)

	r.Route("/performance", func(r chi.Router) {
		r.With(read).Get("/periods", h.handleListPeriods)
		r.With(admin).Post("/periods", h.handleCreatePeriod)
		r.With(read).Get("/periods/active", h.handleActivePeriod)
		r.With(read).Get("/periods/{periodID}", h.handleGetPeriod)
		r.With(admin).Put("/periods/{periodID}", h.handleUpdatePeriod)
		r.With(admin).Delete("/periods/{periodID}", h.handleDeletePeriod)
		r.With(admin).Put("/periods/{periodID}/active", h.handleSetPeriodActive)

		r.With(read).Get("/goals", h.handleListGoals)
		r.With(write).Post("/goals", h.handleCreateGoal)
		r.With(read).Get("/goals/achievement", h.handleGoalAchievement)
		r.With(read).Get("/goals/summary", h.handleGoalSummary)
		r.With(read).Get("/goals/{goalID}", h.handleGetGoal)
		r.With(write).Put("/goals/{goalID}", h.handleUpdateGoal)
		r.With(write).Delete("/goals/{goalID}", h.handleDeleteGoal)
		r.With(write).Put("/goals/{goalID}/status", h.handleChangeGoalStatus)

		r.With(read).Get("/evaluations", h.handleListEvaluations)
		r.With(review).Post("/evaluations", h.handleCreateEvaluation)
		r.With(read).Post("/evaluations/achievement", h.handleCalculateAchievement)
		r.With(read).Get("/evaluations/{evaluationID}", h.handleGetEvaluation)
		r.With(review).Put("/evaluations/{evaluationID}", h.handleUpdateEvaluation)
		r.With(admin).Delete("/evaluations/{evaluationID}", h.handleDeleteEvaluation)
		r.With(approve).Post("/evaluations/{evaluationID}/approve", h.handleApproveEvaluation)
		r.With(read).Get("/evaluations/{evaluationID}/pdf", h.handleEvaluationPDF)

		r.With(read).Get("/employees/{employeeID}/history", h.handleEmployeeHistory)
		r.With(read).Get("/employees/{employeeID}/history.xlsx", h.handleEmployeeHistoryXLSX)
	})
}

// decode reads a JSON body, answering 400/413 itself when it cannot.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
		return false
	}
	api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
	return false
}

// optionalDate parses a nullable date field. A present but empty string clears the value.
func optionalDate(v *shared.Validator, field string, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	if strings.TrimSpace(*raw) == "" {
		cleared := time.Time{}
		return &cleared
	}
	parsed, ok := v.Date(field, *raw)
	if !ok {
		return nil
	}
	return &parsed
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, code string) {
	requestID := middleware.GetRequestID(r.Context())

	var verr *performance.ValidationError
	var overlap *performance.OverlapError
	var duplicate *performance.DuplicateError
	switch {
	case errors.As(err, &verr):
		issues := make([]shared.ValidationIssue, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			issues = append(issues, shared.ValidationIssue{Field: issue.Field, Reason: issue.Reason})
		}
		shared.FailValidation(w, requestID, issues)
	case errors.As(err, &overlap):
		h.count("period", "overlap")
		api.FailWithDetails(w, http.StatusConflict, "period_overlap", "evaluation period overlaps an existing period",
			map[string]any{"conflictingPeriodId": overlap.PeriodID}, requestID)
	case errors.As(err, &duplicate):
		h.count("evaluation", "duplicate")
		api.FailWithDetails(w, http.StatusConflict, "evaluation_duplicate", "an evaluation already exists for this employee, period and type",
			map[string]any{"existingEvaluationId": duplicate.EvaluationID}, requestID)
	case errors.Is(err, performance.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
	case errors.Is(err, performance.ErrPeriodInUse):
		api.Fail(w, http.StatusConflict, "period_in_use", "evaluation period still has goals", requestID)
	case errors.Is(err, performance.ErrComputation):
		api.Fail(w, http.StatusUnprocessableEntity, "achievement_unavailable", err.Error(), requestID)
	default:
		requestctx.Logger(r.Context()).Error("performance request failed", "code", code, "path", r.URL.Path, "err", err)
		message := "internal server error"
		if h.Verbose {
			message = err.Error()
		}
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}

func (h *Handler) count(entity, outcome string) {
	if h.Metrics != nil {
		h.Metrics.Domain(entity, outcome)
	}
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	actor := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actor = user.UserID
	}
	err := h.Audit.Record(r.Context(), audit.Entry{
		ActorID:    actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         middleware.ClientIP(r),
		Before:     before,
		After:      after,
	})
	if err != nil {
		requestctx.Logger(r.Context()).Warn("audit "+action+" failed", "err", err)
	}
}
