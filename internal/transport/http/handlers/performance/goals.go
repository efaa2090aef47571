package performancehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/performance"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

type goalPayload struct {
	EmployeeID   string   `json:"employeeId"`
	PeriodID     string   `json:"periodId"`
	Description  *string  `json:"description"`
	Weight       *float64 `json:"weightPercent"`
	DueDate      *string  `json:"dueDate"`
	Status       *string  `json:"status"`
	Completion   *float64 `json:"completionPercent"`
	Observations *string  `json:"observations"`
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	goals, err := h.Service.Goals.List(r.Context(), performance.GoalFilter{
		EmployeeID: query.Get("employeeId"),
		PeriodID:   query.Get("periodId"),
	})
	if err != nil {
		h.writeError(w, r, err, "goal_list_failed")
		return
	}
	if goals == nil {
		goals = []performance.Goal{}
	}
	api.Success(w, goals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.Service.Goals.Get(r.Context(), chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, r, err, "goal_get_failed")
		return
	}
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload goalPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	in := performance.GoalInput{
		EmployeeID:   payload.EmployeeID,
		PeriodID:     payload.PeriodID,
		Description:  deref(payload.Description),
		Weight:       payload.Weight,
		Status:       deref(payload.Status),
		Completion:   payload.Completion,
		Observations: deref(payload.Observations),
	}
	if due := deref(payload.DueDate); due != "" {
		in.DueDate, _ = v.Date("dueDate", due)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	goal, err := h.Service.Goals.Create(r.Context(), in, user.UserID)
	if err != nil {
		h.writeError(w, r, err, "goal_create_failed")
		return
	}
	h.count("goal", "created")
	h.record(r, "performance.goal.create", "goal", goal.ID, nil, goal)
	api.Created(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalID")
	var payload goalPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	upd := performance.GoalUpdate{
		Description:  payload.Description,
		Weight:       payload.Weight,
		Status:       payload.Status,
		Completion:   payload.Completion,
		Observations: payload.Observations,
	}
	if payload.DueDate != nil {
		if parsed, ok := v.Date("dueDate", *payload.DueDate); ok {
			upd.DueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	before, err := h.Service.Goals.Get(r.Context(), goalID)
	if err != nil {
		h.writeError(w, r, err, "goal_update_failed")
		return
	}
	goal, err := h.Service.Goals.Update(r.Context(), goalID, upd)
	if err != nil {
		h.writeError(w, r, err, "goal_update_failed")
		return
	}
	h.count("goal", "updated")
	h.record(r, "performance.goal.update", "goal", goal.ID, before, goal)
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChangeGoalStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status     string   `json:"status"`
		Completion *float64 `json:"completionPercent"`
	}
	if !decode(w, r, &payload) {
		return
	}

	goalID := chi.URLParam(r, "goalID")
	before, err := h.Service.Goals.Get(r.Context(), goalID)
	if err != nil {
		h.writeError(w, r, err, "goal_status_failed")
		return
	}
	goal, err := h.Service.Goals.ChangeStatus(r.Context(), goalID, payload.Status, payload.Completion)
	if err != nil {
		h.writeError(w, r, err, "goal_status_failed")
		return
	}
	h.count("goal", "status_changed")
	h.record(r, "performance.goal.status", "goal", goal.ID, before, goal)
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.Service.Goals.Delete(r.Context(), chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeError(w, r, err, "goal_delete_failed")
		return
	}
	h.count("goal", "deleted")
	h.record(r, "performance.goal.delete", "goal", goal.ID, goal, nil)
	api.Success(w, goal, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGoalAchievement(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	achievement, err := h.Service.Goals.ComputeWeightedAchievement(r.Context(), query.Get("employeeId"), query.Get("periodId"))
	if err != nil {
		h.writeError(w, r, err, "goal_achievement_failed")
		return
	}
	api.Success(w, achievement, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGoalSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Goals.SummaryByEmployee(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		h.writeError(w, r, err, "goal_summary_failed")
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
