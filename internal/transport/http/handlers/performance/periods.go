package performancehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/performance"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

type periodPayload struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.Periods.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "period_list_failed")
		return
	}
	if periods == nil {
		periods = []performance.Period{}
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Service.Periods.Get(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.writeError(w, r, err, "period_get_failed")
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleActivePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Service.Periods.Active(r.Context())
	if errors.Is(err, performance.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "no_active_period", "no active evaluation period covers today", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		h.writeError(w, r, err, "period_active_failed")
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload periodPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	in := performance.PeriodInput{Active: payload.Active}
	if payload.Name != nil {
		in.Name = *payload.Name
	}
	if payload.Type != nil {
		in.Type = *payload.Type
	}
	if payload.Description != nil {
		in.Description = *payload.Description
	}
	if payload.StartDate != nil && *payload.StartDate != "" {
		in.StartDate, _ = v.Date("startDate", *payload.StartDate)
	}
	if payload.EndDate != nil && *payload.EndDate != "" {
		in.EndDate, _ = v.Date("endDate", *payload.EndDate)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	period, err := h.Service.Periods.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "period_create_failed")
		return
	}
	h.count("period", "created")
	h.record(r, "performance.period.create", "evaluation_period", period.ID, nil, period)
	api.Created(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	var payload periodPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	upd := performance.PeriodUpdate{
		Name:        payload.Name,
		Type:        payload.Type,
		Description: payload.Description,
		Active:      payload.Active,
	}
	if payload.StartDate != nil {
		if parsed, ok := v.Date("startDate", *payload.StartDate); ok {
			upd.StartDate = &parsed
		}
	}
	if payload.EndDate != nil {
		if parsed, ok := v.Date("endDate", *payload.EndDate); ok {
			upd.EndDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	before, err := h.Service.Periods.Get(r.Context(), periodID)
	if err != nil {
		h.writeError(w, r, err, "period_update_failed")
		return
	}
	period, err := h.Service.Periods.Update(r.Context(), periodID, upd)
	if err != nil {
		h.writeError(w, r, err, "period_update_failed")
		return
	}
	h.count("period", "updated")
	h.record(r, "performance.period.update", "evaluation_period", period.ID, before, period)
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeletePeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Service.Periods.Delete(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.writeError(w, r, err, "period_delete_failed")
		return
	}
	h.count("period", "deleted")
	h.record(r, "performance.period.delete", "evaluation_period", period.ID, period, nil)
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetPeriodActive(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Active *bool `json:"active"`
	}
	if !decode(w, r, &payload) {
		return
	}
	if payload.Active == nil {
		shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "active", Reason: "is required"}})
		return
	}

	period, err := h.Service.Periods.SetActive(r.Context(), chi.URLParam(r, "periodID"), *payload.Active)
	if err != nil {
		h.writeError(w, r, err, "period_activate_failed")
		return
	}
	h.record(r, "performance.period.set_active", "evaluation_period", period.ID, nil, map[string]bool{"active": period.Active})
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}
