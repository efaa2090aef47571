package performancehandler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrrecords/internal/domain/performance"
	"hrrecords/internal/transport/http/api"
	"hrrecords/internal/transport/http/middleware"
	"hrrecords/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type scoresPayload struct {
	QualityOfWork      *float64 `json:"qualityOfWork"`
	Productivity       *float64 `json:"productivity"`
	TechnicalKnowledge *float64 `json:"technicalKnowledge"`
	Teamwork           *float64 `json:"teamwork"`
	Communication      *float64 `json:"communication"`
	Leadership         *float64 `json:"leadership"`
	Responsibility     *float64 `json:"responsibility"`
	Initiative         *float64 `json:"initiative"`
}

func (p scoresPayload) input() performance.ScoreInput {
	return performance.ScoreInput{
		QualityOfWork:      p.QualityOfWork,
		Productivity:       p.Productivity,
		TechnicalKnowledge: p.TechnicalKnowledge,
		Teamwork:           p.Teamwork,
		Communication:      p.Communication,
		Leadership:         p.Leadership,
		Responsibility:     p.Responsibility,
		Initiative:         p.Initiative,
	}
}

type evaluationPayload struct {
	EmployeeID              string        `json:"employeeId"`
	PeriodID                string        `json:"periodId"`
	Type                    string        `json:"type"`
	EvaluationDate          *string       `json:"evaluationDate"`
	Scores                  scoresPayload `json:"scores"`
	AchievementPercent      *float64      `json:"achievementPercent"`
	Strengths               *string       `json:"strengths"`
	ImprovementAreas        *string       `json:"improvementAreas"`
	GeneralComments         *string       `json:"generalComments"`
	RequiresImprovementPlan *bool         `json:"requiresImprovementPlan"`
	ImprovementPlan         *string       `json:"improvementPlan"`
	FollowUpDate            *string       `json:"followUpDate"`
	Status                  *string       `json:"status"`
}

func (h *Handler) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	evaluations, err := h.Service.Evaluations.List(r.Context(), performance.EvaluationFilter{
		EmployeeID: query.Get("employeeId"),
		PeriodID:   query.Get("periodId"),
		Type:       strings.ToLower(query.Get("type")),
		Status:     strings.ToLower(query.Get("status")),
	})
	if err != nil {
		h.writeError(w, r, err, "evaluation_list_failed")
		return
	}
	if evaluations == nil {
		evaluations = []performance.Evaluation{}
	}
	api.Success(w, evaluations, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	eval, err := h.Service.Evaluations.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		h.writeError(w, r, err, "evaluation_get_failed")
		return
	}
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEvaluation(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload evaluationPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	in := performance.EvaluationInput{
		EmployeeID:         payload.EmployeeID,
		PeriodID:           payload.PeriodID,
		Type:               payload.Type,
		EvaluationDate:     optionalDate(v, "evaluationDate", payload.EvaluationDate),
		Scores:             payload.Scores.input(),
		AchievementPercent: payload.AchievementPercent,
		Strengths:          deref(payload.Strengths),
		ImprovementAreas:   deref(payload.ImprovementAreas),
		GeneralComments:    deref(payload.GeneralComments),
		ImprovementPlan:    deref(payload.ImprovementPlan),
		FollowUpDate:       optionalDate(v, "followUpDate", payload.FollowUpDate),
		Status:             deref(payload.Status),
	}
	if payload.RequiresImprovementPlan != nil {
		in.RequiresImprovementPlan = *payload.RequiresImprovementPlan
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	eval, err := h.Service.Evaluations.Create(r.Context(), in, user.UserID)
	if err != nil {
		h.writeError(w, r, err, "evaluation_create_failed")
		return
	}
	h.count("evaluation", "created")
	h.record(r, "performance.evaluation.create", "evaluation", eval.ID, nil, eval)
	api.Created(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluationID := chi.URLParam(r, "evaluationID")
	var payload evaluationPayload
	if !decode(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	upd := performance.EvaluationUpdate{
		EvaluationDate:          optionalDate(v, "evaluationDate", payload.EvaluationDate),
		Scores:                  payload.Scores.input(),
		AchievementPercent:      payload.AchievementPercent,
		Strengths:               payload.Strengths,
		ImprovementAreas:        payload.ImprovementAreas,
		GeneralComments:         payload.GeneralComments,
		RequiresImprovementPlan: payload.RequiresImprovementPlan,
		ImprovementPlan:         payload.ImprovementPlan,
		FollowUpDate:            optionalDate(v, "followUpDate", payload.FollowUpDate),
		Status:                  payload.Status,
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	before, err := h.Service.Evaluations.Get(r.Context(), evaluationID)
	if err != nil {
		h.writeError(w, r, err, "evaluation_update_failed")
		return
	}
	eval, err := h.Service.Evaluations.Update(r.Context(), evaluationID, upd)
	if err != nil {
		h.writeError(w, r, err, "evaluation_update_failed")
		return
	}
	h.count("evaluation", "updated")
	h.record(r, "performance.evaluation.update", "evaluation", eval.ID, before, eval)
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApproveEvaluation(w http.ResponseWriter, r *http.Request) {
	eval, err := h.Service.Evaluations.Approve(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		h.writeError(w, r, err, "evaluation_approve_failed")
		return
	}
	h.count("evaluation", "approved")
	h.record(r, "performance.evaluation.approve", "evaluation", eval.ID, nil, map[string]string{"status": eval.Status})
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEvaluation(w http.ResponseWriter, r *http.Request) {
	eval, err := h.Service.Evaluations.Delete(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		h.writeError(w, r, err, "evaluation_delete_failed")
		return
	}
	h.count("evaluation", "deleted")
	h.record(r, "performance.evaluation.delete", "evaluation", eval.ID, eval, nil)
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCalculateAchievement(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID string `json:"employeeId"`
		PeriodID   string `json:"periodId"`
	}
	if !decode(w, r, &payload) {
		return
	}

	achievement, err := h.Service.Evaluations.CalculateAchievementFromGoals(r.Context(), payload.EmployeeID, payload.PeriodID)
	if err != nil {
		h.writeError(w, r, err, "achievement_failed")
		return
	}
	api.Success(w, achievement, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEvaluationPDF(w http.ResponseWriter, r *http.Request) {
	eval, err := h.Service.Evaluations.Get(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		h.writeError(w, r, err, "evaluation_pdf_failed")
		return
	}

	var buf bytes.Buffer
	if err := performance.WriteEvaluationPDF(&buf, eval); err != nil {
		h.writeError(w, r, err, "evaluation_pdf_failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=evaluation-%s.pdf", eval.ID))
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) handleEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.Evaluations.EmployeeHistory(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.writeError(w, r, err, "history_failed")
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeHistoryXLSX(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	history, err := h.Service.Evaluations.EmployeeHistory(r.Context(), employeeID)
	if err != nil {
		h.writeError(w, r, err, "history_export_failed")
		return
	}

	var buf bytes.Buffer
	if err := performance.WriteHistoryXLSX(&buf, history); err != nil {
		h.writeError(w, r, err, "history_export_failed")
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=evaluations-%s.xlsx", employeeID))
	_, _ = w.Write(buf.Bytes())
}
