package performance

import (
	"strings"
	"time"
)

// Defaults for every entity are applied here and nowhere else.

func normalizePeriodInput(in PeriodInput) Period {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return Period{
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.ToLower(strings.TrimSpace(in.Type)),
		StartDate:   DateOnly(in.StartDate),
		EndDate:     DateOnly(in.EndDate),
		Description: strings.TrimSpace(in.Description),
		Active:      active,
	}
}

func applyPeriodUpdate(current Period, upd PeriodUpdate) Period {
	out := current
	if upd.Name != nil {
		out.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Type != nil {
		out.Type = strings.ToLower(strings.TrimSpace(*upd.Type))
	}
	if upd.StartDate != nil {
		out.StartDate = DateOnly(*upd.StartDate)
	}
	if upd.EndDate != nil {
		out.EndDate = DateOnly(*upd.EndDate)
	}
	if upd.Description != nil {
		out.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Active != nil {
		out.Active = *upd.Active
	}
	return out
}

func validatePeriod(p Period) error {
	verr := &ValidationError{}
	if p.Name == "" {
		verr.add("name", "is required")
	}
	if !contains(PeriodTypes, p.Type) {
		verr.add("type", "must be one of "+strings.Join(PeriodTypes, ", "))
	}
	if p.StartDate.IsZero() {
		verr.add("startDate", "is required")
	}
	if p.EndDate.IsZero() {
		verr.add("endDate", "is required")
	}
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.After(p.StartDate) {
		verr.add("endDate", "must be after startDate")
	}
	return verr.orNil()
}

func normalizeGoalInput(in GoalInput, createdBy string) Goal {
	goal := Goal{
		EmployeeID:   strings.TrimSpace(in.EmployeeID),
		PeriodID:     strings.TrimSpace(in.PeriodID),
		Description:  strings.TrimSpace(in.Description),
		DueDate:      DateOnly(in.DueDate),
		Status:       strings.ToLower(strings.TrimSpace(in.Status)),
		Observations: strings.TrimSpace(in.Observations),
		CreatedBy:    createdBy,
	}
	if goal.Status == "" {
		goal.Status = GoalStatusPending
	}
	if in.Weight != nil {
		goal.Weight = round2(*in.Weight)
	}
	if in.Completion != nil {
		goal.Completion = round2(*in.Completion)
	}
	return goal
}

func applyGoalUpdate(current Goal, upd GoalUpdate) Goal {
	out := current
	if upd.Description != nil {
		out.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Weight != nil {
		out.Weight = round2(*upd.Weight)
	}
	if upd.DueDate != nil {
		out.DueDate = DateOnly(*upd.DueDate)
	}
	if upd.Status != nil {
		out.Status = strings.ToLower(strings.TrimSpace(*upd.Status))
	}
	if upd.Completion != nil {
		out.Completion = round2(*upd.Completion)
	}
	if upd.Observations != nil {
		out.Observations = strings.TrimSpace(*upd.Observations)
	}
	return out
}

func validateGoal(g Goal) error {
	verr := &ValidationError{}
	if g.EmployeeID == "" {
		verr.add("employeeId", "is required")
	}
	if g.PeriodID == "" {
		verr.add("periodId", "is required")
	}
	if g.Description == "" {
		verr.add("description", "is required")
	}
	if reason := percentProblem(g.Weight); reason != "" {
		verr.add("weightPercent", reason)
	}
	if reason := percentProblem(g.Completion); reason != "" {
		verr.add("completionPercent", reason)
	}
	if g.DueDate.IsZero() {
		verr.add("dueDate", "is required")
	}
	if !contains(GoalStatuses, g.Status) {
		verr.add("status", "must be one of "+strings.Join(GoalStatuses, ", "))
	}
	return verr.orNil()
}

func normalizeEvaluationInput(in EvaluationInput, evaluatorID string, now time.Time) (Evaluation, error) {
	if err := ValidateScores(in.Scores); err != nil {
		return Evaluation{}, err
	}
	scores, err := completeScores(in.Scores)
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{
		EmployeeID:              strings.TrimSpace(in.EmployeeID),
		EvaluatorID:             strings.TrimSpace(evaluatorID),
		Type:                    strings.ToLower(strings.TrimSpace(in.Type)),
		EvaluationDate:          now.UTC(),
		Scores:                  scores,
		TotalScore:              TotalScore(scores),
		Strengths:               strings.TrimSpace(in.Strengths),
		ImprovementAreas:        strings.TrimSpace(in.ImprovementAreas),
		GeneralComments:         strings.TrimSpace(in.GeneralComments),
		RequiresImprovementPlan: in.RequiresImprovementPlan,
		ImprovementPlan:         strings.TrimSpace(in.ImprovementPlan),
		Status:                  strings.ToLower(strings.TrimSpace(in.Status)),
	}
	if periodID := strings.TrimSpace(in.PeriodID); periodID != "" {
		eval.PeriodID = &periodID
	}
	if in.EvaluationDate != nil && !in.EvaluationDate.IsZero() {
		eval.EvaluationDate = in.EvaluationDate.UTC()
	}
	if in.AchievementPercent != nil {
		eval.AchievementPercent = round2(*in.AchievementPercent)
	}
	if in.FollowUpDate != nil && !in.FollowUpDate.IsZero() {
		followUp := DateOnly(*in.FollowUpDate)
		eval.FollowUpDate = &followUp
	}
	if eval.Status == "" {
		eval.Status = EvaluationStatusCompleted
	}
	return eval, validateEvaluation(eval)
}

func applyEvaluationUpdate(current Evaluation, upd EvaluationUpdate) (Evaluation, error) {
	if err := ValidateScores(upd.Scores); err != nil {
		return Evaluation{}, err
	}
	out := current
	out.Scores = MergeScores(current.Scores, upd.Scores)
	out.TotalScore = TotalScore(out.Scores)
	if upd.EvaluationDate != nil && !upd.EvaluationDate.IsZero() {
		out.EvaluationDate = upd.EvaluationDate.UTC()
	}
	if upd.AchievementPercent != nil {
		out.AchievementPercent = round2(*upd.AchievementPercent)
	}
	if upd.Strengths != nil {
		out.Strengths = strings.TrimSpace(*upd.Strengths)
	}
	if upd.ImprovementAreas != nil {
		out.ImprovementAreas = strings.TrimSpace(*upd.ImprovementAreas)
	}
	if upd.GeneralComments != nil {
		out.GeneralComments = strings.TrimSpace(*upd.GeneralComments)
	}
	if upd.RequiresImprovementPlan != nil {
		out.RequiresImprovementPlan = *upd.RequiresImprovementPlan
	}
	if upd.ImprovementPlan != nil {
		out.ImprovementPlan = strings.TrimSpace(*upd.ImprovementPlan)
	}
	if upd.FollowUpDate != nil {
		if upd.FollowUpDate.IsZero() {
			out.FollowUpDate = nil
		} else {
			followUp := DateOnly(*upd.FollowUpDate)
			out.FollowUpDate = &followUp
		}
	}
	if upd.Status != nil {
		out.Status = strings.ToLower(strings.TrimSpace(*upd.Status))
	}
	return out, validateEvaluation(out)
}

func validateEvaluation(e Evaluation) error {
	verr := &ValidationError{}
	if e.EmployeeID == "" {
		verr.add("employeeId", "is required")
	}
	if e.EvaluatorID == "" {
		verr.add("evaluatorId", "is required")
	}
	if !contains(EvaluationTypes, e.Type) {
		verr.add("type", "must be one of "+strings.Join(EvaluationTypes, ", "))
	}
	if !contains(EvaluationStatuses, e.Status) {
		verr.add("status", "must be one of "+strings.Join(EvaluationStatuses, ", "))
	}
	if reason := percentProblem(e.AchievementPercent); reason != "" {
		verr.add("achievementPercent", reason)
	}
	return verr.orNil()
}
