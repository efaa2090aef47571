package performance

const (
	PeriodTypeTrial18Days = "trial_18_days"
	PeriodTypeQuarterly   = "quarterly"
	PeriodTypeSemiannual  = "semiannual"
	PeriodTypeAnnual      = "annual"

	GoalStatusPending    = "pending"
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusNotMet     = "not_met"
	GoalStatusCancelled  = "cancelled"

	EvaluationTypeCompetencySkills  = "competency_skills"
	EvaluationTypeContractExtension = "contract_extension"

	EvaluationStatusCompleted  = "completed"
	EvaluationStatusApproved   = "approved"
	EvaluationStatusPending    = "pending"
	EvaluationStatusInProgress = "in_progress"
	EvaluationStatusCancelled  = "cancelled"
)

const (
	MinCriterionScore = 1.0
	MaxCriterionScore = 5.0
	CriterionStep     = 0.5
)

var PeriodTypes = []string{
	PeriodTypeTrial18Days,
	PeriodTypeQuarterly,
	PeriodTypeSemiannual,
	PeriodTypeAnnual,
}

var GoalStatuses = []string{
	GoalStatusPending,
	GoalStatusInProgress,
	GoalStatusCompleted,
	GoalStatusNotMet,
	GoalStatusCancelled,
}

var EvaluationTypes = []string{
	EvaluationTypeCompetencySkills,
	EvaluationTypeContractExtension,
}

var EvaluationStatuses = []string{
	EvaluationStatusCompleted,
	EvaluationStatusApproved,
	EvaluationStatusPending,
	EvaluationStatusInProgress,
	EvaluationStatusCancelled,
}
