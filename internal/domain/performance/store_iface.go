package performance

import "context"

type PeriodStore interface {
	ListPeriods(ctx context.Context) ([]Period, error)
	GetPeriod(ctx context.Context, id string) (Period, error)
	InsertPeriod(ctx context.Context, period Period) (Period, error)
	UpdatePeriod(ctx context.Context, period Period) (Period, error)
	DeletePeriod(ctx context.Context, id string) (Period, error)
	SetPeriodActive(ctx context.Context, id string, active bool) (Period, error)
}

type GoalStore interface {
	ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, error)
	GetGoal(ctx context.Context, id string) (Goal, error)
	InsertGoal(ctx context.Context, goal Goal) (Goal, error)
	UpdateGoal(ctx context.Context, goal Goal) (Goal, error)
	SetGoalStatus(ctx context.Context, id, status string, completion *float64) (Goal, error)
	DeleteGoal(ctx context.Context, id string) (Goal, error)
}

type EvaluationStore interface {
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)
	GetEvaluation(ctx context.Context, id string) (Evaluation, error)
	FindEvaluationID(ctx context.Context, employeeID, periodID, evalType string) (string, error)
	InsertEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error)
	UpdateEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error)
	ApproveEvaluation(ctx context.Context, id string) (Evaluation, error)
	DeleteEvaluation(ctx context.Context, id string) (Evaluation, error)
	ApprovedScores(ctx context.Context, employeeID string) ([]ScoreSample, error)
}

type StoreAPI interface {
	PeriodStore
	GoalStore
	EvaluationStore
}
