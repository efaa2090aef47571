package performance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type EvaluationService struct {
	store EvaluationStore
	goals *GoalService
	now   func() time.Time
}

func NewEvaluationService(store EvaluationStore, goals *GoalService) *EvaluationService {
	return &EvaluationService{store: store, goals: goals, now: time.Now}
}

func (s *EvaluationService) Get(ctx context.Context, id string) (Evaluation, error) {
	return s.store.GetEvaluation(ctx, id)
}

func (s *EvaluationService) List(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error) {
	return s.store.ListEvaluations(ctx, filter)
}

func (s *EvaluationService) Create(ctx context.Context, in EvaluationInput, evaluatorID string) (Evaluation, error) {
	eval, err := normalizeEvaluationInput(in, evaluatorID, s.now())
	if err != nil {
		return Evaluation{}, err
	}
	if eval.PeriodID != nil {
		existingID, err := s.store.FindEvaluationID(ctx, eval.EmployeeID, *eval.PeriodID, eval.Type)
		if err != nil {
			return Evaluation{}, err
		}
		if existingID != "" {
			return Evaluation{}, &DuplicateError{EvaluationID: existingID}
		}
	}

	created, err := s.store.InsertEvaluation(ctx, eval)
	switch {
	case errors.Is(err, errDuplicateConstraint):
		existingID, findErr := s.store.FindEvaluationID(ctx, eval.EmployeeID, *eval.PeriodID, eval.Type)
		if findErr != nil {
			return Evaluation{}, findErr
		}
		if existingID == "" {
			return Evaluation{}, fmt.Errorf("duplicate evaluation vanished after constraint violation: %w", errDuplicateConstraint)
		}
		return Evaluation{}, &DuplicateError{EvaluationID: existingID}
	case errors.Is(err, errUnknownPeriod):
		return Evaluation{}, invalid("periodId", "does not reference an existing period")
	case err != nil:
		return Evaluation{}, err
	}
	return created, nil
}

// Update applies a partial change and recomputes the total score. Employee,
// period and type are fixed at creation.
func (s *EvaluationService) Update(ctx context.Context, id string, upd EvaluationUpdate) (Evaluation, error) {
	current, err := s.store.GetEvaluation(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	eval, err := applyEvaluationUpdate(current, upd)
	if err != nil {
		return Evaluation{}, err
	}
	return s.store.UpdateEvaluation(ctx, eval)
}

// Approve marks the evaluation approved whatever its current status.
func (s *EvaluationService) Approve(ctx context.Context, id string) (Evaluation, error) {
	return s.store.ApproveEvaluation(ctx, id)
}

func (s *EvaluationService) Delete(ctx context.Context, id string) (Evaluation, error) {
	return s.store.DeleteEvaluation(ctx, id)
}

// HistoryForEmployee lists every evaluation of the employee, newest first.
func (s *EvaluationService) HistoryForEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, invalid("employeeId", "is required")
	}
	return s.store.ListEvaluations(ctx, EvaluationFilter{EmployeeID: employeeID})
}

// StatisticsForEmployee aggregates approved evaluations only.
func (s *EvaluationService) StatisticsForEmployee(ctx context.Context, employeeID string) (EvaluationStatistics, error) {
	if strings.TrimSpace(employeeID) == "" {
		return EvaluationStatistics{}, invalid("employeeId", "is required")
	}
	samples, err := s.store.ApprovedScores(ctx, employeeID)
	if err != nil {
		return EvaluationStatistics{}, err
	}
	return buildEvaluationStatistics(samples), nil
}

func (s *EvaluationService) EmployeeHistory(ctx context.Context, employeeID string) (EmployeeHistory, error) {
	history := EmployeeHistory{EmployeeID: employeeID}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		evaluations, err := s.HistoryForEmployee(gctx, employeeID)
		history.Evaluations = evaluations
		return err
	})
	g.Go(func() error {
		stats, err := s.StatisticsForEmployee(gctx, employeeID)
		history.Statistics = stats
		return err
	})
	if err := g.Wait(); err != nil {
		return EmployeeHistory{}, err
	}
	if history.Evaluations == nil {
		history.Evaluations = []Evaluation{}
	}
	return history, nil
}

// CalculateAchievementFromGoals returns the weighted goal achievement for the
// caller to apply to an evaluation.
func (s *EvaluationService) CalculateAchievementFromGoals(ctx context.Context, employeeID, periodID string) (Achievement, error) {
	achievement, err := s.goals.ComputeWeightedAchievement(ctx, employeeID, periodID)
	if err != nil {
		return Achievement{}, err
	}
	if achievement.TotalGoals == 0 {
		return Achievement{}, fmt.Errorf("%w: no goals registered for this period", ErrComputation)
	}
	return achievement, nil
}
