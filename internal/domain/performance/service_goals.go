package performance

import (
	"context"
	"errors"
	"strings"
)

type GoalService struct {
	store GoalStore
}

func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{store: store}
}

func (s *GoalService) Get(ctx context.Context, id string) (Goal, error) {
	return s.store.GetGoal(ctx, id)
}

func (s *GoalService) List(ctx context.Context, filter GoalFilter) ([]Goal, error) {
	return s.store.ListGoals(ctx, filter)
}

// ListByEmployeePeriod returns the employee's goals in a period, earliest due date first.
func (s *GoalService) ListByEmployeePeriod(ctx context.Context, employeeID, periodID string) ([]Goal, error) {
	if err := requireScope(employeeID, periodID); err != nil {
		return nil, err
	}
	return s.store.ListGoals(ctx, GoalFilter{EmployeeID: employeeID, PeriodID: periodID})
}

func (s *GoalService) Create(ctx context.Context, in GoalInput, createdBy string) (Goal, error) {
	goal := normalizeGoalInput(in, createdBy)
	if in.Weight == nil {
		return Goal{}, invalid("weightPercent", "is required")
	}
	if err := validateGoal(goal); err != nil {
		return Goal{}, err
	}

	created, err := s.store.InsertGoal(ctx, goal)
	if errors.Is(err, errUnknownPeriod) {
		return Goal{}, invalid("periodId", "does not reference an existing period")
	}
	if err != nil {
		return Goal{}, err
	}
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, id string, upd GoalUpdate) (Goal, error) {
	current, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return Goal{}, err
	}
	goal := applyGoalUpdate(current, upd)
	if err := validateGoal(goal); err != nil {
		return Goal{}, err
	}
	return s.store.UpdateGoal(ctx, goal)
}

// ChangeStatus sets status and completion together; any status may follow any other.
func (s *GoalService) ChangeStatus(ctx context.Context, id, status string, completion *float64) (Goal, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	verr := &ValidationError{}
	if !contains(GoalStatuses, status) {
		verr.add("status", "must be one of "+strings.Join(GoalStatuses, ", "))
	}
	if completion != nil {
		rounded := round2(*completion)
		completion = &rounded
		if reason := percentProblem(rounded); reason != "" {
			verr.add("completionPercent", reason)
		}
	}
	if err := verr.orNil(); err != nil {
		return Goal{}, err
	}
	return s.store.SetGoalStatus(ctx, id, status, completion)
}

func (s *GoalService) Delete(ctx context.Context, id string) (Goal, error) {
	return s.store.DeleteGoal(ctx, id)
}

func (s *GoalService) ComputeWeightedAchievement(ctx context.Context, employeeID, periodID string) (Achievement, error) {
	goals, err := s.ListByEmployeePeriod(ctx, employeeID, periodID)
	if err != nil {
		return Achievement{}, err
	}
	achievement := WeightedAchievement(goals)
	achievement.EmployeeID = employeeID
	achievement.PeriodID = periodID
	return achievement, nil
}

// SummaryByEmployee counts goals per status across every period.
func (s *GoalService) SummaryByEmployee(ctx context.Context, employeeID string) (GoalSummary, error) {
	if strings.TrimSpace(employeeID) == "" {
		return GoalSummary{}, invalid("employeeId", "is required")
	}
	goals, err := s.store.ListGoals(ctx, GoalFilter{EmployeeID: employeeID})
	if err != nil {
		return GoalSummary{}, err
	}
	return buildGoalSummary(employeeID, goals), nil
}

func requireScope(employeeID, periodID string) error {
	verr := &ValidationError{}
	if strings.TrimSpace(employeeID) == "" {
		verr.add("employeeId", "is required")
	}
	if strings.TrimSpace(periodID) == "" {
		verr.add("periodId", "is required")
	}
	return verr.orNil()
}
