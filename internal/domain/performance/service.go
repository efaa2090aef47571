package performance

import "time"

// Service bundles the three performance components over one store.
type Service struct {
	Periods     *PeriodService
	Goals       *GoalService
	Evaluations *EvaluationService
}

func NewService(store StoreAPI) *Service {
	goals := NewGoalService(store)
	return &Service{
		Periods:     NewPeriodService(store),
		Goals:       goals,
		Evaluations: NewEvaluationService(store, goals),
	}
}

// WithClock swaps the time source used for "today" and default evaluation dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.Periods.now = now
	s.Evaluations.now = now
	return s
}
