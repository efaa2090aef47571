package performance

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type PeriodService struct {
	store PeriodStore
	now   func() time.Time
}

func NewPeriodService(store PeriodStore) *PeriodService {
	return &PeriodService{store: store, now: time.Now}
}

func (s *PeriodService) List(ctx context.Context) ([]Period, error) {
	return s.store.ListPeriods(ctx)
}

func (s *PeriodService) Get(ctx context.Context, id string) (Period, error) {
	return s.store.GetPeriod(ctx, id)
}

func (s *PeriodService) Create(ctx context.Context, in PeriodInput) (Period, error) {
	period := normalizePeriodInput(in)
	if err := validatePeriod(period); err != nil {
		return Period{}, err
	}
	if err := s.checkOverlap(ctx, period); err != nil {
		return Period{}, err
	}

	created, err := s.store.InsertPeriod(ctx, period)
	if errors.Is(err, errOverlapConstraint) {
		return Period{}, s.lostOverlapRace(ctx, period)
	}
	if err != nil {
		return Period{}, err
	}
	return created, nil
}

func (s *PeriodService) Update(ctx context.Context, id string, upd PeriodUpdate) (Period, error) {
	current, err := s.store.GetPeriod(ctx, id)
	if err != nil {
		return Period{}, err
	}
	period := applyPeriodUpdate(current, upd)
	if err := validatePeriod(period); err != nil {
		return Period{}, err
	}
	if err := s.checkOverlap(ctx, period); err != nil {
		return Period{}, err
	}

	updated, err := s.store.UpdatePeriod(ctx, period)
	if errors.Is(err, errOverlapConstraint) {
		return Period{}, s.lostOverlapRace(ctx, period)
	}
	if err != nil {
		return Period{}, err
	}
	return updated, nil
}

func (s *PeriodService) Delete(ctx context.Context, id string) (Period, error) {
	return s.store.DeletePeriod(ctx, id)
}

func (s *PeriodService) SetActive(ctx context.Context, id string, active bool) (Period, error) {
	return s.store.SetPeriodActive(ctx, id, active)
}

// Active returns the active period covering today, or ErrNotFound.
func (s *PeriodService) Active(ctx context.Context) (Period, error) {
	periods, err := s.store.ListPeriods(ctx)
	if err != nil {
		return Period{}, err
	}
	period, ok := ActivePeriod(periods, s.now())
	if !ok {
		return Period{}, ErrNotFound
	}
	return period, nil
}

func (s *PeriodService) checkOverlap(ctx context.Context, candidate Period) error {
	existing, err := s.store.ListPeriods(ctx)
	if err != nil {
		return err
	}
	if conflict, ok := FindOverlap(existing, candidate.StartDate, candidate.EndDate, candidate.ID); ok {
		return &OverlapError{PeriodID: conflict.ID}
	}
	return nil
}

// lostOverlapRace resolves the conflicting id after the exclusion constraint
// rejected a write that passed the scan.
func (s *PeriodService) lostOverlapRace(ctx context.Context, candidate Period) error {
	if err := s.checkOverlap(ctx, candidate); err != nil {
		return err
	}
	return fmt.Errorf("overlapping period vanished after constraint violation: %w", errOverlapConstraint)
}
