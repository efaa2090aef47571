package performance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memStore mimics the Postgres schema constraints closely enough to drive the services.
type memStore struct {
	mu         sync.Mutex
	seq        int
	periods    map[string]Period
	goals      map[string]Goal
	evals      map[string]Evaluation
	users      map[string]string
	staleLists int
	staleFinds int
	// phantomConflicts makes inserts fail on a constraint whose row is gone.
	phantomConflicts int
}

var _ StoreAPI = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		periods: map[string]Period{},
		goals:   map[string]Goal{},
		evals:   map[string]Evaluation{},
		users:   map[string]string{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) ListPeriods(_ context.Context) ([]Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleLists > 0 {
		m.staleLists--
		return nil, nil
	}
	out := make([]Period, 0, len(m.periods))
	for _, p := range m.periods {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m *memStore) GetPeriod(_ context.Context, id string) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return Period{}, ErrNotFound
	}
	return p, nil
}

func (m *memStore) violatesExclusion(p Period) bool {
	for _, existing := range m.periods {
		if existing.ID != p.ID && Overlaps(existing.StartDate, existing.EndDate, p.StartDate, p.EndDate) {
			return true
		}
	}
	return false
}

func (m *memStore) InsertPeriod(_ context.Context, p Period) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phantomConflicts > 0 {
		m.phantomConflicts--
		return Period{}, errOverlapConstraint
	}
	if m.violatesExclusion(p) {
		return Period{}, errOverlapConstraint
	}
	p.ID = m.nextID("period")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.periods[p.ID] = p
	return p, nil
}

func (m *memStore) UpdatePeriod(_ context.Context, p Period) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.periods[p.ID]; !ok {
		return Period{}, ErrNotFound
	}
	if m.violatesExclusion(p) {
		return Period{}, errOverlapConstraint
	}
	p.UpdatedAt = time.Now()
	m.periods[p.ID] = p
	return p, nil
}

func (m *memStore) DeletePeriod(_ context.Context, id string) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return Period{}, ErrNotFound
	}
	for _, g := range m.goals {
		if g.PeriodID == id {
			return Period{}, ErrPeriodInUse
		}
	}
	for evalID, e := range m.evals {
		if e.PeriodID != nil && *e.PeriodID == id {
			e.PeriodID = nil
			m.evals[evalID] = e
		}
	}
	delete(m.periods, id)
	return p, nil
}

func (m *memStore) SetPeriodActive(_ context.Context, id string, active bool) (Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.periods[id]
	if !ok {
		return Period{}, ErrNotFound
	}
	p.Active = active
	m.periods[id] = p
	return p, nil
}

func (m *memStore) annotateGoal(g Goal) Goal {
	g.PeriodName = m.periods[g.PeriodID].Name
	return g
}

func (m *memStore) ListGoals(_ context.Context, filter GoalFilter) ([]Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Goal
	for _, g := range m.goals {
		if filter.EmployeeID != "" && g.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.PeriodID != "" && g.PeriodID != filter.PeriodID {
			continue
		}
		out = append(out, m.annotateGoal(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m *memStore) GetGoal(_ context.Context, id string) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return Goal{}, ErrNotFound
	}
	return m.annotateGoal(g), nil
}

func (m *memStore) InsertGoal(_ context.Context, g Goal) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.periods[g.PeriodID]; !ok {
		return Goal{}, errUnknownPeriod
	}
	g.ID = m.nextID("goal")
	m.goals[g.ID] = g
	return m.annotateGoal(g), nil
}

func (m *memStore) UpdateGoal(_ context.Context, g Goal) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[g.ID]; !ok {
		return Goal{}, ErrNotFound
	}
	m.goals[g.ID] = g
	return m.annotateGoal(g), nil
}

func (m *memStore) SetGoalStatus(_ context.Context, id, status string, completion *float64) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return Goal{}, ErrNotFound
	}
	g.Status = status
	if completion != nil {
		g.Completion = *completion
	}
	m.goals[id] = g
	return m.annotateGoal(g), nil
}

func (m *memStore) DeleteGoal(_ context.Context, id string) (Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	if !ok {
		return Goal{}, ErrNotFound
	}
	delete(m.goals, id)
	return m.annotateGoal(g), nil
}

func (m *memStore) annotateEvaluation(e Evaluation) Evaluation {
	e.PeriodName, e.PeriodType = "", ""
	if e.PeriodID != nil {
		if p, ok := m.periods[*e.PeriodID]; ok {
			e.PeriodName = p.Name
			e.PeriodType = p.Type
		}
	}
	e.EvaluatorName = m.users[e.EvaluatorID]
	return e
}

func (m *memStore) ListEvaluations(_ context.Context, filter EvaluationFilter) ([]Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Evaluation
	for _, e := range m.evals {
		if filter.EmployeeID != "" && e.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.PeriodID != "" && (e.PeriodID == nil || *e.PeriodID != filter.PeriodID) {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, m.annotateEvaluation(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EvaluationDate.After(out[j].EvaluationDate) })
	return out, nil
}

func (m *memStore) GetEvaluation(_ context.Context, id string) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evals[id]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return m.annotateEvaluation(e), nil
}

func (m *memStore) findTriple(employeeID, periodID, evalType string) string {
	for _, e := range m.evals {
		if e.EmployeeID == employeeID && e.PeriodID != nil && *e.PeriodID == periodID && e.Type == evalType {
			return e.ID
		}
	}
	return ""
}

func (m *memStore) FindEvaluationID(_ context.Context, employeeID, periodID, evalType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staleFinds > 0 {
		m.staleFinds--
		return "", nil
	}
	return m.findTriple(employeeID, periodID, evalType), nil
}

func (m *memStore) InsertEvaluation(_ context.Context, e Evaluation) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phantomConflicts > 0 {
		m.phantomConflicts--
		return Evaluation{}, errDuplicateConstraint
	}
	if e.PeriodID != nil {
		if _, ok := m.periods[*e.PeriodID]; !ok {
			return Evaluation{}, errUnknownPeriod
		}
		if m.findTriple(e.EmployeeID, *e.PeriodID, e.Type) != "" {
			return Evaluation{}, errDuplicateConstraint
		}
	}
	e.ID = m.nextID("eval")
	m.evals[e.ID] = e
	return m.annotateEvaluation(e), nil
}

func (m *memStore) UpdateEvaluation(_ context.Context, e Evaluation) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.evals[e.ID]; !ok {
		return Evaluation{}, ErrNotFound
	}
	m.evals[e.ID] = e
	return m.annotateEvaluation(e), nil
}

func (m *memStore) ApproveEvaluation(_ context.Context, id string) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evals[id]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	e.Status = EvaluationStatusApproved
	m.evals[id] = e
	return m.annotateEvaluation(e), nil
}

func (m *memStore) DeleteEvaluation(_ context.Context, id string) (Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evals[id]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	delete(m.evals, id)
	return m.annotateEvaluation(e), nil
}

func (m *memStore) ApprovedScores(_ context.Context, employeeID string) ([]ScoreSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ScoreSample
	for _, e := range m.evals {
		if e.EmployeeID == employeeID && e.Status == EvaluationStatusApproved {
			out = append(out, ScoreSample{TotalScore: e.TotalScore, AchievementPercent: e.AchievementPercent})
		}
	}
	return out, nil
}
