package performance

import (
	"context"
	"fmt"
)

const goalSelect = `
    SELECT g.id, g.employee_id, g.period_id::text, COALESCE(p.name, ''), g.description, g.weight_percent,
           g.due_date, g.status, g.completion_percent, g.observations, COALESCE(g.created_by, ''),
           g.created_at, g.updated_at
`

func scanGoal(row rowScanner) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.EmployeeID, &g.PeriodID, &g.PeriodName, &g.Description, &g.Weight,
		&g.DueDate, &g.Status, &g.Completion, &g.Observations, &g.CreatedBy,
		&g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (s *Store) ListGoals(ctx context.Context, filter GoalFilter) ([]Goal, error) {
	query := goalSelect + `
    FROM goals g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
    WHERE 1 = 1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND g.employee_id = $%d", len(args))
	}
	if filter.PeriodID != "" {
		args = append(args, filter.PeriodID)
		query += fmt.Sprintf(" AND g.period_id::text = $%d", len(args))
	}
	query += " ORDER BY g.due_date ASC, g.created_at ASC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, id string) (Goal, error) {
	goal, err := scanGoal(s.DB.QueryRow(ctx, goalSelect+`
    FROM goals g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
    WHERE g.id = $1
  `, id))
	if err != nil {
		return Goal{}, lookupErr(err)
	}
	return goal, nil
}

func (s *Store) InsertGoal(ctx context.Context, goal Goal) (Goal, error) {
	out, err := scanGoal(s.DB.QueryRow(ctx, `
    WITH g AS (
      INSERT INTO goals (employee_id, period_id, description, weight_percent, due_date, status, completion_percent, observations, created_by)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
      RETURNING *
    )`+goalSelect+`
    FROM g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
  `, goal.EmployeeID, goal.PeriodID, goal.Description, goal.Weight, goal.DueDate, goal.Status, goal.Completion, goal.Observations, goal.CreatedBy))
	if err != nil {
		switch pgCode(err) {
		case pgCodeForeignKeyViolation, pgCodeInvalidText:
			return Goal{}, errUnknownPeriod
		}
		return Goal{}, err
	}
	return out, nil
}

func (s *Store) UpdateGoal(ctx context.Context, goal Goal) (Goal, error) {
	out, err := scanGoal(s.DB.QueryRow(ctx, `
    WITH g AS (
      UPDATE goals
      SET description = $1, weight_percent = $2, due_date = $3, status = $4, completion_percent = $5, observations = $6, updated_at = now()
      WHERE id = $7
      RETURNING *
    )`+goalSelect+`
    FROM g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
  `, goal.Description, goal.Weight, goal.DueDate, goal.Status, goal.Completion, goal.Observations, goal.ID))
	if err != nil {
		return Goal{}, lookupErr(err)
	}
	return out, nil
}

func (s *Store) SetGoalStatus(ctx context.Context, id, status string, completion *float64) (Goal, error) {
	out, err := scanGoal(s.DB.QueryRow(ctx, `
    WITH g AS (
      UPDATE goals
      SET status = $1, completion_percent = COALESCE($2, completion_percent), updated_at = now()
      WHERE id = $3
      RETURNING *
    )`+goalSelect+`
    FROM g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
  `, status, completion, id))
	if err != nil {
		return Goal{}, lookupErr(err)
	}
	return out, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) (Goal, error) {
	out, err := scanGoal(s.DB.QueryRow(ctx, `
    WITH g AS (
      DELETE FROM goals
      WHERE id = $1
      RETURNING *
    )`+goalSelect+`
    FROM g
    LEFT JOIN evaluation_periods p ON p.id = g.period_id
  `, id))
	if err != nil {
		return Goal{}, lookupErr(err)
	}
	return out, nil
}
