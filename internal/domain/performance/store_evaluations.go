package performance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const evaluationSelect = `
    SELECT e.id, e.employee_id, e.period_id::text, COALESCE(p.name, ''), COALESCE(p.type, ''),
           e.evaluator_id, COALESCE(u.display_name, ''), e.type, e.evaluation_date,
           e.quality_of_work, e.productivity, e.technical_knowledge, e.teamwork,
           e.communication, e.leadership, e.responsibility, e.initiative,
           e.total_score, e.achievement_percent, e.strengths, e.improvement_areas, e.general_comments,
           e.requires_improvement_plan, e.improvement_plan, e.follow_up_date, e.status,
           e.created_at, e.updated_at
`

const evaluationJoins = `
    LEFT JOIN evaluation_periods p ON p.id = e.period_id
    LEFT JOIN users u ON u.id::text = e.evaluator_id
`

func scanEvaluation(row rowScanner) (Evaluation, error) {
	var e Evaluation
	err := row.Scan(&e.ID, &e.EmployeeID, &e.PeriodID, &e.PeriodName, &e.PeriodType,
		&e.EvaluatorID, &e.EvaluatorName, &e.Type, &e.EvaluationDate,
		&e.Scores.QualityOfWork, &e.Scores.Productivity, &e.Scores.TechnicalKnowledge, &e.Scores.Teamwork,
		&e.Scores.Communication, &e.Scores.Leadership, &e.Scores.Responsibility, &e.Scores.Initiative,
		&e.TotalScore, &e.AchievementPercent, &e.Strengths, &e.ImprovementAreas, &e.GeneralComments,
		&e.RequiresImprovementPlan, &e.ImprovementPlan, &e.FollowUpDate, &e.Status,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *Store) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error) {
	query := evaluationSelect + `
    FROM evaluations e` + evaluationJoins + `
    WHERE 1 = 1
  `
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND e.employee_id = $%d", len(args))
	}
	if filter.PeriodID != "" {
		args = append(args, filter.PeriodID)
		query += fmt.Sprintf(" AND e.period_id::text = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND e.type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	query += " ORDER BY e.evaluation_date DESC, e.created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []Evaluation
	for rows.Next() {
		eval, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, eval)
	}
	return evaluations, rows.Err()
}

func (s *Store) GetEvaluation(ctx context.Context, id string) (Evaluation, error) {
	eval, err := scanEvaluation(s.DB.QueryRow(ctx, evaluationSelect+`
    FROM evaluations e`+evaluationJoins+`
    WHERE e.id = $1
  `, id))
	if err != nil {
		return Evaluation{}, lookupErr(err)
	}
	return eval, nil
}

func (s *Store) FindEvaluationID(ctx context.Context, employeeID, periodID, evalType string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    SELECT id
    FROM evaluations
    WHERE employee_id = $1 AND period_id::text = $2 AND type = $3
  `, employeeID, periodID, evalType).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) InsertEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error) {
	sc := eval.Scores
	out, err := scanEvaluation(s.DB.QueryRow(ctx, `
    WITH e AS (
      INSERT INTO evaluations (
        employee_id, period_id, evaluator_id, type, evaluation_date,
        quality_of_work, productivity, technical_knowledge, teamwork,
        communication, leadership, responsibility, initiative,
        total_score, achievement_percent, strengths, improvement_areas, general_comments,
        requires_improvement_plan, improvement_plan, follow_up_date, status
      )
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
      RETURNING *
    )`+evaluationSelect+`
    FROM e`+evaluationJoins,
		eval.EmployeeID, eval.PeriodID, eval.EvaluatorID, eval.Type, eval.EvaluationDate,
		sc.QualityOfWork, sc.Productivity, sc.TechnicalKnowledge, sc.Teamwork,
		sc.Communication, sc.Leadership, sc.Responsibility, sc.Initiative,
		eval.TotalScore, eval.AchievementPercent, eval.Strengths, eval.ImprovementAreas, eval.GeneralComments,
		eval.RequiresImprovementPlan, eval.ImprovementPlan, eval.FollowUpDate, eval.Status))
	if err != nil {
		switch pgCode(err) {
		case pgCodeUniqueViolation:
			return Evaluation{}, errDuplicateConstraint
		case pgCodeForeignKeyViolation, pgCodeInvalidText:
			return Evaluation{}, errUnknownPeriod
		}
		return Evaluation{}, err
	}
	return out, nil
}

func (s *Store) UpdateEvaluation(ctx context.Context, eval Evaluation) (Evaluation, error) {
	sc := eval.Scores
	out, err := scanEvaluation(s.DB.QueryRow(ctx, `
    WITH e AS (
      UPDATE evaluations
      SET evaluation_date = $1,
          quality_of_work = $2, productivity = $3, technical_knowledge = $4, teamwork = $5,
          communication = $6, leadership = $7, responsibility = $8, initiative = $9,
          total_score = $10, achievement_percent = $11, strengths = $12, improvement_areas = $13,
          general_comments = $14, requires_improvement_plan = $15, improvement_plan = $16,
          follow_up_date = $17, status = $18, updated_at = now()
      WHERE id = $19
      RETURNING *
    )`+evaluationSelect+`
    FROM e`+evaluationJoins,
		eval.EvaluationDate,
		sc.QualityOfWork, sc.Productivity, sc.TechnicalKnowledge, sc.Teamwork,
		sc.Communication, sc.Leadership, sc.Responsibility, sc.Initiative,
		eval.TotalScore, eval.AchievementPercent, eval.Strengths, eval.ImprovementAreas,
		eval.GeneralComments, eval.RequiresImprovementPlan, eval.ImprovementPlan,
		eval.FollowUpDate, eval.Status, eval.ID))
	if err != nil {
		return Evaluation{}, lookupErr(err)
	}
	return out, nil
}

func (s *Store) ApproveEvaluation(ctx context.Context, id string) (Evaluation, error) {
	out, err := scanEvaluation(s.DB.QueryRow(ctx, `
    WITH e AS (
      UPDATE evaluations
      SET status = $1, updated_at = now()
      WHERE id = $2
      RETURNING *
    )`+evaluationSelect+`
    FROM e`+evaluationJoins, EvaluationStatusApproved, id))
	if err != nil {
		return Evaluation{}, lookupErr(err)
	}
	return out, nil
}

func (s *Store) DeleteEvaluation(ctx context.Context, id string) (Evaluation, error) {
	out, err := scanEvaluation(s.DB.QueryRow(ctx, `
    WITH e AS (
      DELETE FROM evaluations
      WHERE id = $1
      RETURNING *
    )`+evaluationSelect+`
    FROM e`+evaluationJoins, id))
	if err != nil {
		return Evaluation{}, lookupErr(err)
	}
	return out, nil
}

func (s *Store) ApprovedScores(ctx context.Context, employeeID string) ([]ScoreSample, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT total_score, achievement_percent
    FROM evaluations
    WHERE employee_id = $1 AND status = $2
  `, employeeID, EvaluationStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []ScoreSample
	for rows.Next() {
		var sample ScoreSample
		if err := rows.Scan(&sample.TotalScore, &sample.AchievementPercent); err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
