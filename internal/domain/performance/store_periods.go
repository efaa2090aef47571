package performance

import (
	"context"
)

const periodColumns = `id, name, type, start_date, end_date, description, active, created_at, updated_at`

func scanPeriod(row rowScanner) (Period, error) {
	var p Period
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.StartDate, &p.EndDate, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+periodColumns+`
    FROM evaluation_periods
    ORDER BY start_date DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (s *Store) GetPeriod(ctx context.Context, id string) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, `
    SELECT `+periodColumns+`
    FROM evaluation_periods
    WHERE id = $1
  `, id))
	if err != nil {
		return Period{}, lookupErr(err)
	}
	return p, nil
}

func (s *Store) InsertPeriod(ctx context.Context, period Period) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, `
    INSERT INTO evaluation_periods (name, type, start_date, end_date, description, active)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+periodColumns,
		period.Name, period.Type, period.StartDate, period.EndDate, period.Description, period.Active))
	if err != nil {
		if pgCode(err) == pgCodeExclusionViolation {
			return Period{}, errOverlapConstraint
		}
		return Period{}, err
	}
	return p, nil
}

func (s *Store) UpdatePeriod(ctx context.Context, period Period) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, `
    UPDATE evaluation_periods
    SET name = $1, type = $2, start_date = $3, end_date = $4, description = $5, active = $6, updated_at = now()
    WHERE id = $7
    RETURNING `+periodColumns,
		period.Name, period.Type, period.StartDate, period.EndDate, period.Description, period.Active, period.ID))
	if err != nil {
		if pgCode(err) == pgCodeExclusionViolation {
			return Period{}, errOverlapConstraint
		}
		return Period{}, lookupErr(err)
	}
	return p, nil
}

func (s *Store) DeletePeriod(ctx context.Context, id string) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, `
    DELETE FROM evaluation_periods
    WHERE id = $1
    RETURNING `+periodColumns, id))
	if err != nil {
		if pgCode(err) == pgCodeForeignKeyViolation {
			return Period{}, ErrPeriodInUse
		}
		return Period{}, lookupErr(err)
	}
	return p, nil
}

func (s *Store) SetPeriodActive(ctx context.Context, id string, active bool) (Period, error) {
	p, err := scanPeriod(s.DB.QueryRow(ctx, `
    UPDATE evaluation_periods
    SET active = $1, updated_at = now()
    WHERE id = $2
    RETURNING `+periodColumns, active, id))
	if err != nil {
		return Period{}, lookupErr(err)
	}
	return p, nil
}
