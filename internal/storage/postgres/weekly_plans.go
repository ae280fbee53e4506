package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type weeklyPlansStorage struct {
	pool *pgxpool.Pool
}

func newWeeklyPlansStorage(pool *pgxpool.Pool) *weeklyPlansStorage {
	return &weeklyPlansStorage{pool: pool}
}

const planColumns = `id::text, person_id, week_start, meals, created_at, updated_at`

func (s *weeklyPlansStorage) FindWeeklyPlansByPerson(ctx context.Context, personID string) ([]storage.WeeklyPlanRow, error) {
	query := `
		SELECT ` + planColumns + `
		FROM weekly_meal_plans
		WHERE person_id = $1
		ORDER BY week_start DESC
	`

	rows, err := s.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly plans: %w", err)
	}
	defer rows.Close()

	var plans []storage.WeeklyPlanRow
	for rows.Next() {
		var plan storage.WeeklyPlanRow
		if err := scanPlan(rows, &plan); err != nil {
			return nil, fmt.Errorf("failed to scan weekly plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating weekly plans: %w", rows.Err())
	}

	return plans, nil
}

func (s *weeklyPlansStorage) FindWeeklyPlan(ctx context.Context, personID string, weekStart time.Time) (*storage.WeeklyPlanRow, error) {
	query := `
		SELECT ` + planColumns + `
		FROM weekly_meal_plans
		WHERE person_id = $1 AND week_start = $2
	`

	var plan storage.WeeklyPlanRow
	err := scanPlan(s.pool.QueryRow(ctx, query, personID, dateOnly(weekStart)), &plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly plan: %w", err)
	}

	return &plan, nil
}

func (s *weeklyPlansStorage) UpsertWeeklyPlan(ctx context.Context, personID string, weekStart time.Time, meals []byte) (storage.WeeklyPlanRow, error) {
	// Last write wins; there is no version column.
	query := `
		INSERT INTO weekly_meal_plans (person_id, week_start, meals)
		VALUES ($1, $2, $3)
		ON CONFLICT (person_id, week_start)
		DO UPDATE SET meals = EXCLUDED.meals, updated_at = now()
		RETURNING ` + planColumns

	if len(meals) == 0 {
		meals = []byte("{}")
	}

	var plan storage.WeeklyPlanRow
	err := scanPlan(s.pool.QueryRow(ctx, query, personID, dateOnly(weekStart), meals), &plan)
	if err != nil {
		return storage.WeeklyPlanRow{}, fmt.Errorf("failed to upsert weekly plan: %w", err)
	}

	return plan, nil
}

func scanPlan(row pgx.Row, plan *storage.WeeklyPlanRow) error {
	return row.Scan(
		&plan.ID,
		&plan.PersonID,
		&plan.WeekStart,
		&plan.Meals,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
}

func dateOnly(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
