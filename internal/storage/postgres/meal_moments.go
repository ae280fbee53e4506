package postgres

import (
	"context"
	"fmt"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type mealMomentsStorage struct {
	pool *pgxpool.Pool
}

func newMealMomentsStorage(pool *pgxpool.Pool) *mealMomentsStorage {
	return &mealMomentsStorage{pool: pool}
}

func (s *mealMomentsStorage) ListMealMoments(ctx context.Context) ([]storage.MealMomentRow, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), COALESCE(to_char(time_in_day, 'HH24:MI'), '')
		FROM meal_moments
		ORDER BY time_in_day ASC NULLS LAST, id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal moments: %w", err)
	}
	defer rows.Close()

	var moments []storage.MealMomentRow
	for rows.Next() {
		var m storage.MealMomentRow
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.TimeInDay); err != nil {
			return nil, fmt.Errorf("failed to scan meal moment: %w", err)
		}
		moments = append(moments, m)
	}

	return moments, rows.Err()
}
