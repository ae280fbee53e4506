package memory

import (
	"context"

	"github.com/fdg312/menu-board/internal/storage"
)

type mealMomentsStorage struct {
	rows []storage.MealMomentRow
}

// Same seed as migrations/00002_seed_meal_moments.sql.
func newMealMomentsStorage() *mealMomentsStorage {
	return &mealMomentsStorage{
		rows: []storage.MealMomentRow{
			{ID: 1, Name: "Breakfast", Description: "First meal of the day", TimeInDay: "08:00"},
			{ID: 2, Name: "Snack1", Description: "Mid-morning snack", TimeInDay: "10:30"},
			{ID: 3, Name: "Lunch", Description: "Midday meal", TimeInDay: "13:00"},
			{ID: 4, Name: "Snack2", Description: "Afternoon snack", TimeInDay: "16:30"},
			{ID: 5, Name: "Dinner", Description: "Evening meal", TimeInDay: "19:30"},
			{ID: 6, Name: "Supper", Description: "Late light meal", TimeInDay: "22:00"},
		},
	}
}

func (s *mealMomentsStorage) ListMealMoments(ctx context.Context) ([]storage.MealMomentRow, error) {
	out := make([]storage.MealMomentRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
