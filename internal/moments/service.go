package moments

import (
	"context"

	"github.com/fdg312/menu-board/internal/storage"
)

// Service serves the read-only meal-moment vocabulary.
type Service struct {
	storage storage.MealMomentsStorage
}

func NewService(storage storage.MealMomentsStorage) *Service {
	return &Service{storage: storage}
}

// List returns meal moments ordered by time in day.
func (s *Service) List(ctx context.Context) ([]MealMomentDTO, error) {
	rows, err := s.storage.ListMealMoments(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]MealMomentDTO, len(rows))
	for i, row := range rows {
		dtos[i] = MealMomentDTO{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			TimeInDay:   row.TimeInDay,
		}
	}
	return dtos, nil
}
