package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/google/uuid"
)

type weeklyPlansStorage struct {
	mu    sync.RWMutex
	plans map[string]*storage.WeeklyPlanRow // key: "personID:YYYY-MM-DD"
}

func newWeeklyPlansStorage() *weeklyPlansStorage {
	return &weeklyPlansStorage{
		plans: make(map[string]*storage.WeeklyPlanRow),
	}
}

func planKey(personID string, weekStart time.Time) string {
	return fmt.Sprintf("%s:%s", personID, weekStart.UTC().Format("2006-01-02"))
}

func (s *weeklyPlansStorage) FindWeeklyPlansByPerson(ctx context.Context, personID string) ([]storage.WeeklyPlanRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []storage.WeeklyPlanRow
	for _, plan := range s.plans {
		if plan.PersonID == personID {
			rows = append(rows, copyPlanRow(*plan))
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].WeekStart.After(rows[j].WeekStart)
	})

	return rows, nil
}

func (s *weeklyPlansStorage) FindWeeklyPlan(ctx context.Context, personID string, weekStart time.Time) (*storage.WeeklyPlanRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[planKey(personID, weekStart)]
	if !ok {
		return nil, nil
	}

	row := copyPlanRow(*plan)
	return &row, nil
}

func (s *weeklyPlansStorage) UpsertWeeklyPlan(ctx context.Context, personID string, weekStart time.Time, meals []byte) (storage.WeeklyPlanRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := planKey(personID, weekStart)

	plan, ok := s.plans[key]
	if !ok {
		plan = &storage.WeeklyPlanRow{
			ID:        uuid.New().String(),
			PersonID:  personID,
			WeekStart: weekStart.UTC(),
			CreatedAt: now,
		}
		s.plans[key] = plan
	}

	plan.Meals = append([]byte(nil), meals...)
	plan.UpdatedAt = now

	return copyPlanRow(*plan), nil
}

func copyPlanRow(row storage.WeeklyPlanRow) storage.WeeklyPlanRow {
	row.Meals = append([]byte(nil), row.Meals...)
	return row
}
