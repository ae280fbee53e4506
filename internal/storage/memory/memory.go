package memory

import (
	"context"

	"github.com/fdg312/menu-board/internal/storage"
)

// MemoryStorage: in-memory реализация всех storage интерфейсов
type MemoryStorage struct {
	menus   *menusStorage
	plans   *weeklyPlansStorage
	moments *mealMomentsStorage
}

// New создаёт новый MemoryStorage с предзаполненными приёмами пищи
func New() *MemoryStorage {
	return &MemoryStorage{
		menus:   newMenusStorage(),
		plans:   newWeeklyPlansStorage(),
		moments: newMealMomentsStorage(),
	}
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}

// GetMenusStorage returns the menus sub-storage.
func (m *MemoryStorage) GetMenusStorage() storage.MenusStorage {
	return m.menus
}

// GetWeeklyPlansStorage returns the weekly plans sub-storage.
func (m *MemoryStorage) GetWeeklyPlansStorage() storage.WeeklyPlansStorage {
	return m.plans
}

// GetMealMomentsStorage returns the meal moments sub-storage.
func (m *MemoryStorage) GetMealMomentsStorage() storage.MealMomentsStorage {
	return m.moments
}
