package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an update or delete targets a missing row.
var ErrNotFound = errors.New("not found")

// Storage is the root handle returned by memory.New / postgres.New.
type Storage interface {
	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// Close закрывает соединение (для Postgres)
	Close() error
}

// MenusStorage: persistence for menus (named sets of weighted ingredients)
type MenusStorage interface {
	// FindMenusByPerson returns every menu owned by a person, oldest first
	FindMenusByPerson(ctx context.Context, personID string) ([]MenuRow, error)

	// FindMenuByID returns one menu; ErrNotFound if missing
	FindMenuByID(ctx context.Context, id string) (MenuRow, error)

	// CreateMenu inserts a menu and assigns its ID
	CreateMenu(ctx context.Context, upsert MenuUpsert) (MenuRow, error)

	// UpdateMenu replaces name, category and ingredients; ErrNotFound if missing
	UpdateMenu(ctx context.Context, id string, upsert MenuUpsert) (MenuRow, error)

	// DeleteMenu removes a menu and returns the deleted row; ErrNotFound if missing
	DeleteMenu(ctx context.Context, id string) (MenuRow, error)
}

// MenuRow is a persisted menu. Ingredients is the raw JSON array as stored.
type MenuRow struct {
	ID          string
	PersonID    string
	Name        string
	Category    string
	Ingredients []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MenuUpsert carries the writable menu columns.
type MenuUpsert struct {
	PersonID    string
	Name        string
	Category    string
	Ingredients []byte
}

// WeeklyPlansStorage: persistence for denormalized weekly plan snapshots
type WeeklyPlansStorage interface {
	// FindWeeklyPlansByPerson returns all plans of a person, newest week first
	FindWeeklyPlansByPerson(ctx context.Context, personID string) ([]WeeklyPlanRow, error)

	// FindWeeklyPlan returns nil, nil when no plan exists for person+week
	FindWeeklyPlan(ctx context.Context, personID string, weekStart time.Time) (*WeeklyPlanRow, error)

	// UpsertWeeklyPlan creates the plan on first save and overwrites meals afterwards
	UpsertWeeklyPlan(ctx context.Context, personID string, weekStart time.Time, meals []byte) (WeeklyPlanRow, error)
}

// WeeklyPlanRow is a persisted plan. Meals is the raw day -> moment -> meal JSON.
type WeeklyPlanRow struct {
	ID        string
	PersonID  string
	WeekStart time.Time
	Meals     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MealMomentsStorage: read-only meal-moment vocabulary
type MealMomentsStorage interface {
	// ListMealMoments returns all moments ordered by time in day
	ListMealMoments(ctx context.Context) ([]MealMomentRow, error)
}

type MealMomentRow struct {
	ID          int
	Name        string
	Description string
	TimeInDay   string
}
