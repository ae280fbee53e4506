package postgres

import (
	"context"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage: Postgres реализация всех storage интерфейсов
type PostgresStorage struct {
	pool    *pgxpool.Pool
	menus   *menusStorage
	plans   *weeklyPlansStorage
	moments *mealMomentsStorage
}

// New создаёт PostgresStorage и проверяет соединение
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStorage{
		pool:    pool,
		menus:   newMenusStorage(pool),
		plans:   newWeeklyPlansStorage(pool),
		moments: newMealMomentsStorage(pool),
	}, nil
}

func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) GetMenusStorage() storage.MenusStorage {
	return p.menus
}

func (p *PostgresStorage) GetWeeklyPlansStorage() storage.WeeklyPlansStorage {
	return p.plans
}

func (p *PostgresStorage) GetMealMomentsStorage() storage.MealMomentsStorage {
	return p.moments
}
