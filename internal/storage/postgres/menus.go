package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type menusStorage struct {
	pool *pgxpool.Pool
}

func newMenusStorage(pool *pgxpool.Pool) *menusStorage {
	return &menusStorage{pool: pool}
}

const menuColumns = `id::text, person_id, name, category, ingredients, created_at, updated_at`

func (s *menusStorage) FindMenusByPerson(ctx context.Context, personID string) ([]storage.MenuRow, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE person_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	menus := []storage.MenuRow{}
	for rows.Next() {
		var row storage.MenuRow
		if err := scanMenu(rows, &row); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, row)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating menus: %w", rows.Err())
	}

	return menus, nil
}

func (s *menusStorage) FindMenuByID(ctx context.Context, id string) (storage.MenuRow, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE id::text = $1
	`

	var row storage.MenuRow
	err := scanMenu(s.pool.QueryRow(ctx, query, id), &row)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.MenuRow{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.MenuRow{}, fmt.Errorf("failed to find menu: %w", err)
	}

	return row, nil
}

func (s *menusStorage) CreateMenu(ctx context.Context, upsert storage.MenuUpsert) (storage.MenuRow, error) {
	query := `
		INSERT INTO menus (person_id, name, category, ingredients)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + menuColumns

	var row storage.MenuRow
	err := scanMenu(s.pool.QueryRow(ctx, query,
		upsert.PersonID,
		upsert.Name,
		upsert.Category,
		ingredientsOrEmpty(upsert.Ingredients),
	), &row)
	if err != nil {
		return storage.MenuRow{}, fmt.Errorf("failed to create menu: %w", err)
	}

	return row, nil
}

func (s *menusStorage) UpdateMenu(ctx context.Context, id string, upsert storage.MenuUpsert) (storage.MenuRow, error) {
	query := `
		UPDATE menus
		SET name = $2, category = $3, ingredients = $4, updated_at = now()
		WHERE id::text = $1
		RETURNING ` + menuColumns

	var row storage.MenuRow
	err := scanMenu(s.pool.QueryRow(ctx, query,
		id,
		upsert.Name,
		upsert.Category,
		ingredientsOrEmpty(upsert.Ingredients),
	), &row)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.MenuRow{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.MenuRow{}, fmt.Errorf("failed to update menu: %w", err)
	}

	return row, nil
}

func (s *menusStorage) DeleteMenu(ctx context.Context, id string) (storage.MenuRow, error) {
	query := `
		DELETE FROM menus
		WHERE id::text = $1
		RETURNING ` + menuColumns

	var row storage.MenuRow
	err := scanMenu(s.pool.QueryRow(ctx, query, id), &row)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.MenuRow{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.MenuRow{}, fmt.Errorf("failed to delete menu: %w", err)
	}

	return row, nil
}

func scanMenu(row pgx.Row, menu *storage.MenuRow) error {
	return row.Scan(
		&menu.ID,
		&menu.PersonID,
		&menu.Name,
		&menu.Category,
		&menu.Ingredients,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	)
}

func ingredientsOrEmpty(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("[]")
	}
	return raw
}
