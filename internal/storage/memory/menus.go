package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/google/uuid"
)

type menusStorage struct {
	mu    sync.RWMutex
	menus map[string]*storage.MenuRow // key: id
	// index for person lookups, insertion order
	byPerson map[string][]string
}

func newMenusStorage() *menusStorage {
	return &menusStorage{
		menus:    make(map[string]*storage.MenuRow),
		byPerson: make(map[string][]string),
	}
}

func (s *menusStorage) FindMenusByPerson(ctx context.Context, personID string) ([]storage.MenuRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPerson[personID]
	rows := make([]storage.MenuRow, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.menus[id]; ok {
			rows = append(rows, copyMenuRow(*row))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	return rows, nil
}

func (s *menusStorage) FindMenuByID(ctx context.Context, id string) (storage.MenuRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.menus[id]
	if !ok {
		return storage.MenuRow{}, storage.ErrNotFound
	}
	return copyMenuRow(*row), nil
}

func (s *menusStorage) CreateMenu(ctx context.Context, upsert storage.MenuUpsert) (storage.MenuRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	row := &storage.MenuRow{
		ID:          uuid.New().String(),
		PersonID:    upsert.PersonID,
		Name:        upsert.Name,
		Category:    upsert.Category,
		Ingredients: append([]byte(nil), upsert.Ingredients...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.menus[row.ID] = row
	s.byPerson[row.PersonID] = append(s.byPerson[row.PersonID], row.ID)

	return copyMenuRow(*row), nil
}

func (s *menusStorage) UpdateMenu(ctx context.Context, id string, upsert storage.MenuUpsert) (storage.MenuRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.menus[id]
	if !ok {
		return storage.MenuRow{}, storage.ErrNotFound
	}

	// Ownership moves are not supported; personId stays as created.
	row.Name = upsert.Name
	row.Category = upsert.Category
	row.Ingredients = append([]byte(nil), upsert.Ingredients...)
	row.UpdatedAt = time.Now().UTC()

	return copyMenuRow(*row), nil
}

func (s *menusStorage) DeleteMenu(ctx context.Context, id string) (storage.MenuRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.menus[id]
	if !ok {
		return storage.MenuRow{}, storage.ErrNotFound
	}

	delete(s.menus, id)
	ids := s.byPerson[row.PersonID]
	for i, existing := range ids {
		if existing == id {
			s.byPerson[row.PersonID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}

	return *row, nil
}

func copyMenuRow(row storage.MenuRow) storage.MenuRow {
	row.Ingredients = append([]byte(nil), row.Ingredients...)
	return row
}
