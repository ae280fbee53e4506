package menus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/fdg312/menu-board/internal/userctx"
)

// Logger is the subset of *log.Logger the service writes warnings to.
type Logger interface {
	Printf(format string, v ...any)
}

// Service is the menu repository adapter. It is the only place that knows a
// menu counts as assigned when a weekly plan references its id.
type Service struct {
	menus  storage.MenusStorage
	plans  storage.WeeklyPlansStorage
	logger Logger
}

// NewService creates a menus service. A nil logger falls back to log.Default().
func NewService(menus storage.MenusStorage, plans storage.WeeklyPlansStorage, logger Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{menus: menus, plans: plans, logger: logger}
}

// List returns every menu of a person, oldest first.
func (s *Service) List(ctx context.Context, personID string) ([]Menu, error) {
	rows, err := s.menus.FindMenusByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	result := make([]Menu, 0, len(rows))
	for _, row := range rows {
		result = append(result, s.fromRow(row))
	}
	return result, nil
}

// ListUnassigned returns the person's menus not referenced by any of the
// person's weekly plans. A plan whose meals JSON cannot be parsed is logged
// and contributes no ids.
func (s *Service) ListUnassigned(ctx context.Context, personID string) ([]Menu, error) {
	all, err := s.List(ctx, personID)
	if err != nil {
		return nil, err
	}

	plans, err := s.plans.FindWeeklyPlansByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("list weekly plans: %w", err)
	}

	assigned := make(map[string]bool)
	for _, plan := range plans {
		ids, err := ReferencedIDs(plan.Meals)
		if err != nil {
			s.logger.Printf("WARN menus: skipping weekly plan %s (person=%s week=%s): %v",
				plan.ID, plan.PersonID, plan.WeekStart.Format("2006-01-02"), err)
			continue
		}
		for _, id := range ids {
			assigned[id] = true
		}
	}

	result := make([]Menu, 0, len(all))
	for _, m := range all {
		if !assigned[m.ID] {
			result = append(result, m)
		}
	}
	return result, nil
}

type planLeafRef struct {
	ID Text `json:"id"`
}

// ReferencedIDs collects every meal id in a day -> moment -> meal document.
func ReferencedIDs(meals []byte) ([]string, error) {
	if len(meals) == 0 {
		return nil, nil
	}

	var doc map[string]map[string]*planLeafRef
	if err := json.Unmarshal(meals, &doc); err != nil {
		return nil, fmt.Errorf("parse meals: %w", err)
	}

	var ids []string
	for _, byMoment := range doc {
		for _, leaf := range byMoment {
			if leaf != nil && leaf.ID != "" {
				ids = append(ids, string(leaf.ID))
			}
		}
	}
	return ids, nil
}

// Create validates and persists a new menu. Assignment fields are not stored.
func (s *Service) Create(ctx context.Context, menu Menu) (Menu, error) {
	upsert, err := toUpsert(menu)
	if err != nil {
		return Menu{}, err
	}

	row, err := s.menus.CreateMenu(ctx, upsert)
	if err != nil {
		return Menu{}, fmt.Errorf("create menu: %w", err)
	}
	return s.fromRow(row), nil
}

// Update replaces name, category and ingredients of an existing menu.
func (s *Service) Update(ctx context.Context, id string, menu Menu) (Menu, error) {
	if id == "" {
		return Menu{}, fmt.Errorf("%w: id is required", ErrValidation)
	}
	upsert, err := toUpsert(menu)
	if err != nil {
		return Menu{}, err
	}
	if err := s.requireOwned(ctx, id); err != nil {
		return Menu{}, err
	}

	row, err := s.menus.UpdateMenu(ctx, id, upsert)
	if errors.Is(err, storage.ErrNotFound) {
		return Menu{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Menu{}, fmt.Errorf("update menu: %w", err)
	}
	return s.fromRow(row), nil
}

// Delete removes a menu and returns what was deleted.
func (s *Service) Delete(ctx context.Context, id string) (Menu, error) {
	if id == "" {
		return Menu{}, fmt.Errorf("%w: id is required", ErrValidation)
	}

	if err := s.requireOwned(ctx, id); err != nil {
		return Menu{}, err
	}

	row, err := s.menus.DeleteMenu(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Menu{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Menu{}, fmt.Errorf("delete menu: %w", err)
	}
	return s.fromRow(row), nil
}

// requireOwned checks that the authenticated person owns the menu.
// Another person's menu is reported as missing. Without a token in ctx the check is skipped.
func (s *Service) requireOwned(ctx context.Context, id string) error {
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		return nil
	}

	row, err := s.menus.FindMenuByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("find menu: %w", err)
	}
	if row.PersonID != userID {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func toUpsert(menu Menu) (storage.MenuUpsert, error) {
	if err := menu.Validate(); err != nil {
		return storage.MenuUpsert{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	ingredients := menu.Ingredients
	if ingredients == nil {
		ingredients = []Ingredient{}
	}
	raw, err := json.Marshal(ingredients)
	if err != nil {
		return storage.MenuUpsert{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return storage.MenuUpsert{
		PersonID:    menu.PersonID,
		Name:        menu.Name,
		Category:    menu.Category,
		Ingredients: raw,
	}, nil
}

func (s *Service) fromRow(row storage.MenuRow) Menu {
	var raw []RawIngredient
	if len(row.Ingredients) > 0 {
		if err := json.Unmarshal(row.Ingredients, &raw); err != nil {
			s.logger.Printf("WARN menus: menu %s has unreadable ingredients: %v", row.ID, err)
			raw = nil
		}
	}

	return NormalizeMenu(RawMenu{
		ID:          Text(row.ID),
		Name:        Text(row.Name),
		Category:    Text(row.Category),
		PersonID:    Text(row.PersonID),
		Ingredients: raw,
	})
}
