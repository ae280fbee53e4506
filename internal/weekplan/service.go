package weekplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/moments"
	"github.com/fdg312/menu-board/internal/storage"
)

// ErrValidation wraps malformed plan or board requests.
var ErrValidation = errors.New("validation failed")

// Logger is the subset of *log.Logger the service writes warnings to.
type Logger interface {
	Printf(format string, v ...any)
}

// UnassignedLister is satisfied by *menus.Service.
type UnassignedLister interface {
	ListUnassigned(ctx context.Context, personID string) ([]menus.Menu, error)
}

// Service ties the codec, reconciler and move engine to storage.
type Service struct {
	plans      storage.WeeklyPlansStorage
	unassigned UnassignedLister
	days       []string
	logger     Logger
}

// NewService creates a weekly plan service. Empty days fall back to
// DefaultDays and a nil logger to log.Default().
func NewService(plans storage.WeeklyPlansStorage, unassigned UnassignedLister, days []string, logger Logger) *Service {
	if len(days) == 0 {
		days = DefaultDays
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{plans: plans, unassigned: unassigned, days: days, logger: logger}
}

// Days returns the board columns.
func (s *Service) Days() []string {
	return s.days
}

// GetPlan loads the plan for person+week. A missing plan is an empty plan.
func (s *Service) GetPlan(ctx context.Context, personID string, weekStart time.Time) (Plan, error) {
	plan := Plan{
		Person:    personID,
		WeekStart: FormatWeekStart(weekStart),
		Meals:     map[string]map[string]*Meal{},
	}

	row, err := s.plans.FindWeeklyPlan(ctx, personID, weekStart)
	if err != nil {
		return Plan{}, fmt.Errorf("find weekly plan: %w", err)
	}
	if row == nil || len(row.Meals) == 0 {
		return plan, nil
	}

	var meals map[string]map[string]*Meal
	if err := json.Unmarshal(row.Meals, &meals); err != nil {
		return Plan{}, fmt.Errorf("weekly plan %s has unreadable meals: %w", row.ID, err)
	}
	plan.Meals = compactMeals(meals)
	return plan, nil
}

// PutPlan stores a plan in its wire form. Last write wins.
func (s *Service) PutPlan(ctx context.Context, plan Plan) (Plan, error) {
	person := strings.TrimSpace(plan.Person)
	if person == "" {
		return Plan{}, fmt.Errorf("%w: person is required", ErrValidation)
	}
	weekStart, err := ParseWeekStart(plan.WeekStart)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.store(ctx, person, weekStart, compactMeals(plan.Meals))
}

// Board loads the saved plan and the unassigned pool, merges them with the
// caller's menus and groups the result by day.
func (s *Service) Board(ctx context.Context, personID string, weekStart time.Time, caller []menus.Menu) (BoardResponse, error) {
	plan, err := s.GetPlan(ctx, personID, weekStart)
	if err != nil {
		return BoardResponse{}, err
	}

	pool, err := s.unassigned.ListUnassigned(ctx, personID)
	if err != nil {
		return BoardResponse{}, fmt.Errorf("list unassigned menus: %w", err)
	}

	merged := Merge(caller, Decode(plan), pool)
	board := s.group(merged, personID, plan.WeekStart)

	return BoardResponse{
		Person:    personID,
		WeekStart: plan.WeekStart,
		Menus:     merged,
		Board:     board,
	}, nil
}

// Move applies a drag to the caller's working list.
func (s *Service) Move(list []menus.Menu, drag Drag) (MoveResponse, error) {
	next, outcome, err := ApplyDrag(list, drag)
	if err != nil {
		return MoveResponse{}, err
	}
	return MoveResponse{
		Menus:   next,
		Outcome: outcome,
		Board:   GroupByDay(next, s.days),
	}, nil
}

// Save encodes the placed menus and upserts the plan for person+week.
func (s *Service) Save(ctx context.Context, personID string, weekStart time.Time, list []menus.Menu) (Plan, error) {
	if strings.TrimSpace(personID) == "" {
		return Plan{}, fmt.Errorf("%w: person is required", ErrValidation)
	}

	plan, err := Encode(personID, FormatWeekStart(weekStart), list)
	if err != nil {
		return Plan{}, err
	}
	return s.store(ctx, personID, weekStart, plan.Meals)
}

func (s *Service) store(ctx context.Context, personID string, weekStart time.Time, meals map[string]map[string]*Meal) (Plan, error) {
	if meals == nil {
		meals = map[string]map[string]*Meal{}
	}
	raw, err := json.Marshal(meals)
	if err != nil {
		return Plan{}, fmt.Errorf("encode meals: %w", err)
	}

	row, err := s.plans.UpsertWeeklyPlan(ctx, personID, weekStart, raw)
	if err != nil {
		return Plan{}, fmt.Errorf("upsert weekly plan: %w", err)
	}

	return Plan{
		Person:    row.PersonID,
		WeekStart: FormatWeekStart(row.WeekStart),
		Meals:     meals,
	}, nil
}

func (s *Service) group(list []menus.Menu, personID, weekStart string) Board {
	board := GroupByDay(list, s.days)
	if len(board.Orphaned) > 0 {
		days := make([]string, 0, len(board.Orphaned))
		for _, m := range board.Orphaned {
			days = append(days, m.ID+"@"+m.AssignedDay)
		}
		s.logger.Printf("WARN weekplan: %d menus placed on unknown days (person=%s week=%s): %s",
			len(board.Orphaned), personID, weekStart, strings.Join(days, ", "))
	}

	var unknown []string
	for _, m := range list {
		if m.AssignedMoment != "" && !moments.Known(m.AssignedMoment) {
			unknown = append(unknown, m.ID+"@"+m.AssignedMoment)
		}
	}
	if len(unknown) > 0 {
		s.logger.Printf("WARN weekplan: %d menus use unknown meal moments (person=%s week=%s): %s",
			len(unknown), personID, weekStart, strings.Join(unknown, ", "))
	}
	return board
}
