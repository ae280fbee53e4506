package weekplan

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/menu-board/internal/menus"
)

// UnassignedContainer is the drop target that clears a menu's placement.
const UnassignedContainer = "unassigned"

const weekStartLayout = "2006-01-02"

// DefaultDays are the board columns in weekday order.
var DefaultDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Plan is the persisted weekly plan: day -> moment -> meal.
type Plan struct {
	Person    string                      `json:"person"`
	WeekStart string                      `json:"weekStart"`
	Meals     map[string]map[string]*Meal `json:"meals"`
}

// Meal is one plan leaf. It embeds the ingredient list, not a menu reference.
type Meal struct {
	ID    string     `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Parts []MealPart `json:"parts"`
}

// MealPart is an ingredient snapshot inside a plan leaf.
type MealPart struct {
	ID       string     `json:"id,omitempty"`
	Name     string     `json:"name"`
	Grams    *float64   `json:"grams,omitempty"`
	ImageURL string     `json:"imageUrl,omitempty"`
	Carbs    float64    `json:"carbs"`
	Protein  float64    `json:"protein"`
	Fat      float64    `json:"fat"`
	Unit     menus.Unit `json:"unit,omitempty"`
	Weight   float64    `json:"weight"`
}

// UnmarshalJSON accepts loosely typed leaves: numeric ids, numeric strings,
// parts that only carry name and grams.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    menus.Text            `json:"id"`
		Name  menus.Text            `json:"name"`
		Parts []menus.RawIngredient `json:"parts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.ID = strings.TrimSpace(string(raw.ID))
	m.Name = strings.TrimSpace(string(raw.Name))
	m.Parts = make([]MealPart, 0, len(raw.Parts))
	for _, rp := range raw.Parts {
		m.Parts = append(m.Parts, partFromIngredient(menus.NormalizeIngredient(rp)))
	}
	return nil
}

func partFromIngredient(ing menus.Ingredient) MealPart {
	part := MealPart{
		ID:       ing.ID,
		Name:     ing.Name,
		ImageURL: ing.ImageURL,
		Carbs:    ing.Carbs,
		Protein:  ing.Protein,
		Fat:      ing.Fat,
		Unit:     ing.Unit,
		Weight:   ing.Weight,
	}
	if ing.Unit == menus.UnitGram {
		grams := ing.Weight
		part.Grams = &grams
	}
	return part
}

func (p MealPart) ingredient() menus.Ingredient {
	return menus.Ingredient{
		ID:       p.ID,
		Name:     p.Name,
		Carbs:    p.Carbs,
		Protein:  p.Protein,
		Fat:      p.Fat,
		Unit:     p.Unit,
		ImageURL: p.ImageURL,
		Weight:   p.Weight,
	}
}

// Location is one end of a drag: a column and a position inside it.
type Location struct {
	ContainerID string `json:"containerId"`
	Index       int    `json:"index"`
}

// Drag is a finished drag gesture. A nil Destination means it was cancelled.
type Drag struct {
	DraggedID   string    `json:"draggedId"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

type Outcome string

const (
	OutcomeNoop       Outcome = "noop"
	OutcomeUnassigned Outcome = "unassigned"
	OutcomeAssigned   Outcome = "assigned"
)

// Board is the kanban projection of a menu list.
type Board struct {
	DayOrder   []string                `json:"dayOrder"`
	Days       map[string][]menus.Menu `json:"days"`
	Unassigned []menus.Menu            `json:"unassigned"`
	// Orphaned holds menus whose assignedDay is not one of the board days.
	Orphaned []menus.Menu `json:"orphaned"`
}

type BoardRequest struct {
	Person    string          `json:"person"`
	WeekStart string          `json:"weekStart"`
	Menus     []menus.RawMenu `json:"menus"`
}

type BoardResponse struct {
	Person    string       `json:"person"`
	WeekStart string       `json:"weekStart"`
	Menus     []menus.Menu `json:"menus"`
	Board     Board        `json:"board"`
}

type MoveRequest struct {
	Menus []menus.RawMenu `json:"menus"`
	Drag  Drag            `json:"drag"`
}

type MoveResponse struct {
	Menus   []menus.Menu `json:"menus"`
	Outcome Outcome      `json:"outcome"`
	Board   Board        `json:"board"`
}

type SaveRequest struct {
	Person    string          `json:"person"`
	WeekStart string          `json:"weekStart"`
	Menus     []menus.RawMenu `json:"menus"`
}

// ParseWeekStart accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// UTC date.
func ParseWeekStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("weekStart is required")
	}
	if t, err := time.Parse(weekStartLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid weekStart, expected YYYY-MM-DD")
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatWeekStart is the inverse of ParseWeekStart.
func FormatWeekStart(t time.Time) string {
	return t.UTC().Format(weekStartLayout)
}

func normalizeMenus(raw []menus.RawMenu) []menus.Menu {
	list := make([]menus.Menu, 0, len(raw))
	for _, r := range raw {
		list = append(list, menus.NormalizeMenu(r))
	}
	return list
}
