package weekplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/storage"
)

type mockPlansRepo struct {
	plans     []storage.WeeklyPlanRow
	upserts   int
	upsertErr error
}

func (m *mockPlansRepo) FindWeeklyPlansByPerson(ctx context.Context, personID string) ([]storage.WeeklyPlanRow, error) {
	var result []storage.WeeklyPlanRow
	for _, p := range m.plans {
		if p.PersonID == personID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPlansRepo) FindWeeklyPlan(ctx context.Context, personID string, weekStart time.Time) (*storage.WeeklyPlanRow, error) {
	for _, p := range m.plans {
		if p.PersonID == personID && p.WeekStart.Equal(weekStart) {
			plan := p
			return &plan, nil
		}
	}
	return nil, nil
}

func (m *mockPlansRepo) UpsertWeeklyPlan(ctx context.Context, personID string, weekStart time.Time, meals []byte) (storage.WeeklyPlanRow, error) {
	if m.upsertErr != nil {
		return storage.WeeklyPlanRow{}, m.upsertErr
	}
	m.upserts++
	for i, p := range m.plans {
		if p.PersonID == personID && p.WeekStart.Equal(weekStart) {
			m.plans[i].Meals = meals
			return m.plans[i], nil
		}
	}
	row := storage.WeeklyPlanRow{
		ID:        fmt.Sprintf("plan%d", len(m.plans)+1),
		PersonID:  personID,
		WeekStart: weekStart,
		Meals:     meals,
	}
	m.plans = append(m.plans, row)
	return row, nil
}

type mockLister struct {
	menus []menus.Menu
	err   error
}

func (m *mockLister) ListUnassigned(ctx context.Context, personID string) ([]menus.Menu, error) {
	return m.menus, m.err
}

type captureLogger struct {
	lines []string
}

func (c *captureLogger) Printf(format string, v ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, v...))
}

var testWeek = time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

func TestGetPlan_MissingIsEmpty(t *testing.T) {
	service := NewService(&mockPlansRepo{}, &mockLister{}, nil, &captureLogger{})

	plan, err := service.GetPlan(context.Background(), "u1", testWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Person != "u1" || plan.WeekStart != "2024-05-06" {
		t.Errorf("unexpected plan header: %+v", plan)
	}
	if plan.Meals == nil || len(plan.Meals) != 0 {
		t.Errorf("expected empty meals, got %#v", plan.Meals)
	}

	raw, _ := json.Marshal(plan)
	if !strings.Contains(string(raw), `"meals":{}`) {
		t.Errorf("expected empty meals object in JSON, got %s", raw)
	}
}

func TestSaveThenGetPlan(t *testing.T) {
	repo := &mockPlansRepo{}
	service := NewService(repo, &mockLister{}, nil, &captureLogger{})

	list := []menus.Menu{
		{ID: "m1", Name: "Bowl", Category: "lunch", Ingredients: []menus.Ingredient{{Name: "Rice", Unit: menus.UnitGram, Weight: 150}}, AssignedDay: "tuesday", AssignedMoment: "LUNCH"},
		{ID: "m2", Name: "Loose", Category: "dinner"},
	}

	if _, err := service.Save(context.Background(), "u1", testWeek, list); err != nil {
		t.Fatalf("Save: %v", err)
	}

	plan, err := service.GetPlan(context.Background(), "u1", testWeek)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	leaf := plan.Meals["tuesday"]["LUNCH"]
	if leaf == nil || leaf.ID != "m1" || len(leaf.Parts) != 1 {
		t.Fatalf("unexpected saved leaf: %+v", leaf)
	}
	if len(plan.Meals) != 1 {
		t.Errorf("expected only the placed menu to be saved, got %d days", len(plan.Meals))
	}

	// Second save overwrites in place.
	list[0].AssignedDay = "wednesday"
	if _, err := service.Save(context.Background(), "u1", testWeek, list); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if len(repo.plans) != 1 || repo.upserts != 2 {
		t.Errorf("expected one plan row updated twice, got %d rows and %d upserts", len(repo.plans), repo.upserts)
	}
	plan, _ = service.GetPlan(context.Background(), "u1", testWeek)
	if _, ok := plan.Meals["wednesday"]["LUNCH"]; !ok {
		t.Errorf("expected wednesday lunch after second save, got %+v", plan.Meals)
	}
}

func TestSave_RejectsDoubleBookedSlot(t *testing.T) {
	repo := &mockPlansRepo{}
	service := NewService(repo, &mockLister{}, nil, &captureLogger{})

	list := []menus.Menu{
		{ID: "m1", AssignedDay: "tuesday", AssignedMoment: "LUNCH"},
		{ID: "m2", AssignedDay: "tuesday", AssignedMoment: "LUNCH"},
	}

	_, err := service.Save(context.Background(), "u1", testWeek, list)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if repo.upserts != 0 {
		t.Error("expected nothing to be stored")
	}
}

func TestPutPlan_Validation(t *testing.T) {
	service := NewService(&mockPlansRepo{}, &mockLister{}, nil, &captureLogger{})

	if _, err := service.PutPlan(context.Background(), Plan{WeekStart: "2024-05-06"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for missing person, got %v", err)
	}
	if _, err := service.PutPlan(context.Background(), Plan{Person: "u1", WeekStart: "May 6"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for bad weekStart, got %v", err)
	}
}

func TestBoard_MergesPlanPoolAndCaller(t *testing.T) {
	repo := &mockPlansRepo{plans: []storage.WeeklyPlanRow{{
		ID:        "p1",
		PersonID:  "u1",
		WeekStart: testWeek,
		Meals:     []byte(`{"tuesday":{"LUNCH":{"id":"m1","name":"Bowl","parts":[{"name":"Rice","grams":150}]}},"someday":{"DINNER":{"id":"m9","parts":[]}}}`),
	}}}
	lister := &mockLister{menus: []menus.Menu{{ID: "m1", Category: "lunch"}, {ID: "m2", Category: "dinner"}}}
	logger := &captureLogger{}
	service := NewService(repo, lister, nil, logger)

	caller := []menus.Menu{{Name: "draft", Category: "snack1"}}
	resp, err := service.Board(context.Background(), "u1", testWeek, caller)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}

	if len(resp.Menus) != 4 {
		t.Fatalf("expected m1, m9, m2 and the draft, got %d: %+v", len(resp.Menus), resp.Menus)
	}
	if got := resp.Board.Days["tuesday"]; len(got) != 1 || got[0].ID != "m1" || got[0].AssignedMoment != "LUNCH" {
		t.Errorf("expected placed m1 on tuesday, got %+v", got)
	}
	if len(resp.Board.Unassigned) != 2 {
		t.Errorf("expected m2 and the draft unassigned, got %+v", resp.Board.Unassigned)
	}
	if len(resp.Board.Orphaned) != 1 || resp.Board.Orphaned[0].ID != "m9" {
		t.Errorf("expected m9 orphaned, got %+v", resp.Board.Orphaned)
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "m9@someday") {
		t.Errorf("expected a warning about m9, got %v", logger.lines)
	}
}

func TestBoard_WarnsOnUnknownMoment(t *testing.T) {
	repo := &mockPlansRepo{plans: []storage.WeeklyPlanRow{{
		ID:        "p1",
		PersonID:  "u1",
		WeekStart: testWeek,
		Meals:     []byte(`{"monday":{"BRUNCH":{"id":"m7","parts":[]},"LUNCH":{"id":"m1","parts":[]}}}`),
	}}}
	logger := &captureLogger{}
	service := NewService(repo, &mockLister{}, nil, logger)

	resp, err := service.Board(context.Background(), "u1", testWeek, nil)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(resp.Board.Days["monday"]) != 2 {
		t.Errorf("expected both menus kept on monday, got %+v", resp.Board.Days["monday"])
	}
	if len(logger.lines) != 1 || !strings.Contains(logger.lines[0], "m7@BRUNCH") || strings.Contains(logger.lines[0], "m1@") {
		t.Errorf("expected one warning naming only m7, got %v", logger.lines)
	}
}

func TestBoard_ListerError(t *testing.T) {
	service := NewService(&mockPlansRepo{}, &mockLister{err: errors.New("db down")}, nil, &captureLogger{})

	if _, err := service.Board(context.Background(), "u1", testWeek, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestMove_ReturnsBoard(t *testing.T) {
	service := NewService(&mockPlansRepo{}, &mockLister{}, []string{"monday", "tuesday"}, &captureLogger{})

	resp, err := service.Move([]menus.Menu{{ID: "m1", Category: "lunch"}}, Drag{
		DraggedID:   "m1",
		Source:      Location{ContainerID: UnassignedContainer},
		Destination: &Location{ContainerID: "tuesday"},
	})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if resp.Outcome != OutcomeAssigned {
		t.Errorf("expected assigned, got %s", resp.Outcome)
	}
	if len(resp.Board.Days) != 2 || len(resp.Board.Days["tuesday"]) != 1 {
		t.Errorf("unexpected board: %+v", resp.Board)
	}
}

func TestParseWeekStart(t *testing.T) {
	got, err := ParseWeekStart("2024-05-06T15:04:05+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(testWeek) {
		t.Errorf("expected %v, got %v", testWeek, got)
	}
	if _, err := ParseWeekStart(""); err == nil {
		t.Error("expected error for empty weekStart")
	}
}
