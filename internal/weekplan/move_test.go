package weekplan

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fdg312/menu-board/internal/menus"
)

func boardMenus() []menus.Menu {
	return []menus.Menu{
		{ID: "m1", Name: "Chicken bowl", Category: "lunch"},
		{ID: "m2", Name: "Pasta", Category: "Lunch"},
		{ID: "m3", Name: "Omelette", Category: "breakfast", AssignedDay: "monday", AssignedMoment: "BREAKFAST"},
		{ID: "m4", Name: "Brunch plate", Category: "brunch"},
		{ID: "m5", Name: "Mystery", Category: ""},
	}
}

func cloneMenus(list []menus.Menu) []menus.Menu {
	out := make([]menus.Menu, len(list))
	copy(out, list)
	return out
}

func TestApplyDrag_Cancelled(t *testing.T) {
	list := boardMenus()

	got, outcome, err := ApplyDrag(list, Drag{DraggedID: "m1", Source: Location{ContainerID: "unassigned"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeNoop {
		t.Errorf("expected noop, got %s", outcome)
	}
	if &got[0] != &list[0] {
		t.Error("expected the same slice back")
	}
}

func TestApplyDrag_DroppedInPlace(t *testing.T) {
	list := boardMenus()
	drag := Drag{
		DraggedID:   "m3",
		Source:      Location{ContainerID: "monday", Index: 0},
		Destination: &Location{ContainerID: "monday", Index: 0},
	}

	got, outcome, err := ApplyDrag(list, drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeNoop {
		t.Errorf("expected noop, got %s", outcome)
	}
	if !reflect.DeepEqual(got, list) {
		t.Error("expected list unchanged")
	}
}

func TestApplyDrag_AssignFromCategory(t *testing.T) {
	list := boardMenus()
	before := cloneMenus(list)
	drag := Drag{
		DraggedID:   "m1",
		Source:      Location{ContainerID: "unassigned", Index: 0},
		Destination: &Location{ContainerID: "tuesday", Index: 0},
	}

	got, outcome, err := ApplyDrag(list, drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeAssigned {
		t.Errorf("expected assigned, got %s", outcome)
	}
	if got[0].AssignedDay != "tuesday" || got[0].AssignedMoment != "LUNCH" {
		t.Errorf("expected (tuesday, LUNCH), got (%s, %s)", got[0].AssignedDay, got[0].AssignedMoment)
	}
	for i := 1; i < len(got); i++ {
		if !reflect.DeepEqual(got[i], before[i]) {
			t.Errorf("menu %d changed: %+v", i, got[i])
		}
	}
	if !reflect.DeepEqual(list, before) {
		t.Error("input list was mutated")
	}
}

func TestApplyDrag_SecondPlacementConflicts(t *testing.T) {
	list := boardMenus()
	first := Drag{
		DraggedID:   "m1",
		Source:      Location{ContainerID: "unassigned", Index: 0},
		Destination: &Location{ContainerID: "tuesday", Index: 0},
	}
	list, _, err := ApplyDrag(list, first)
	if err != nil {
		t.Fatalf("first placement: %v", err)
	}
	before := cloneMenus(list)

	second := Drag{
		DraggedID:   "m2",
		Source:      Location{ContainerID: "unassigned", Index: 0},
		Destination: &Location{ContainerID: "tuesday", Index: 1},
	}
	got, _, err := ApplyDrag(list, second)

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %v", err)
	}
	if conflict.MenuID != "m1" {
		t.Errorf("expected occupant m1, got %s", conflict.MenuID)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Tuesday") || !strings.Contains(msg, "LUNCH") {
		t.Errorf("expected message to name Tuesday and LUNCH, got %q", msg)
	}
	if !reflect.DeepEqual(got, before) {
		t.Error("expected list unchanged after conflict")
	}
}

func TestApplyDrag_Unassign(t *testing.T) {
	list := boardMenus()
	drag := Drag{
		DraggedID:   "m3",
		Source:      Location{ContainerID: "monday", Index: 0},
		Destination: &Location{ContainerID: UnassignedContainer, Index: 2},
	}

	got, outcome, err := ApplyDrag(list, drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeUnassigned {
		t.Errorf("expected unassigned, got %s", outcome)
	}
	if got[2].AssignedDay != "" || got[2].AssignedMoment != "" {
		t.Errorf("expected cleared assignment, got %+v", got[2])
	}
	if list[2].AssignedDay != "monday" {
		t.Error("input list was mutated")
	}
}

func TestApplyDrag_ReassignKeepsMoment(t *testing.T) {
	drag := Drag{
		DraggedID:   "m3",
		Source:      Location{ContainerID: "monday", Index: 0},
		Destination: &Location{ContainerID: "thursday", Index: 0},
	}

	got, _, err := ApplyDrag(boardMenus(), drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[2].AssignedDay != "thursday" || got[2].AssignedMoment != "BREAKFAST" {
		t.Errorf("expected (thursday, BREAKFAST), got (%s, %s)", got[2].AssignedDay, got[2].AssignedMoment)
	}
}

func TestApplyDrag_UnknownCategoryIsUppercased(t *testing.T) {
	drag := Drag{
		DraggedID:   "m4",
		Source:      Location{ContainerID: "unassigned", Index: 3},
		Destination: &Location{ContainerID: "sunday", Index: 0},
	}

	got, _, err := ApplyDrag(boardMenus(), drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[3].AssignedMoment != "BRUNCH" {
		t.Errorf("expected BRUNCH, got %s", got[3].AssignedMoment)
	}
}

func TestApplyDrag_UnresolvedMoment(t *testing.T) {
	list := boardMenus()
	before := cloneMenus(list)
	drag := Drag{
		DraggedID:   "m5",
		Source:      Location{ContainerID: "unassigned", Index: 4},
		Destination: &Location{ContainerID: "friday", Index: 0},
	}

	got, _, err := ApplyDrag(list, drag)
	if !errors.Is(err, ErrMomentUnresolved) {
		t.Fatalf("expected ErrMomentUnresolved, got %v", err)
	}
	if !reflect.DeepEqual(got, before) {
		t.Error("expected list unchanged")
	}
}

func TestApplyDrag_UnknownMenu(t *testing.T) {
	drag := Drag{
		DraggedID:   "ghost",
		Source:      Location{ContainerID: "unassigned", Index: 0},
		Destination: &Location{ContainerID: "friday", Index: 0},
	}

	_, _, err := ApplyDrag(boardMenus(), drag)
	if !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("expected ErrMenuNotFound, got %v", err)
	}

	drag.DraggedID = ""
	if _, _, err := ApplyDrag([]menus.Menu{{Name: "draft"}}, drag); !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("expected drafts not to be draggable by empty id, got %v", err)
	}
}

func TestApplyDrag_ReorderWithinDayIsNotAConflict(t *testing.T) {
	drag := Drag{
		DraggedID:   "m3",
		Source:      Location{ContainerID: "monday", Index: 0},
		Destination: &Location{ContainerID: "monday", Index: 1},
	}

	got, outcome, err := ApplyDrag(boardMenus(), drag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeAssigned || got[2].AssignedDay != "monday" {
		t.Errorf("unexpected result: %s %+v", outcome, got[2])
	}
}

func TestApplyDrag_BlankDestinationRejected(t *testing.T) {
	list := boardMenus()
	snapshot := cloneMenus(list)

	for _, container := range []string{"", "  "} {
		drag := Drag{
			DraggedID:   "m1",
			Source:      Location{ContainerID: UnassignedContainer, Index: 0},
			Destination: &Location{ContainerID: container, Index: 0},
		}
		got, outcome, err := ApplyDrag(list, drag)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("container %q: expected ErrValidation, got %v (outcome %q)", container, err, outcome)
		}
		if !reflect.DeepEqual(got, snapshot) {
			t.Errorf("container %q: list changed on rejected drag", container)
		}
	}

	// второй menu той же категории не получает ложный конфликт
	drag := Drag{
		DraggedID:   "m2",
		Source:      Location{ContainerID: UnassignedContainer, Index: 1},
		Destination: &Location{ContainerID: "", Index: 0},
	}
	if _, _, err := ApplyDrag(list, drag); errors.As(err, new(*ConflictError)) {
		t.Errorf("expected a validation error, got conflict %v", err)
	}
}
