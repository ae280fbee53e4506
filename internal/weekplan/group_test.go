package weekplan

import (
	"testing"

	"github.com/fdg312/menu-board/internal/menus"
)

func TestGroupByDay(t *testing.T) {
	list := []menus.Menu{
		{ID: "a", AssignedDay: "monday", AssignedMoment: "LUNCH"},
		{ID: "b"},
		{ID: "c", AssignedDay: "monday", AssignedMoment: "DINNER"},
		{ID: "d", AssignedDay: "funday", AssignedMoment: "LUNCH"},
		{ID: "e", AssignedDay: "sunday", AssignedMoment: "SUPPER"},
	}

	board := GroupByDay(list, DefaultDays)

	if len(board.Days) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(board.Days))
	}
	if got := board.Days["monday"]; len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("unexpected monday bucket: %+v", got)
	}
	if got := board.Days["tuesday"]; got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil tuesday bucket, got %#v", got)
	}
	if len(board.Days["sunday"]) != 1 {
		t.Errorf("expected one sunday menu, got %d", len(board.Days["sunday"]))
	}
	if len(board.Unassigned) != 1 || board.Unassigned[0].ID != "b" {
		t.Errorf("unexpected unassigned bucket: %+v", board.Unassigned)
	}
	if len(board.Orphaned) != 1 || board.Orphaned[0].ID != "d" {
		t.Errorf("unexpected orphaned menus: %+v", board.Orphaned)
	}
	if board.DayOrder[0] != "monday" || board.DayOrder[6] != "sunday" {
		t.Errorf("unexpected day order: %v", board.DayOrder)
	}
}

func TestGroupByDay_DoesNotMutateInput(t *testing.T) {
	list := []menus.Menu{{ID: "a", AssignedDay: "monday", AssignedMoment: "LUNCH"}}
	days := []string{"monday"}

	board := GroupByDay(list, days)
	board.Days["monday"][0].Name = "changed"
	board.DayOrder[0] = "changed"

	if list[0].Name != "" {
		t.Error("input menus were shared with the board")
	}
	if days[0] != "monday" {
		t.Error("input days were shared with the board")
	}
}
