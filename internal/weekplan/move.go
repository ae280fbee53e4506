package weekplan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/moments"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrMenuNotFound     = errors.New("dragged menu not found")
	ErrMomentUnresolved = errors.New("cannot resolve meal moment")
)

// ConflictError reports a drop onto a slot another menu already holds.
type ConflictError struct {
	Day    string
	Moment string
	// MenuID is the menu occupying the slot.
	MenuID string
}

func (e *ConflictError) Error() string {
	day := cases.Title(language.English).String(e.Day)
	return fmt.Sprintf("%s %s is already taken by menu %s", day, e.Moment, e.MenuID)
}

// ApplyDrag applies a drag result to the menu list. Rejected moves return
// the input list untouched together with the error. On success only the
// dragged element differs from the input.
func ApplyDrag(list []menus.Menu, drag Drag) ([]menus.Menu, Outcome, error) {
	dest := drag.Destination
	if dest == nil {
		return list, OutcomeNoop, nil
	}
	if dest.ContainerID == drag.Source.ContainerID && dest.Index == drag.Source.Index {
		return list, OutcomeNoop, nil
	}

	if strings.TrimSpace(dest.ContainerID) == "" {
		return list, "", fmt.Errorf("%w: drop target has no container", ErrValidation)
	}

	idx := indexOf(list, drag.DraggedID)
	if idx < 0 {
		return list, "", fmt.Errorf("%w: %q", ErrMenuNotFound, drag.DraggedID)
	}
	dragged := list[idx]

	if dest.ContainerID == UnassignedContainer {
		dragged.AssignedDay = ""
		dragged.AssignedMoment = ""
		return replaceAt(list, idx, dragged), OutcomeUnassigned, nil
	}

	day := dest.ContainerID
	moment := dragged.AssignedMoment
	if moment == "" {
		resolved, ok := moments.ForCategory(dragged.Category)
		if !ok {
			return list, "", fmt.Errorf("%w for menu %q (category %q)", ErrMomentUnresolved, dragged.ID, dragged.Category)
		}
		moment = resolved
	}

	for i, other := range list {
		if i == idx || other.ID == drag.DraggedID {
			continue
		}
		if other.AssignedDay == day && other.AssignedMoment == moment {
			return list, "", &ConflictError{Day: day, Moment: moment, MenuID: other.ID}
		}
	}

	dragged.AssignedDay = day
	dragged.AssignedMoment = moment
	return replaceAt(list, idx, dragged), OutcomeAssigned, nil
}

func indexOf(list []menus.Menu, id string) int {
	if id == "" {
		return -1
	}
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(list []menus.Menu, idx int, m menus.Menu) []menus.Menu {
	out := make([]menus.Menu, len(list))
	copy(out, list)
	out[idx] = m
	return out
}
