package weekplan

import "github.com/fdg312/menu-board/internal/menus"

// GroupByDay partitions menus into one bucket per requested day. Menus with
// no day go to Unassigned, menus on a day outside days go to Orphaned.
func GroupByDay(list []menus.Menu, days []string) Board {
	dayOrder := make([]string, len(days))
	copy(dayOrder, days)

	board := Board{
		DayOrder:   dayOrder,
		Days:       make(map[string][]menus.Menu, len(days)),
		Unassigned: []menus.Menu{},
		Orphaned:   []menus.Menu{},
	}
	for _, day := range days {
		board.Days[day] = []menus.Menu{}
	}

	for _, m := range list {
		if m.AssignedDay == "" {
			board.Unassigned = append(board.Unassigned, m)
			continue
		}
		bucket, ok := board.Days[m.AssignedDay]
		if !ok {
			board.Orphaned = append(board.Orphaned, m)
			continue
		}
		board.Days[m.AssignedDay] = append(bucket, m)
	}

	return board
}
