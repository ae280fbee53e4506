package weekplan

import "github.com/fdg312/menu-board/internal/menus"

// Merge builds one working set from plan-derived menus, the unassigned pool
// and the caller's list, in that order of precedence. The first copy of an id
// wins, so a placed plan menu is never replaced by its pool copy. Drafts
// (empty id) from the caller are always kept.
func Merge(caller, plan, unassigned []menus.Menu) []menus.Menu {
	out := make([]menus.Menu, 0, len(plan)+len(unassigned)+len(caller))
	seen := make(map[string]bool, cap(out))

	add := func(list []menus.Menu) {
		for _, m := range list {
			if m.ID == "" {
				out = append(out, m)
				continue
			}
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			out = append(out, m)
		}
	}

	add(plan)
	add(unassigned)
	add(caller)
	return out
}
