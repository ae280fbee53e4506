package weekplan

import (
	"sort"
	"strings"

	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/moments"
)

const unnamedMenu = "Unnamed Menu"

// Decode expands a plan into placed menus, days in weekday order and
// moments in time-of-day order. Leaves without an id get "<day>-<moment>".
func Decode(plan Plan) []menus.Menu {
	result := []menus.Menu{}

	for _, day := range sortedDays(plan.Meals) {
		byMoment := plan.Meals[day]
		for _, moment := range sortedMoments(byMoment) {
			meal := byMoment[moment]
			if meal == nil {
				continue
			}

			ingredients := make([]menus.Ingredient, 0, len(meal.Parts))
			for _, part := range meal.Parts {
				ingredients = append(ingredients, part.ingredient())
			}

			id := meal.ID
			if id == "" {
				id = day + "-" + moment
			}

			name := meal.Name
			if name == "" && len(ingredients) > 0 {
				name = ingredients[0].Name
			}
			if name == "" {
				name = unnamedMenu
			}

			result = append(result, menus.Menu{
				ID:             id,
				Name:           name,
				Category:       moments.CategoryFor(moment),
				PersonID:       plan.Person,
				Ingredients:    ingredients,
				AssignedDay:    day,
				AssignedMoment: moment,
			})
		}
	}

	return result
}

// Encode groups placed menus by (day, moment). Unassigned menus are dropped.
// Two menus on the same slot yield a *ConflictError.
func Encode(person, weekStart string, list []menus.Menu) (Plan, error) {
	plan := Plan{
		Person:    person,
		WeekStart: weekStart,
		Meals:     map[string]map[string]*Meal{},
	}

	owner := map[string]string{}
	for _, m := range list {
		if !m.Placed() {
			continue
		}

		key := m.AssignedDay + "\x00" + m.AssignedMoment
		if other, taken := owner[key]; taken {
			return Plan{}, &ConflictError{Day: m.AssignedDay, Moment: m.AssignedMoment, MenuID: other}
		}
		owner[key] = m.ID

		parts := make([]MealPart, 0, len(m.Ingredients))
		for _, ing := range m.Ingredients {
			parts = append(parts, partFromIngredient(ing))
		}

		if plan.Meals[m.AssignedDay] == nil {
			plan.Meals[m.AssignedDay] = map[string]*Meal{}
		}
		plan.Meals[m.AssignedDay][m.AssignedMoment] = &Meal{
			ID:    m.ID,
			Name:  m.Name,
			Parts: parts,
		}
	}

	return plan, nil
}

// compactMeals drops null leaves and days left empty.
func compactMeals(meals map[string]map[string]*Meal) map[string]map[string]*Meal {
	out := map[string]map[string]*Meal{}
	for day, byMoment := range meals {
		for moment, meal := range byMoment {
			if meal == nil {
				continue
			}
			if out[day] == nil {
				out[day] = map[string]*Meal{}
			}
			out[day][moment] = meal
		}
	}
	return out
}

func dayRank(day string) int {
	d := strings.ToLower(strings.TrimSpace(day))
	for i, known := range DefaultDays {
		if known == d {
			return i
		}
	}
	return len(DefaultDays)
}

func sortedDays(meals map[string]map[string]*Meal) []string {
	days := make([]string, 0, len(meals))
	for day := range meals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		ri, rj := dayRank(days[i]), dayRank(days[j])
		if ri != rj {
			return ri < rj
		}
		return days[i] < days[j]
	})
	return days
}

func sortedMoments(byMoment map[string]*Meal) []string {
	keys := make([]string, 0, len(byMoment))
	for moment := range byMoment {
		keys = append(keys, moment)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := moments.Index(keys[i]), moments.Index(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}
