package moments

import "strings"

// Meal-moment keys as stored in plan JSON and on placed menus.
const (
	Breakfast = "BREAKFAST"
	Snack1    = "SNACK1"
	Lunch     = "LUNCH"
	Snack2    = "SNACK2"
	Dinner    = "DINNER"
	Supper    = "SUPPER"
)

// Order lists the moments by time in day.
var Order = []string{Breakfast, Snack1, Lunch, Snack2, Dinner, Supper}

var byCategory = map[string]string{
	"breakfast": Breakfast,
	"snack1":    Snack1,
	"lunch":     Lunch,
	"snack2":    Snack2,
	"dinner":    Dinner,
	"supper":    Supper,
}

// ForCategory maps a menu category to its meal-moment key.
// Known categories match case-insensitively; any other non-empty category
// becomes its upper-cased form. ok is false only for a blank category.
func ForCategory(category string) (moment string, ok bool) {
	c := strings.TrimSpace(category)
	if c == "" {
		return "", false
	}
	if m, found := byCategory[strings.ToLower(c)]; found {
		return m, true
	}
	return strings.ToUpper(c), true
}

// CategoryFor is the inverse of ForCategory: "LUNCH" -> "lunch".
func CategoryFor(moment string) string {
	return strings.ToLower(strings.TrimSpace(moment))
}

// Known reports whether moment is one of the fixed vocabulary keys.
func Known(moment string) bool {
	_, found := byCategory[strings.ToLower(moment)]
	return found && strings.ToUpper(moment) == moment
}

// Index returns the position of moment in Order. Unknown moments sort last.
func Index(moment string) int {
	m, ok := ForCategory(moment)
	if !ok {
		return len(Order)
	}
	for i, o := range Order {
		if o == m {
			return i
		}
	}
	return len(Order)
}
