package menus

import "strings"

var unitAbbreviations = map[Unit]string{
	UnitGram:       "g",
	UnitML:         "ml",
	UnitSlice:      "sl",
	UnitUnit:       "u",
	UnitTeaspoon:   "tsp",
	UnitTablespoon: "tbsp",
	UnitCup:        "cup",
	UnitPiece:      "pc",
}

// NormalizeIngredient always returns a fully populated ingredient.
func NormalizeIngredient(raw RawIngredient) Ingredient {
	name := strings.TrimSpace(string(raw.Name))

	weight := float64(raw.Weight)
	if weight == 0 {
		weight = float64(raw.Grams)
	}

	return Ingredient{
		ID:       strings.TrimSpace(string(raw.ID)),
		Name:     name,
		Carbs:    float64(raw.Carbs),
		Protein:  float64(raw.Protein),
		Fat:      float64(raw.Fat),
		Unit:     normalizeUnit(string(raw.Unit), name),
		ImageURL: strings.TrimSpace(string(raw.ImageURL)),
		Weight:   weight,
	}
}

func normalizeUnit(code, name string) Unit {
	u := Unit(strings.ToUpper(strings.TrimSpace(code)))
	if u != "" {
		return u
	}
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "egg"):
		return UnitUnit
	case strings.Contains(lower, "slice"):
		return UnitSlice
	}
	return UnitGram
}

// NormalizeMenu normalizes a whole menu payload. Ingredients is never nil.
func NormalizeMenu(raw RawMenu) Menu {
	ingredients := make([]Ingredient, 0, len(raw.Ingredients))
	for _, ri := range raw.Ingredients {
		ingredients = append(ingredients, NormalizeIngredient(ri))
	}

	return Menu{
		ID:             strings.TrimSpace(string(raw.ID)),
		Name:           strings.TrimSpace(string(raw.Name)),
		Category:       strings.TrimSpace(string(raw.Category)),
		PersonID:       strings.TrimSpace(string(raw.PersonID)),
		Ingredients:    ingredients,
		AssignedDay:    strings.TrimSpace(string(raw.AssignedDay)),
		AssignedMoment: strings.TrimSpace(string(raw.AssignedMoment)),
	}
}

// UnitAbbreviation returns the display abbreviation for an ingredient's unit.
// Eggs and slices are recognised by name before the unit table is consulted.
func UnitAbbreviation(ing Ingredient) string {
	lower := strings.ToLower(ing.Name)
	switch {
	case strings.Contains(lower, "egg"):
		return "u"
	case strings.Contains(lower, "slice"):
		return "sl"
	}
	if abbr, ok := unitAbbreviations[Unit(strings.ToUpper(string(ing.Unit)))]; ok {
		return abbr
	}
	return "g"
}

// Nutrients is the macro contribution of an ingredient or a whole menu.
type Nutrients struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Kcal    float64 `json:"kcal"`
}

func (n Nutrients) add(o Nutrients) Nutrients {
	return Nutrients{
		Carbs:   n.Carbs + o.Carbs,
		Protein: n.Protein + o.Protein,
		Fat:     n.Fat + o.Fat,
		Kcal:    n.Kcal + o.Kcal,
	}
}

// Macros scales an ingredient's base values by its weight: per item for
// countable units, per 100 otherwise.
func Macros(ing Ingredient) Nutrients {
	factor := ing.Weight / 100
	if Unit(strings.ToUpper(string(ing.Unit))).Countable() {
		factor = ing.Weight
	}

	n := Nutrients{
		Carbs:   ing.Carbs * factor,
		Protein: ing.Protein * factor,
		Fat:     ing.Fat * factor,
	}
	n.Kcal = 4*n.Carbs + 4*n.Protein + 9*n.Fat
	return n
}

// MenuTotals sums Macros over all ingredients of a menu.
func MenuTotals(menu Menu) Nutrients {
	var total Nutrients
	for _, ing := range menu.Ingredients {
		total = total.add(Macros(ing))
	}
	return total
}
