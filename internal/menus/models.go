package menus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the measure an ingredient weight is expressed in.
type Unit string

const (
	UnitGram       Unit = "GRAM"
	UnitML         Unit = "ML"
	UnitSlice      Unit = "SLICE"
	UnitUnit       Unit = "UNIT"
	UnitTeaspoon   Unit = "TEASPOON"
	UnitTablespoon Unit = "TABLESPOON"
	UnitCup        Unit = "CUP"
	UnitPiece      Unit = "PIECE"
)

// Countable units carry macros per item instead of per 100.
func (u Unit) Countable() bool {
	return u == UnitUnit || u == UnitSlice || u == UnitPiece
}

// Ingredient is a canonical ingredient as used inside one menu.
// Weight is the quantity of Unit in that menu.
type Ingredient struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Unit     Unit    `json:"unit"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Weight   float64 `json:"weight"`
}

// Menu is the working entity of the weekly board. Empty ID means a draft.
type Menu struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Category       string       `json:"category"`
	PersonID       string       `json:"personId"`
	Ingredients    []Ingredient `json:"ingredients"`
	AssignedDay    string       `json:"assignedDay,omitempty"`
	AssignedMoment string       `json:"assignedMoment,omitempty"`
}

// Placed reports whether both assignment fields are set.
func (m Menu) Placed() bool {
	return m.AssignedDay != "" && m.AssignedMoment != ""
}

// Validate checks a menu before it is persisted.
func (m Menu) Validate() error {
	if m.PersonID == "" {
		return fmt.Errorf("personId is required")
	}
	name := strings.TrimSpace(m.Name)
	if len(name) < 1 || len(name) > 200 {
		return fmt.Errorf("name must be between 1 and 200 characters")
	}
	if strings.TrimSpace(m.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if len(m.Ingredients) > 100 {
		return fmt.Errorf("ingredients cannot exceed 100")
	}
	for i, ing := range m.Ingredients {
		if ing.Weight <= 0 {
			return fmt.Errorf("ingredients[%d]: weight must be greater than 0", i)
		}
		if ing.Carbs < 0 || ing.Protein < 0 || ing.Fat < 0 {
			return fmt.Errorf("ingredients[%d]: macros must not be negative", i)
		}
	}
	return nil
}

// Number decodes a JSON number, a numeric string or null. Anything else is 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Text decodes a JSON string, a bare number or null.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		*t = ""
	default:
		*t = Text(data)
	}
	return nil
}

// RawIngredient is an ingredient-like payload from a search result, a DB row
// or a partial edit.
type RawIngredient struct {
	ID       Text   `json:"id"`
	Name     Text   `json:"name"`
	Carbs    Number `json:"carbs"`
	Protein  Number `json:"protein"`
	Fat      Number `json:"fat"`
	Unit     Text   `json:"unit"`
	ImageURL Text   `json:"imageUrl"`
	Weight   Number `json:"weight"`
	// Grams is the weight field used by stored plan parts.
	Grams Number `json:"grams"`
}

// RawMenu is a menu payload before normalization.
type RawMenu struct {
	ID             Text            `json:"id"`
	Name           Text            `json:"name"`
	Category       Text            `json:"category"`
	PersonID       Text            `json:"personId"`
	Ingredients    []RawIngredient `json:"ingredients"`
	AssignedDay    Text            `json:"assignedDay"`
	AssignedMoment Text            `json:"assignedMoment"`
}

type ListMenusResponse struct {
	Menus []Menu `json:"menus"`
}

type MenuResponse struct {
	Menu   Menu      `json:"menu"`
	Totals Nutrients `json:"totals"`
}
