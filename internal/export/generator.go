package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/fdg312/menu-board/internal/menus"
	"github.com/fdg312/menu-board/internal/weekplan"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fontName = "Helvetica"

// RenderPDF draws the plan as one section per board day with each placed
// meal, its ingredient lines and macro totals.
func RenderPDF(plan weekplan.Plan, days []string, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Menu plan %s", plan.WeekStart), true)
	pdf.SetAuthor("menu-board", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := cases.Title(language.English)

	pdf.AddPage()
	pdf.SetFont(fontName, "B", 16)
	pdf.Cell(0, 10, "Weekly menu plan")
	pdf.Ln(10)

	pdf.SetFont(fontName, "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Person: %s   Week of %s", plan.Person, plan.WeekStart)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", generatedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	byDay := map[string][]menus.Menu{}
	var week menus.Nutrients
	for _, m := range weekplan.Decode(plan) {
		byDay[m.AssignedDay] = append(byDay[m.AssignedDay], m)
	}

	for _, day := range days {
		pdf.SetFont(fontName, "B", 13)
		pdf.Cell(0, 8, tr(title.String(day)))
		pdf.Ln(8)

		placed := byDay[day]
		if len(placed) == 0 {
			pdf.SetFont(fontName, "I", 9)
			pdf.Cell(0, 5, "No meals planned")
			pdf.Ln(8)
			continue
		}

		var dayTotal menus.Nutrients
		for _, m := range placed {
			totals := menus.MenuTotals(m)
			dayTotal = addNutrients(dayTotal, totals)
			drawMeal(pdf, tr, m, totals)
		}
		week = addNutrients(week, dayTotal)

		pdf.SetFont(fontName, "B", 9)
		pdf.CellFormat(0, 6, tr("Day total: "+formatNutrients(dayTotal)), "T", 0, "R", false, 0, "")
		pdf.Ln(10)
	}

	pdf.SetFont(fontName, "B", 11)
	pdf.Cell(0, 8, tr("Week total: "+formatNutrients(week)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawMeal(pdf *gofpdf.Fpdf, tr func(string) string, m menus.Menu, totals menus.Nutrients) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(30, 6, m.AssignedMoment, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(m.Name), "", 1, "L", false, 0, "")

	pdf.SetFont(fontName, "", 9)
	for _, ing := range m.Ingredients {
		line := fmt.Sprintf("%s %s %s", formatAmount(ing.Weight), menus.UnitAbbreviation(ing), ing.Name)
		pdf.CellFormat(30, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(fontName, "I", 8)
	pdf.CellFormat(30, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(formatNutrients(totals)), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func addNutrients(a, b menus.Nutrients) menus.Nutrients {
	return menus.Nutrients{
		Carbs:   a.Carbs + b.Carbs,
		Protein: a.Protein + b.Protein,
		Fat:     a.Fat + b.Fat,
		Kcal:    a.Kcal + b.Kcal,
	}
}

func formatNutrients(n menus.Nutrients) string {
	return fmt.Sprintf("%.0f kcal, C %.1f g, P %.1f g, F %.1f g", n.Kcal, n.Carbs, n.Protein, n.Fat)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
