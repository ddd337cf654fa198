package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/saadjs/servings-cli/internal/service"
)

const (
	pdfFont         = "Helvetica"
	maxBreakdownRow = 5
)

// PDF renders an A4 summary: totals, a per-day table and the top foods for
// each nutrient breakdown.
func PDF(w io.Writer, s service.PeriodSummary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Nutrition report %s to %s", s.From, s.To), false)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, "Nutrition Report")
	pdf.Ln(8)
	pdf.SetFont(pdfFont, "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s   Entries: %d   Items: %d", s.From, s.To, s.EntryCount, s.Totals.ItemCount))
	pdf.Ln(12)

	heading(pdf, "Totals")
	pdf.SetFont(pdfFont, "", 9)
	for _, r := range factRows(s.Totals.Facts) {
		pdf.CellFormat(70, 6, r.id.Name(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, formatAmount(r.value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, r.id.Unit(), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if len(s.Days) > 0 {
		heading(pdf, "Daily totals")
		drawDaysTable(pdf, s)
		pdf.Ln(6)
	}

	if len(s.Nutrients) > 0 {
		heading(pdf, "Top sources")
		pdf.SetFont(pdfFont, "", 9)
		for _, b := range s.Nutrients {
			pdf.SetFont(pdfFont, "B", 9)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s %s", b.Nutrient.Name(), formatAmount(b.TotalAmount), b.Unit), "", 1, "L", false, 0, "")
			pdf.SetFont(pdfFont, "", 9)
			for i, c := range b.Foods {
				if i == maxBreakdownRow {
					break
				}
				pdf.CellFormat(10, 5, "", "", 0, "L", false, 0, "")
				pdf.CellFormat(80, 5, contributionLabel(c), "", 0, "L", false, 0, "")
				pdf.CellFormat(30, 5, formatAmount(c.Amount)+" "+c.Unit, "", 1, "R", false, 0, "")
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func heading(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(pdfFont, "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func drawDaysTable(pdf *gofpdf.Fpdf, s service.PeriodSummary) {
	pdf.SetFont(pdfFont, "B", 8)
	for i, h := range []string{"Date", "Items", "kcal", "Protein g", "Carbs g", "Fat g", "Fiber g"} {
		width := 22.0
		if i == 0 {
			width = 28
		}
		pdf.CellFormat(width, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 8)
	for _, d := range s.Days {
		t := d.Totals
		pdf.CellFormat(28, 6, d.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%d", t.ItemCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.0f", t.Calories), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.1f", t.Protein), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.1f", t.Carbohydrates), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.1f", t.Fat), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.1f", t.Fiber), "1", 1, "R", false, 0, "")
	}
}
