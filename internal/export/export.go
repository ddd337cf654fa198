// Package export renders a period report as CSV or PDF.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/report"
	"github.com/saadjs/servings-cli/internal/service"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (expected csv or pdf)", value)
	}
}

// Write renders s to w in the given format.
func Write(w io.Writer, format Format, s service.PeriodSummary) error {
	switch format {
	case FormatCSV:
		return CSV(w, s)
	case FormatPDF:
		return PDF(w, s)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

type factRow struct {
	id    nutrient.ID
	value float64
}

// factRows lists the named fields followed by micronutrients in key order.
func factRows(f nutrient.Facts) []factRow {
	rows := []factRow{
		{nutrient.Calories, f.Calories},
		{nutrient.Protein, f.Protein},
		{nutrient.Carbohydrates, f.Carbohydrates},
		{nutrient.Fat, f.Fat},
		{nutrient.Fiber, f.Fiber},
		{nutrient.Sugar, f.Sugar},
		{nutrient.SaturatedFat, f.SaturatedFat},
		{nutrient.UnsaturatedFat, f.UnsaturatedFat},
		{nutrient.TransFat, f.TransFat},
	}
	for _, id := range f.Micros.Keys() {
		rows = append(rows, factRow{id, f.Micros[id]})
	}
	return rows
}

func contributionLabel(c report.Contribution) string {
	if c.Brand == "" {
		return c.Name
	}
	return c.Name + " (" + c.Brand + ")"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
