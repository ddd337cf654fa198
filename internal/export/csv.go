package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/saadjs/servings-cli/internal/service"
)

var csvHeader = []string{"section", "key", "nutrient", "amount", "unit"}

// CSV writes one row per value: period totals, per-day totals, nutrient
// breakdown contributions and food breakdown contributions.
func CSV(w io.Writer, s service.PeriodSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	period := s.From + ".." + s.To
	for _, r := range factRows(s.Totals.Facts) {
		if err := cw.Write([]string{"total", period, r.id.Name(), formatAmount(r.value), r.id.Unit()}); err != nil {
			return fmt.Errorf("write csv totals: %w", err)
		}
	}
	for _, d := range s.Days {
		for _, r := range factRows(d.Totals.Facts) {
			if err := cw.Write([]string{"day", d.Date, r.id.Name(), formatAmount(r.value), r.id.Unit()}); err != nil {
				return fmt.Errorf("write csv day %s: %w", d.Date, err)
			}
		}
	}
	for _, b := range s.Nutrients {
		for _, c := range b.Foods {
			if err := cw.Write([]string{"nutrient", contributionLabel(c), b.Nutrient.Name(), formatAmount(c.Amount), c.Unit}); err != nil {
				return fmt.Errorf("write csv nutrient breakdown: %w", err)
			}
		}
	}
	for _, f := range s.Foods {
		for _, c := range f.Nutrients {
			if err := cw.Write([]string{"food", f.Name, c.Name, formatAmount(c.Amount), c.Unit}); err != nil {
				return fmt.Errorf("write csv food breakdown: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
