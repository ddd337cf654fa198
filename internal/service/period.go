package service

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/servings-cli/internal/report"
)

// PeriodSummary is the nutrition report for an inclusive date range.
type PeriodSummary struct {
	From       string                     `json:"from"`
	To         string                     `json:"to"`
	EntryCount int                        `json:"entry_count"`
	Totals     report.NutritionTotals     `json:"totals"`
	Days       []report.DayTotals         `json:"days"`
	Nutrients  []report.NutrientBreakdown `json:"nutrient_breakdowns"`
	Foods      []report.FoodBreakdown     `json:"food_breakdowns"`
}

func PeriodReport(db *sql.DB, from, to string) (PeriodSummary, error) {
	from, err := normalizeDate(from)
	if err != nil {
		return PeriodSummary{}, err
	}
	to, err = normalizeDate(to)
	if err != nil {
		return PeriodSummary{}, err
	}
	if from > to {
		return PeriodSummary{}, fmt.Errorf("from date %s is after to date %s", from, to)
	}

	entries, err := entriesBetween(db, from, to)
	if err != nil {
		return PeriodSummary{}, err
	}
	items := report.Flatten(entries)
	return PeriodSummary{
		From:       from,
		To:         to,
		EntryCount: len(entries),
		Totals:     report.Totals(items),
		Days:       report.DailyTotals(entries),
		Nutrients:  report.NutrientBreakdowns(items),
		Foods:      report.FoodBreakdowns(items),
	}, nil
}
