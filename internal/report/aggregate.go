// Package report sums scaled food items into totals and breakdown views.
// Every input is a scaling.ScaledFoodItem, whose nutrients are already final
// for the portion eaten; nothing here multiplies by quantity.
package report

import (
	"log/slog"
	"sort"

	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
)

// NutritionTotals is the sum of a set of items.
type NutritionTotals struct {
	ItemCount int `json:"item_count"`
	nutrient.Facts
}

// DayTotals are the totals of every entry logged on one date.
type DayTotals struct {
	Date   string          `json:"date"`
	Totals NutritionTotals `json:"totals"`
}

// Flatten concatenates the items of every group of every entry, in order.
func Flatten(entries []model.FoodEntry) []scaling.ScaledFoodItem {
	items := make([]scaling.ScaledFoodItem, 0)
	for _, e := range entries {
		for _, g := range e.Groups {
			for _, it := range g.Items {
				items = append(items, it.ScaledFoodItem)
			}
		}
	}
	return items
}

// Totals sums the items' nutrients field by field and micronutrients key by key.
func Totals(items []scaling.ScaledFoodItem) NutritionTotals {
	out := NutritionTotals{Facts: nutrient.Facts{Micros: nutrient.Amounts{}}}
	for _, it := range items {
		f := it.Facts()
		out.Calories += f.Calories
		out.Protein += f.Protein
		out.Carbohydrates += f.Carbohydrates
		out.Fat += f.Fat
		out.Fiber += f.Fiber
		out.Sugar += f.Sugar
		out.SaturatedFat += f.SaturatedFat
		out.UnsaturatedFat += f.UnsaturatedFat
		out.TransFat += f.TransFat
		for k, v := range f.Micros {
			out.Micros[k] += v
		}
		out.ItemCount++
	}
	slog.Debug("summed food items", "items", out.ItemCount, "micronutrients", len(out.Micros))
	return out
}

// DailyTotals groups entries by date and sums each day, oldest first.
func DailyTotals(entries []model.FoodEntry) []DayTotals {
	byDate := map[string][]model.FoodEntry{}
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DayTotals, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayTotals{Date: d, Totals: Totals(Flatten(byDate[d]))})
	}
	return out
}
