package report

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
)

// Contribution is one line of a breakdown: a food's share of a nutrient, or a
// nutrient's amount within a food.
type Contribution struct {
	Name            string  `json:"name"`
	Brand           string  `json:"brand,omitempty"`
	Amount          float64 `json:"amount"`
	Unit            string  `json:"unit"`
	DisplayUnit     string  `json:"display_unit,omitempty"`
	DisplayQuantity float64 `json:"display_quantity,omitempty"`
}

// NutrientBreakdown is one nutrient's total and the foods that contributed it.
type NutrientBreakdown struct {
	Nutrient    nutrient.ID    `json:"nutrient"`
	TotalAmount float64        `json:"total_amount"`
	Unit        string         `json:"unit"`
	Foods       []Contribution `json:"foods"`
}

// FoodBreakdown is one food name's total quantity and its nutrients.
type FoodBreakdown struct {
	Name        string         `json:"food"`
	TotalAmount float64        `json:"total_amount"`
	Unit        string         `json:"unit"`
	Nutrients   []Contribution `json:"nutrients"`
}

const defaultDisplayUnit = "serving"

var breakdownNutrients = []nutrient.ID{
	nutrient.Protein,
	nutrient.Carbohydrates,
	nutrient.Fat,
	nutrient.Fiber,
	nutrient.Sugar,
	nutrient.SaturatedFat,
}

var foodNutrients = []nutrient.ID{
	nutrient.Calories,
	nutrient.Protein,
	nutrient.Carbohydrates,
	nutrient.Fat,
	nutrient.Fiber,
	nutrient.Sugar,
	nutrient.SaturatedFat,
}

// NutrientBreakdowns returns one breakdown per nutrient present in items,
// largest total first. Contributions within a breakdown are largest first.
func NutrientBreakdowns(items []scaling.ScaledFoodItem) []NutrientBreakdown {
	ids := append([]nutrient.ID(nil), breakdownNutrients...)
	ids = append(ids, microKeys(items)...)

	out := make([]NutrientBreakdown, 0, len(ids))
	for _, id := range ids {
		b := NutrientBreakdown{Nutrient: id, Unit: id.Unit()}
		for _, it := range items {
			amount := it.Amount(id)
			if amount <= 0 {
				continue
			}
			b.TotalAmount += amount
			b.Foods = append(b.Foods, Contribution{
				Name:            it.Name(),
				Brand:           it.Brand(),
				Amount:          amount,
				Unit:            id.Unit(),
				DisplayUnit:     displayUnit(it.Unit()),
				DisplayQuantity: it.Quantity(),
			})
		}
		if len(b.Foods) == 0 {
			continue
		}
		sortContributions(b.Foods)
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalAmount > out[j].TotalAmount
	})
	return out
}

// FoodBreakdowns groups items by exact name, in order of first appearance.
// A group's total is the sum of its quantities in the first item's unit;
// differing units within a group are logged, not converted.
func FoodBreakdowns(items []scaling.ScaledFoodItem) []FoodBreakdown {
	order := make([]string, 0)
	groups := map[string][]scaling.ScaledFoodItem{}
	for _, it := range items {
		if _, seen := groups[it.Name()]; !seen {
			order = append(order, it.Name())
		}
		groups[it.Name()] = append(groups[it.Name()], it)
	}

	out := make([]FoodBreakdown, 0, len(order))
	for _, name := range order {
		group := groups[name]
		b := FoodBreakdown{Name: name, Unit: displayUnit(group[0].Unit())}
		for _, it := range group {
			if u := displayUnit(it.Unit()); u != b.Unit {
				slog.Warn("food group mixes units; total uses the first unit",
					"food", name,
					"unit", b.Unit,
					"other_unit", u,
				)
			}
			b.TotalAmount += it.Quantity()
		}

		ids := append([]nutrient.ID(nil), foodNutrients...)
		ids = append(ids, microKeys(group)...)
		for _, id := range ids {
			sum := 0.0
			for _, it := range group {
				sum += it.Amount(id)
			}
			if sum <= 0 {
				continue
			}
			b.Nutrients = append(b.Nutrients, Contribution{Name: id.Name(), Amount: sum, Unit: id.Unit()})
		}
		sortContributions(b.Nutrients)
		out = append(out, b)
	}
	return out
}

func microKeys(items []scaling.ScaledFoodItem) []nutrient.ID {
	seen := map[nutrient.ID]bool{}
	for _, it := range items {
		for _, k := range it.MicroKeys() {
			if k.Class() == nutrient.ClassMicro {
				seen[k] = true
			}
		}
	}
	keys := make([]nutrient.ID, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortContributions(c []Contribution) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Amount > c[j].Amount
	})
}

func displayUnit(unit string) string {
	if strings.TrimSpace(unit) == "" {
		return defaultDisplayUnit
	}
	return unit
}
