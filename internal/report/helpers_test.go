package report_test

import (
	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

// scaledItem builds an item whose portion equals its reference serving, so
// the nutrients given are the item's final amounts.
func scaledItem(name, unit string, qty float64, codes map[int]float64) scaling.ScaledFoodItem {
	return scaling.Build(name, scaling.ReferenceServing{
		Quantity:           qty,
		Unit:               unit,
		Kind:               units.ClassifyOrDefault(unit),
		NutrientCodeValues: codes,
	}, scaling.UserRequest{Quantity: qty, Unit: unit})
}

func entry(date string, groups ...model.FoodGroup) model.FoodEntry {
	return model.FoodEntry{Date: date, MealType: "lunch", Groups: groups}
}

func group(name string, items ...scaling.ScaledFoodItem) model.FoodGroup {
	g := model.FoodGroup{Name: name}
	for _, it := range items {
		g.Items = append(g.Items, model.FoodItem{ScaledFoodItem: it})
	}
	return g
}
