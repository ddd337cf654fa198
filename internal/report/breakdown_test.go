package report_test

import (
	"testing"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/report"
	"github.com/saadjs/servings-cli/internal/scaling"
)

func TestNutrientBreakdownsCompleteAndSorted(t *testing.T) {
	t.Parallel()
	items := []scaling.ScaledFoodItem{
		scaledItem("Chicken", "g", 150, map[int]float64{nutrient.CodeProtein: 45, 303: 1.5}),
		scaledItem("Orange", "medium", 1, map[int]float64{nutrient.CodeProtein: 1.2, 401: 70}),
		scaledItem("Spinach", "cup", 1, map[int]float64{nutrient.CodeProtein: 0.9, 303: 2.7, 401: 8.4}),
	}
	breakdowns := report.NutrientBreakdowns(items)
	if len(breakdowns) != 3 {
		t.Fatalf("expected 3 breakdowns, got %d: %+v", len(breakdowns), breakdowns)
	}
	want := []nutrient.ID{nutrient.VitaminC, nutrient.Protein, nutrient.Iron}
	for i, id := range want {
		if breakdowns[i].Nutrient != id {
			t.Fatalf("breakdown %d: expected %s, got %s", i, id.Name(), breakdowns[i].Nutrient.Name())
		}
	}
	for _, b := range breakdowns {
		for i := 1; i < len(b.Foods); i++ {
			if b.Foods[i-1].Amount < b.Foods[i].Amount {
				t.Fatalf("%s contributions not sorted descending: %+v", b.Nutrient.Name(), b.Foods)
			}
		}
	}
	protein := breakdowns[1]
	if protein.Unit != "g" || len(protein.Foods) != 3 || protein.Foods[0].Name != "Chicken" {
		t.Fatalf("unexpected protein breakdown: %+v", protein)
	}
	if protein.Foods[0].DisplayUnit != "g" || protein.Foods[0].DisplayQuantity != 150 {
		t.Fatalf("expected display quantity 150 g, got %+v", protein.Foods[0])
	}
	iron := breakdowns[2]
	if iron.Unit != "mg" || iron.TotalAmount != 4.2 {
		t.Fatalf("unexpected iron breakdown: %+v", iron)
	}
}

func TestNutrientBreakdownsSkipZeroAndEmpty(t *testing.T) {
	t.Parallel()
	items := []scaling.ScaledFoodItem{
		scaledItem("Water", "cup", 1, map[int]float64{nutrient.CodeProtein: 0}),
	}
	if got := report.NutrientBreakdowns(items); len(got) != 0 {
		t.Fatalf("expected no breakdowns, got %+v", got)
	}
	if got := report.NutrientBreakdowns(nil); len(got) != 0 {
		t.Fatalf("expected no breakdowns for no items, got %+v", got)
	}
}

func TestNutrientBreakdownUnits(t *testing.T) {
	t.Parallel()
	items := []scaling.ScaledFoodItem{
		scaledItem("Multivitamin", "tablet", 1, map[int]float64{
			307: 10, 306: 20, 301: 30, 303: 4, 309: 5, 601: 6, 318: 500, 324: 400, 323: 15, 291: 1, 269: 2, 606: 3,
		}),
	}
	want := map[nutrient.ID]string{
		nutrient.Sodium:       "mg",
		nutrient.Potassium:    "mg",
		nutrient.Calcium:      "mg",
		nutrient.Iron:         "mg",
		nutrient.Zinc:         "mg",
		nutrient.Cholesterol:  "mg",
		nutrient.VitaminA:     "IU",
		nutrient.VitaminD:     "IU",
		nutrient.VitaminE:     "mg",
		nutrient.Fiber:        "g",
		nutrient.Sugar:        "g",
		nutrient.SaturatedFat: "g",
	}
	got := map[nutrient.ID]string{}
	for _, b := range report.NutrientBreakdowns(items) {
		got[b.Nutrient] = b.Unit
	}
	for id, unit := range want {
		if got[id] != unit {
			t.Fatalf("%s: expected unit %q, got %q", id.Name(), unit, got[id])
		}
	}
}

func TestNutrientBreakdownEmptyUnitDisplaysServing(t *testing.T) {
	t.Parallel()
	restored := scaling.Restore(scaling.Record{
		Name:     "Mystery bar",
		Quantity: 1,
		Servings: 1,
		Resolved: true,
		Facts:    nutrient.Facts{Protein: 12},
	})
	b := report.NutrientBreakdowns([]scaling.ScaledFoodItem{restored})
	if len(b) != 1 || b[0].Foods[0].DisplayUnit != "serving" {
		t.Fatalf("expected serving display unit, got %+v", b)
	}
}

func TestFoodBreakdownsGroupByNameUsingFirstUnit(t *testing.T) {
	t.Parallel()
	items := []scaling.ScaledFoodItem{
		scaledItem("Banana", "medium", 1, map[int]float64{nutrient.CodeCalories: 105, nutrient.CodeCarbohydrates: 27, 306: 422}),
		scaledItem("Oats", "cup", 0.5, map[int]float64{nutrient.CodeCalories: 150}),
		scaledItem("Banana", "large", 1, map[int]float64{nutrient.CodeCalories: 121, nutrient.CodeCarbohydrates: 31, 306: 487}),
	}
	foods := report.FoodBreakdowns(items)
	if len(foods) != 2 {
		t.Fatalf("expected 2 food breakdowns, got %d", len(foods))
	}
	banana := foods[0]
	if banana.Name != "Banana" || banana.Unit != "medium" || banana.TotalAmount != 2 {
		t.Fatalf("unexpected banana breakdown: %+v", banana)
	}
	if banana.Nutrients[0].Name != "Potassium" || banana.Nutrients[0].Amount != 909 || banana.Nutrients[0].Unit != "mg" {
		t.Fatalf("expected potassium first, got %+v", banana.Nutrients[0])
	}
	if banana.Nutrients[1].Name != "Calories" || banana.Nutrients[1].Amount != 226 || banana.Nutrients[1].Unit != "kcal" {
		t.Fatalf("expected calories second, got %+v", banana.Nutrients[1])
	}
	if foods[1].Name != "Oats" || foods[1].TotalAmount != 0.5 || foods[1].Unit != "cup" {
		t.Fatalf("unexpected oats breakdown: %+v", foods[1])
	}
}
