package scaling_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

func coffeeServing() scaling.ReferenceServing {
	return scaling.ReferenceServing{
		Quantity: 1,
		Unit:     "cup (8 fl oz)",
		Kind:     units.KindVolume,
		NutrientCodeValues: map[int]float64{
			nutrient.CodeProtein:  8,
			nutrient.CodeCalories: 100,
			301:                   250,
		},
	}
}

func TestBuildEndToEnd(t *testing.T) {
	t.Parallel()
	item := scaling.Build("Milk", coffeeServing(), scaling.UserRequest{Quantity: 16, Unit: "fl oz"})
	if !item.Resolved() {
		t.Fatalf("expected resolved item")
	}
	if item.Quantity() != 16 || item.Unit() != "fl oz" {
		t.Fatalf("expected user portion 16 fl oz, got %.2f %s", item.Quantity(), item.Unit())
	}
	if item.Servings() != 2 {
		t.Fatalf("expected 2 servings, got %.2f", item.Servings())
	}
	if item.Amount(nutrient.Protein) != 16 || item.Amount(nutrient.Calories) != 200 {
		t.Fatalf("unexpected scaled macros: %+v", item.Facts())
	}
	if item.Amount(nutrient.Calcium) != 500 {
		t.Fatalf("expected calcium scaled to 500, got %.1f", item.Amount(nutrient.Calcium))
	}
	if item.Kind() != units.KindVolume {
		t.Fatalf("expected volume kind, got %s", item.Kind())
	}
}

func TestBuildOzReportsFluidOunces(t *testing.T) {
	t.Parallel()
	item := scaling.Build("Coffee", coffeeServing(), scaling.UserRequest{Quantity: 16, Unit: "oz"})
	if item.Unit() != "fl oz" || item.Amount(nutrient.Protein) != 16 {
		t.Fatalf("unexpected item: %+v", item.Record())
	}
}

func TestBuildWithoutKindMatchesVolumeServing(t *testing.T) {
	t.Parallel()
	serving := coffeeServing()
	serving.Kind = ""
	item := scaling.Build("Coffee", serving, scaling.UserRequest{Quantity: 16, Unit: "oz"})
	if item.Kind() != units.KindVolume || item.Unit() != "fl oz" {
		t.Fatalf("expected classified volume serving, got %s %s", item.Kind(), item.Unit())
	}
	if item.Servings() != 2 || item.Amount(nutrient.Protein) != 16 {
		t.Fatalf("expected 2 servings and 16 g protein, got %.4f %.4f", item.Servings(), item.Amount(nutrient.Protein))
	}
}

func TestBuildUnresolvedKeepsReferenceValues(t *testing.T) {
	t.Parallel()
	serving := scaling.ReferenceServing{
		Quantity:           1,
		Unit:               "scoop",
		Kind:               units.KindCount,
		NutrientCodeValues: map[int]float64{nutrient.CodeProtein: 24},
	}
	item := scaling.Build("Whey", serving, scaling.UserRequest{Quantity: 3, Unit: "banana"})
	if item.Resolved() {
		t.Fatalf("expected unresolved item")
	}
	if item.Quantity() != 1 || item.Unit() != scaling.UnresolvedUnit || item.Servings() != 1 {
		t.Fatalf("expected one reference serving, got %+v", item.Record())
	}
	if item.Amount(nutrient.Protein) != 24 {
		t.Fatalf("expected reference protein 24, got %.1f", item.Amount(nutrient.Protein))
	}
}

func TestScaleExpressesReferenceUnit(t *testing.T) {
	t.Parallel()
	raw := scaling.NewRawFoodItem("Rice", scaling.ReferenceServing{
		Quantity:           100,
		Unit:               "g",
		Kind:               units.KindWeight,
		NutrientCodeValues: map[int]float64{nutrient.CodeCarbohydrates: 28},
	}, scaling.UserRequest{})
	scaled := scaling.Scale(raw, 1.5)
	if scaled.Quantity() != 150 || scaled.Unit() != "g" {
		t.Fatalf("expected 150 g, got %.1f %s", scaled.Quantity(), scaled.Unit())
	}
	if math.Abs(scaled.Amount(nutrient.Carbohydrates)-42) > 1e-9 {
		t.Fatalf("expected 42 g carbs, got %.3f", scaled.Amount(nutrient.Carbohydrates))
	}
	if raw.Facts().Carbohydrates != 28 {
		t.Fatalf("scaling must not modify the raw item")
	}
}

func TestScaledItemFactsAreCopies(t *testing.T) {
	t.Parallel()
	item := scaling.Build("Milk", coffeeServing(), scaling.UserRequest{Quantity: 8, Unit: "fl oz"})
	facts := item.Facts()
	facts.Micros[nutrient.Calcium] = 0
	if item.Amount(nutrient.Calcium) != 250 {
		t.Fatalf("expected item to be unaffected by edits to returned facts")
	}
}

func TestScaledItemJSONRoundTripKeepsValues(t *testing.T) {
	t.Parallel()
	item := scaling.Build("Milk", coffeeServing(), scaling.UserRequest{Quantity: 16, Unit: "fl oz", Brand: "Farm"})
	b, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal item: %v", err)
	}
	var restored scaling.ScaledFoodItem
	if err := json.Unmarshal(b, &restored); err != nil {
		t.Fatalf("unmarshal item: %v", err)
	}
	if restored.Amount(nutrient.Protein) != 16 || restored.Brand() != "Farm" || restored.Servings() != 2 {
		t.Fatalf("unexpected restored item: %+v", restored.Record())
	}
}
