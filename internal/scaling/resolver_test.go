package scaling_test

import (
	"math"
	"testing"

	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

func TestResolveDirectMatch(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "cup", Kind: units.KindVolume},
		scaling.UserRequest{Quantity: 2, Unit: "cup"},
	)
	if !ok {
		t.Fatalf("expected direct match to resolve")
	}
	if res.Factor != 2 || res.Strategy != scaling.StrategyDirectMatch {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveParentheticalInnerUnit(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "cup (8 fl oz)", Kind: units.KindVolume},
		scaling.UserRequest{Quantity: 16, Unit: "fl oz"},
	)
	if !ok || res.Factor != 2 || res.Strategy != scaling.StrategyParenthetical {
		t.Fatalf("unexpected resolution: %+v ok=%v", res, ok)
	}
}

func TestResolveOzAmbiguityForVolumeServing(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "cup (8 fl oz)", Kind: units.KindVolume},
		scaling.UserRequest{Quantity: 16, Unit: "oz"},
	)
	if !ok || res.Factor != 2 {
		t.Fatalf("expected oz to be read as fl oz, got %+v ok=%v", res, ok)
	}
	if res.EffectiveUnit != "fl oz" {
		t.Fatalf("expected effective unit fl oz, got %q", res.EffectiveUnit)
	}
}

func TestResolveOzClassifiesServingWithoutKind(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "cup (8 fl oz)"},
		scaling.UserRequest{Quantity: 16, Unit: "oz"},
	)
	if !ok || res.Factor != 2 || res.EffectiveUnit != "fl oz" {
		t.Fatalf("expected 2 servings of fl oz without an explicit kind, got %+v ok=%v", res, ok)
	}
}

func TestResolveOzStaysWeightForWeightServing(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 100, Unit: "g", Kind: units.KindWeight},
		scaling.UserRequest{Quantity: 1, Unit: "oz"},
	)
	if !ok || res.EffectiveUnit != "oz" {
		t.Fatalf("unexpected resolution: %+v ok=%v", res, ok)
	}
	if math.Abs(res.Factor-0.283495) > 1e-6 {
		t.Fatalf("expected factor 0.283495, got %.6f", res.Factor)
	}
}

func TestResolveGramFallbackWithServingWeight(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "slice", WeightGrams: scaling.Grams(28), Kind: units.KindWeight},
		scaling.UserRequest{Quantity: 3, Unit: "oz"},
	)
	if !ok || res.Strategy != scaling.StrategyGrams {
		t.Fatalf("expected gram fallback, got %+v ok=%v", res, ok)
	}
	if math.Abs(res.Factor-3.0375) > 0.0001 {
		t.Fatalf("expected factor ~3.0375, got %.5f", res.Factor)
	}
}

func TestResolveGramFallbackFromParentheticalMass(t *testing.T) {
	t.Parallel()
	res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 2, Unit: "slices (28 g)", Kind: units.KindCount},
		scaling.UserRequest{Quantity: 28, Unit: "g"},
	)
	if !ok || res.Strategy != scaling.StrategyParenthetical {
		t.Fatalf("expected inner unit match, got %+v ok=%v", res, ok)
	}
	if res.Factor != 0.5 {
		t.Fatalf("expected factor 0.5, got %.3f", res.Factor)
	}

	res, ok = scaling.Resolve(
		scaling.ReferenceServing{Quantity: 2, Unit: "slices (28 g)", Kind: units.KindCount},
		scaling.UserRequest{Quantity: 2, Unit: "oz"},
	)
	if !ok || res.Strategy != scaling.StrategyGrams {
		t.Fatalf("expected gram fallback, got %+v ok=%v", res, ok)
	}
	if math.Abs(res.Factor-(2*28.3495)/56) > 1e-9 {
		t.Fatalf("unexpected factor %.6f", res.Factor)
	}
}

func TestResolveUnresolvable(t *testing.T) {
	t.Parallel()
	if res, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "scoop", Kind: units.KindCount},
		scaling.UserRequest{Quantity: 1, Unit: "banana"},
	); ok {
		t.Fatalf("expected no resolution, got %+v", res)
	}
}

func TestResolveRejectsNonPositiveServing(t *testing.T) {
	t.Parallel()
	if _, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 0, Unit: "cup", Kind: units.KindVolume},
		scaling.UserRequest{Quantity: 1, Unit: "cup"},
	); ok {
		t.Fatalf("expected zero serving quantity to be unresolvable")
	}
	if _, ok := scaling.Resolve(
		scaling.ReferenceServing{Quantity: 1, Unit: "cup", Kind: units.KindVolume},
		scaling.UserRequest{Quantity: -1, Unit: "cup"},
	); ok {
		t.Fatalf("expected negative user quantity to be unresolvable")
	}
}
