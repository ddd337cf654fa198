package scaling

import (
	"log/slog"

	"github.com/saadjs/servings-cli/internal/units"
)

// UnresolvedUnit labels items whose factor could not be resolved: the item
// holds exactly one reference serving.
const UnresolvedUnit = "serving"

// Scale multiplies every nutrient of raw by factor. The result is expressed
// in the reference serving's unit.
func Scale(raw RawFoodItem, factor float64) ScaledFoodItem {
	return ScaledFoodItem{
		name:     raw.name,
		brand:    raw.brand,
		quantity: raw.quantity * factor,
		unit:     raw.unit,
		kind:     raw.kind,
		servings: factor,
		resolved: true,
		facts:    raw.facts.Scale(factor),
	}
}

// Build creates the item for a user's portion of a reference serving. When a
// factor resolves, quantity and unit hold what the user reported. Otherwise
// the nutrients stay at one reference serving and the quantity is 1.
func Build(name string, serving ReferenceServing, req UserRequest) ScaledFoodItem {
	raw := NewRawFoodItem(name, serving, req)
	if len(raw.unknown) > 0 {
		slog.Debug("ignored unknown nutrient codes", "food", name, "codes", raw.unknown)
	}

	res, ok := Resolve(serving, req)
	if !ok {
		slog.Warn("no scaling factor for portion; keeping reference serving values",
			"food", name,
			"quantity", req.Quantity,
			"unit", req.Unit,
			"serving_quantity", serving.Quantity,
			"serving_unit", serving.Unit,
		)
		return unresolved(raw)
	}

	item := Scale(raw, res.Factor)
	item.quantity = req.Quantity
	item.unit = res.EffectiveUnit
	if kind, err := units.Classify(res.EffectiveUnit); err == nil {
		item.kind = kind
	}
	slog.Debug("scaled food item",
		"food", name,
		"factor", res.Factor,
		"strategy", res.Strategy.String(),
	)
	return item
}

func unresolved(raw RawFoodItem) ScaledFoodItem {
	return ScaledFoodItem{
		name:     raw.name,
		brand:    raw.brand,
		quantity: 1,
		unit:     UnresolvedUnit,
		kind:     units.KindCount,
		servings: 1,
		resolved: false,
		facts:    raw.facts.Clone(),
	}
}
