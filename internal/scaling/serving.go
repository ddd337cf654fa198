// Package scaling turns a reference serving and a user-reported portion into
// a food item whose nutrients describe the user's actual intake.
package scaling

import (
	"github.com/saadjs/servings-cli/internal/units"
)

// ReferenceServing is the serving a nutrition-data source reports nutrients
// against, e.g. 1 "cup (8 fl oz)" or 100 "g".
type ReferenceServing struct {
	Quantity float64 `json:"serving_quantity"`
	Unit     string  `json:"serving_unit"`
	// WeightGrams is the mass of the whole serving when the source knows it.
	WeightGrams *float64 `json:"serving_weight_g,omitempty"`
	// Kind says how to read ambiguous units such as "oz".
	Kind               units.Kind      `json:"unit_kind"`
	NutrientCodeValues map[int]float64 `json:"nutrients"`
}

// UnitKind returns Kind, classifying the unit when Kind is unset.
func (s ReferenceServing) UnitKind() units.Kind {
	if s.Kind != "" {
		return s.Kind
	}
	return units.ClassifyOrDefault(s.Unit)
}

// UserRequest is the portion a user reported for one food.
type UserRequest struct {
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Brand     string  `json:"brand,omitempty"`
	IsBranded bool    `json:"is_branded,omitempty"`
}

// Grams returns a pointer suitable for ReferenceServing.WeightGrams.
func Grams(v float64) *float64 {
	return &v
}
