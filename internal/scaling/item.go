package scaling

import (
	"encoding/json"
	"fmt"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/units"
)

// RawFoodItem carries reference-serving nutrients that have not been scaled.
// It can only be built from a reference serving and only becomes reportable
// through Scale.
type RawFoodItem struct {
	name     string
	brand    string
	quantity float64
	unit     string
	kind     units.Kind
	facts    nutrient.Facts
	unknown  []int
}

// NewRawFoodItem maps the serving's nutrient codes onto named nutrients.
func NewRawFoodItem(name string, serving ReferenceServing, req UserRequest) RawFoodItem {
	facts, unknown := nutrient.FactsFromCodes(serving.NutrientCodeValues)
	return RawFoodItem{
		name:     name,
		brand:    req.Brand,
		quantity: serving.Quantity,
		unit:     serving.Unit,
		kind:     serving.UnitKind(),
		facts:    facts,
		unknown:  unknown,
	}
}

func (r RawFoodItem) Name() string                { return r.name }
func (r RawFoodItem) Quantity() float64           { return r.quantity }
func (r RawFoodItem) Unit() string                { return r.unit }
func (r RawFoodItem) Facts() nutrient.Facts       { return r.facts.Clone() }
func (r RawFoodItem) UnknownNutrientCodes() []int { return append([]int(nil), r.unknown...) }

// ScaledFoodItem is a food item whose nutrients are final for its quantity
// and unit. Nothing downstream multiplies them again.
type ScaledFoodItem struct {
	name     string
	brand    string
	quantity float64
	unit     string
	kind     units.Kind
	servings float64
	resolved bool
	facts    nutrient.Facts
}

func (s ScaledFoodItem) Name() string      { return s.name }
func (s ScaledFoodItem) Brand() string     { return s.brand }
func (s ScaledFoodItem) Quantity() float64 { return s.quantity }
func (s ScaledFoodItem) Unit() string      { return s.unit }
func (s ScaledFoodItem) Kind() units.Kind  { return s.kind }

// Servings is the number of reference servings the item represents.
func (s ScaledFoodItem) Servings() float64 { return s.servings }

// Resolved is false when no scaling factor could be found and the item
// carries one reference serving's nutrients.
func (s ScaledFoodItem) Resolved() bool { return s.resolved }

// Facts returns a copy of the item's nutrients.
func (s ScaledFoodItem) Facts() nutrient.Facts { return s.facts.Clone() }

// Amount returns the item's amount of one nutrient.
func (s ScaledFoodItem) Amount(id nutrient.ID) float64 { return s.facts.Get(id) }

// MicroKeys lists the micronutrients present on the item.
func (s ScaledFoodItem) MicroKeys() []nutrient.ID { return s.facts.Micros.Keys() }

// Record is the persisted form of a ScaledFoodItem.
type Record struct {
	Name     string         `json:"name"`
	Brand    string         `json:"brand,omitempty"`
	Quantity float64        `json:"quantity"`
	Unit     string         `json:"unit"`
	Kind     units.Kind     `json:"unit_kind"`
	Servings float64        `json:"servings"`
	Resolved bool           `json:"resolved"`
	Facts    nutrient.Facts `json:"nutrients"`
}

func (s ScaledFoodItem) Record() Record {
	return Record{
		Name:     s.name,
		Brand:    s.brand,
		Quantity: s.quantity,
		Unit:     s.unit,
		Kind:     s.kind,
		Servings: s.servings,
		Resolved: s.resolved,
		Facts:    s.facts.Clone(),
	}
}

// Restore rehydrates an item that Scale or Build produced and that was
// persisted as a Record. It performs no scaling.
func Restore(rec Record) ScaledFoodItem {
	return ScaledFoodItem{
		name:     rec.Name,
		brand:    rec.Brand,
		quantity: rec.Quantity,
		unit:     rec.Unit,
		kind:     rec.Kind,
		servings: rec.Servings,
		resolved: rec.Resolved,
		facts:    rec.Facts.Clone(),
	}
}

func (s ScaledFoodItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

func (s *ScaledFoodItem) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode scaled food item: %w", err)
	}
	*s = Restore(rec)
	return nil
}
