package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyUnit is returned by Classify for blank unit text.
var ErrEmptyUnit = errors.New("unit is required")

// ClassificationError reports unit text that matches none of the known unit sets.
type ClassificationError struct {
	Unit string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("unrecognized unit %q", e.Unit)
}

type kindTerms struct {
	kind  Kind
	terms []string
}

// Checked in this order; the order breaks ties between equally long matches.
var classificationSets = []kindTerms{
	{
		kind: KindWeight,
		terms: []string{
			"g", "gram", "grams", "oz", "ounce", "ounces", "mg", "lb", "lbs", "pound", "pounds",
			"kilogram", "kilograms", "kg",
		},
	},
	{
		kind: KindVolume,
		terms: []string{
			"ml", "milliliter", "milliliters", "millilitre", "millilitres", "l", "liter", "liters", "litre", "litres",
			"cup", "cups", "tbsp", "tablespoon", "tablespoons", "tsp", "teaspoon", "teaspoons",
			"fl oz", "floz", "fluid ounce", "fluid ounces",
		},
	},
	{
		kind: KindCount,
		terms: []string{
			"slice", "slices", "piece", "pieces", "medium", "large", "small", "serving", "servings",
			"item", "items", "unit", "units", "each",
		},
	},
}

// Classify maps free-text unit to Weight, Volume or Count. Any parenthetical
// suffix is ignored ("cup (8 fl oz)" classifies as "cup"). An exact match wins;
// otherwise the longest known term contained in the text decides, so "large"
// is Count rather than "g" and "100g" is Weight.
func Classify(unit string) (Kind, error) {
	norm := NormalizeUnit(unit)
	if norm == "" {
		return "", ErrEmptyUnit
	}
	for _, set := range classificationSets {
		for _, term := range set.terms {
			if norm == term {
				return set.kind, nil
			}
		}
	}

	text := matchText(norm)
	best := ""
	var bestKind Kind
	for _, set := range classificationSets {
		for _, term := range set.terms {
			if len(term) > len(best) && strings.Contains(text, term) {
				best = term
				bestKind = set.kind
			}
		}
	}
	if best == "" {
		return "", &ClassificationError{Unit: unit}
	}
	return bestKind, nil
}

// ClassifyOrDefault never fails: unclassifiable unit text is treated as Count.
func ClassifyOrDefault(unit string) Kind {
	kind, err := Classify(unit)
	if err != nil {
		return KindCount
	}
	return kind
}

// NormalizeUnit strips a parenthetical suffix, lower-cases and trims.
func NormalizeUnit(unit string) string {
	if i := strings.Index(unit, "("); i >= 0 {
		unit = unit[:i]
	}
	return strings.ToLower(strings.TrimSpace(unit))
}

// matchText drops periods and collapses whitespace: "fl.  oz" reads as "fl oz".
func matchText(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ".", " ")), " ")
}
