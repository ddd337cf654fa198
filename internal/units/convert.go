package units

import (
	"regexp"
	"strconv"
	"strings"
)

// Grams per unit.
var weightTable = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"kg": 1000,
	"oz": 28.3495,
	"lb": 453.592,
}

// Millilitres per unit, read as grams for water-density liquids.
var volumeTable = map[string]float64{
	"ml":    1,
	"l":     1000,
	"fl oz": 29.5735,
	"tsp":   4.92892,
	"tbsp":  14.7868,
	"cup":   236.588,
}

var unitAliases = map[string]string{
	"milligram":    "mg",
	"milligrams":   "mg",
	"gram":         "g",
	"grams":        "g",
	"gr":           "g",
	"kilogram":     "kg",
	"kilograms":    "kg",
	"ounce":        "oz",
	"ounces":       "oz",
	"pound":        "lb",
	"pounds":       "lb",
	"lbs":          "lb",
	"milliliter":   "ml",
	"milliliters":  "ml",
	"millilitre":   "ml",
	"millilitres":  "ml",
	"liter":        "l",
	"liters":       "l",
	"litre":        "l",
	"litres":       "l",
	"floz":         "fl oz",
	"fl. oz":       "fl oz",
	"fluid ounce":  "fl oz",
	"fluid ounces": "fl oz",
	"fl-oz":        "fl oz",
	"teaspoon":     "tsp",
	"teaspoons":    "tsp",
	"tablespoon":   "tbsp",
	"tablespoons":  "tbsp",
	"cups":         "cup",
	"c":            "cup",
	"tbsps":        "tbsp",
	"tsps":         "tsp",
	"kgs":          "kg",
	"mls":          "ml",
	"fluid oz":     "fl oz",
	"fl ounce":     "fl oz",
	"fl ounces":    "fl oz",
	"oz.":          "oz",
	"lb.":          "lb",
	"tbsp.":        "tbsp",
	"tsp.":         "tsp",
}

// CanonicalUnit returns the conversion-table key for unit, or the normalized
// text unchanged when it is not a convertible unit.
func CanonicalUnit(unit string) string {
	norm := strings.Join(strings.Fields(NormalizeUnit(unit)), " ")
	if alias, ok := unitAliases[norm]; ok {
		return alias
	}
	return norm
}

// ToGrams converts quantity of unit to grams. Volume units are treated as
// gram-equivalents at water density. The bool is false for units found in
// neither table.
func ToGrams(quantity float64, unit string) (float64, bool) {
	key := CanonicalUnit(unit)
	if perUnit, ok := weightTable[key]; ok {
		return quantity * perUnit, true
	}
	if perUnit, ok := volumeTable[key]; ok {
		return quantity * perUnit, true
	}
	return 0, false
}

// Parenthetical is the "(N unit)" hint embedded in a serving description.
type Parenthetical struct {
	Amount float64
	Unit   string
}

var parentheticalAmountPattern = regexp.MustCompile(`^\s*(\d+\s*/\s*\d+|\d*\.?\d+)\s*(.*?)\s*$`)

// ParseParenthetical extracts the amount and unit between the first "(" and
// its matching ")". "cup (8 fl oz)" yields {8, "fl oz"}.
func ParseParenthetical(servingUnit string) (Parenthetical, bool) {
	inner, ok := parentheticalContent(servingUnit)
	if !ok {
		return Parenthetical{}, false
	}
	m := parentheticalAmountPattern.FindStringSubmatch(inner)
	if m == nil || strings.TrimSpace(m[2]) == "" {
		return Parenthetical{}, false
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return Parenthetical{}, false
	}
	return Parenthetical{Amount: amount, Unit: strings.ToLower(m[2])}, true
}

// ParseParentheticalMass converts the parenthetical hint of a serving
// description to grams: "slice (28 g)" yields 28.
func ParseParentheticalMass(servingUnit string) (float64, bool) {
	p, ok := ParseParenthetical(servingUnit)
	if !ok {
		return 0, false
	}
	return ToGrams(p.Amount, p.Unit)
}

// UnitsMatch reports whether a and b name the same unit once any
// parenthetical suffix is stripped.
func UnitsMatch(a, b string) bool {
	return NormalizeUnit(a) == NormalizeUnit(b)
}

func parentheticalContent(s string) (string, bool) {
	start := strings.Index(s, "(")
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start+1 : i], true
			}
		}
	}
	return "", false
}

func parseAmount(raw string) (float64, bool) {
	raw = strings.ReplaceAll(raw, " ", "")
	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
