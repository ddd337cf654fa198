package scaling

import (
	"math"
	"strings"

	"github.com/saadjs/servings-cli/internal/units"
)

// Strategy records which rule produced a scaling factor.
type Strategy int

const (
	StrategyDirectMatch Strategy = iota + 1
	StrategyParenthetical
	StrategyGrams
)

func (s Strategy) String() string {
	switch s {
	case StrategyDirectMatch:
		return "direct"
	case StrategyParenthetical:
		return "parenthetical"
	case StrategyGrams:
		return "grams"
	default:
		return "unresolved"
	}
}

// Resolution is a resolved scaling factor: how many reference servings the
// user's request represents.
type Resolution struct {
	Factor   float64
	Strategy Strategy
	// EffectiveUnit is the user's unit after "oz" was reinterpreted as "fl oz"
	// for volume servings.
	EffectiveUnit string
}

// Resolve computes the multiplier that converts serving nutrients into the
// user's portion. Rules are tried in order: matching units, the serving's
// parenthetical inner unit, then a comparison in grams. The bool is false
// when no rule applies; callers choose the fallback.
func Resolve(serving ReferenceServing, req UserRequest) (Resolution, bool) {
	if !finite(serving.Quantity) || serving.Quantity <= 0 || !finite(req.Quantity) || req.Quantity < 0 {
		return Resolution{}, false
	}

	userUnit := strings.TrimSpace(req.Unit)
	if units.CanonicalUnit(userUnit) == "oz" && serving.UnitKind() == units.KindVolume {
		userUnit = "fl oz"
	}

	if units.UnitsMatch(userUnit, serving.Unit) {
		return Resolution{
			Factor:        req.Quantity / serving.Quantity,
			Strategy:      StrategyDirectMatch,
			EffectiveUnit: userUnit,
		}, true
	}

	if p, ok := units.ParseParenthetical(serving.Unit); ok && p.Amount > 0 && innerUnitMatches(p.Unit, userUnit) {
		total := serving.Quantity * p.Amount
		return Resolution{
			Factor:        req.Quantity / total,
			Strategy:      StrategyParenthetical,
			EffectiveUnit: userUnit,
		}, true
	}

	userGrams, ok := units.ToGrams(req.Quantity, userUnit)
	if !ok {
		return Resolution{}, false
	}
	servingGrams, ok := servingMass(serving)
	if !ok || servingGrams <= 0 {
		return Resolution{}, false
	}
	return Resolution{
		Factor:        userGrams / servingGrams,
		Strategy:      StrategyGrams,
		EffectiveUnit: userUnit,
	}, true
}

func servingMass(serving ReferenceServing) (float64, bool) {
	if serving.WeightGrams != nil && *serving.WeightGrams > 0 {
		return *serving.WeightGrams, true
	}
	if g, ok := units.ToGrams(serving.Quantity, serving.Unit); ok {
		return g, true
	}
	// parenthetical mass describes one serving unit
	if g, ok := units.ParseParentheticalMass(serving.Unit); ok {
		return serving.Quantity * g, true
	}
	return 0, false
}

func innerUnitMatches(inner, userUnit string) bool {
	inner = strings.ToLower(strings.TrimSpace(inner))
	user := strings.ToLower(strings.TrimSpace(userUnit))
	if inner == "" || user == "" {
		return false
	}
	return inner == user || units.CanonicalUnit(inner) == units.CanonicalUnit(user)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
