package nutrient

import "sort"

// Amounts maps micronutrients to their amounts.
type Amounts map[ID]float64

// Clone returns a copy that shares no storage with a.
func (a Amounts) Clone() Amounts {
	out := make(Amounts, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Keys returns the keys of a in declaration order.
func (a Amounts) Keys() []ID {
	keys := make([]ID, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Facts is the full nutrient set of one food item.
type Facts struct {
	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbohydrates  float64 `json:"carbohydrates"`
	Fat            float64 `json:"fat"`
	Fiber          float64 `json:"fiber"`
	Sugar          float64 `json:"sugar"`
	SaturatedFat   float64 `json:"saturated_fat"`
	UnsaturatedFat float64 `json:"unsaturated_fat"`
	TransFat       float64 `json:"trans_fat"`
	Micros         Amounts `json:"micronutrients,omitempty"`
}

// Scale returns f with every field and micronutrient multiplied by factor.
func (f Facts) Scale(factor float64) Facts {
	out := Facts{
		Calories:       f.Calories * factor,
		Protein:        f.Protein * factor,
		Carbohydrates:  f.Carbohydrates * factor,
		Fat:            f.Fat * factor,
		Fiber:          f.Fiber * factor,
		Sugar:          f.Sugar * factor,
		SaturatedFat:   f.SaturatedFat * factor,
		UnsaturatedFat: f.UnsaturatedFat * factor,
		TransFat:       f.TransFat * factor,
		Micros:         make(Amounts, len(f.Micros)),
	}
	for k, v := range f.Micros {
		out.Micros[k] = v * factor
	}
	return out
}

// Plus returns the field-wise and key-wise sum of f and o.
func (f Facts) Plus(o Facts) Facts {
	out := Facts{
		Calories:       f.Calories + o.Calories,
		Protein:        f.Protein + o.Protein,
		Carbohydrates:  f.Carbohydrates + o.Carbohydrates,
		Fat:            f.Fat + o.Fat,
		Fiber:          f.Fiber + o.Fiber,
		Sugar:          f.Sugar + o.Sugar,
		SaturatedFat:   f.SaturatedFat + o.SaturatedFat,
		UnsaturatedFat: f.UnsaturatedFat + o.UnsaturatedFat,
		TransFat:       f.TransFat + o.TransFat,
		Micros:         f.Micros.Clone(),
	}
	for k, v := range o.Micros {
		out.Micros[k] += v
	}
	return out
}

// Clone returns a deep copy of f.
func (f Facts) Clone() Facts {
	out := f
	out.Micros = f.Micros.Clone()
	return out
}

// Get returns the amount of id, reading the named field for energy, macros
// and semi-macros and the micronutrient map otherwise.
func (f Facts) Get(id ID) float64 {
	if p := f.field(id); p != nil {
		return *p
	}
	return f.Micros[id]
}

// AddAmount adds value to id in place.
func (f *Facts) AddAmount(id ID, value float64) {
	if !id.Valid() {
		return
	}
	if p := f.field(id); p != nil {
		*p += value
		return
	}
	if f.Micros == nil {
		f.Micros = Amounts{}
	}
	f.Micros[id] += value
}

func (f *Facts) field(id ID) *float64 {
	switch id {
	case Calories:
		return &f.Calories
	case Protein:
		return &f.Protein
	case Carbohydrates:
		return &f.Carbohydrates
	case Fat:
		return &f.Fat
	case Fiber:
		return &f.Fiber
	case Sugar:
		return &f.Sugar
	case SaturatedFat:
		return &f.SaturatedFat
	case UnsaturatedFat:
		return &f.UnsaturatedFat
	case TransFat:
		return &f.TransFat
	default:
		return nil
	}
}
