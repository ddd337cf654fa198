// Package nutrient defines the closed set of tracked nutrients, their display
// units, and the Facts value that carries one food's nutrient amounts.
package nutrient

import (
	"fmt"
	"strings"
)

// ID identifies one tracked nutrient.
type ID int

// Class groups nutrients for reporting.
type Class int

const (
	ClassEnergy Class = iota + 1
	ClassMacro
	ClassSemiMacro
	ClassMicro
)

const (
	Unknown ID = iota

	// named fields of Facts
	Calories
	Protein
	Carbohydrates
	Fat
	Fiber
	Sugar
	SaturatedFat
	UnsaturatedFat
	TransFat

	// proximates and sugars
	Water
	Ash
	EnergyKJ
	Starch
	Sucrose
	Glucose
	Fructose
	Lactose
	Maltose
	Galactose
	AddedSugars
	Alcohol
	Caffeine
	Theobromine

	// minerals
	Calcium
	Iron
	Magnesium
	Phosphorus
	Potassium
	Sodium
	Zinc
	Copper
	Fluoride
	Manganese
	Selenium

	// vitamins and related
	VitaminA
	Retinol
	VitaminARAE
	BetaCarotene
	AlphaCarotene
	VitaminE
	VitaminD
	VitaminD2
	VitaminD3
	VitaminDMcg
	BetaCryptoxanthin
	Lycopene
	LuteinZeaxanthin
	BetaTocopherol
	GammaTocopherol
	DeltaTocopherol
	VitaminC
	Thiamin
	Riboflavin
	Niacin
	PantothenicAcid
	VitaminB6
	Folate
	VitaminB12
	Choline
	VitaminK
	FolicAcid
	FoodFolate
	FolateDFE
	Betaine
	AddedVitaminE
	AddedVitaminB12
	Cholesterol
	Phytosterols
	Stigmasterol
	Campesterol
	BetaSitosterol

	// amino acids
	Tryptophan
	Threonine
	Isoleucine
	Leucine
	Lysine
	Methionine
	Cystine
	Phenylalanine
	Tyrosine
	Valine
	Arginine
	Histidine
	Alanine
	AsparticAcid
	GlutamicAcid
	Glycine
	Proline
	Serine
	Hydroxyproline

	// individual fatty acids
	ButyricAcid
	CaproicAcid
	CaprylicAcid
	CapricAcid
	LauricAcid
	MyristicAcid
	PentadecanoicAcid
	PalmiticAcid
	MargaricAcid
	StearicAcid
	ArachidicAcid
	BehenicAcid
	LignocericAcid
	PalmitoleicAcid
	OleicAcid
	GadoleicAcid
	ErucicAcid
	NervonicAcid
	LinoleicAcid
	AlphaLinolenicAcid
	StearidonicAcid
	EicosadienoicAcid
	EicosatrienoicAcid
	ArachidonicAcid
	EPA
	DPA
	DHA
	TransMonoenoicFat
	TransPolyenoicFat

	numIDs
)

type info struct {
	name  string
	unit  string
	class Class
}

var infos = [numIDs]info{
	Calories:       {"Calories", "kcal", ClassEnergy},
	Protein:        {"Protein", "g", ClassMacro},
	Carbohydrates:  {"Carbohydrates", "g", ClassMacro},
	Fat:            {"Fat", "g", ClassMacro},
	Fiber:          {"Fiber", "g", ClassSemiMacro},
	Sugar:          {"Sugar", "g", ClassSemiMacro},
	SaturatedFat:   {"Saturated Fat", "g", ClassSemiMacro},
	UnsaturatedFat: {"Unsaturated Fat", "g", ClassSemiMacro},
	TransFat:       {"Trans Fat", "g", ClassSemiMacro},

	Water:       {"Water", "g", ClassMicro},
	Ash:         {"Ash", "g", ClassMicro},
	EnergyKJ:    {"Energy (kJ)", "kJ", ClassMicro},
	Starch:      {"Starch", "g", ClassMicro},
	Sucrose:     {"Sucrose", "g", ClassMicro},
	Glucose:     {"Glucose", "g", ClassMicro},
	Fructose:    {"Fructose", "g", ClassMicro},
	Lactose:     {"Lactose", "g", ClassMicro},
	Maltose:     {"Maltose", "g", ClassMicro},
	Galactose:   {"Galactose", "g", ClassMicro},
	AddedSugars: {"Added Sugars", "g", ClassMicro},
	Alcohol:     {"Alcohol", "g", ClassMicro},
	Caffeine:    {"Caffeine", "mg", ClassMicro},
	Theobromine: {"Theobromine", "mg", ClassMicro},

	Calcium:    {"Calcium", "mg", ClassMicro},
	Iron:       {"Iron", "mg", ClassMicro},
	Magnesium:  {"Magnesium", "mg", ClassMicro},
	Phosphorus: {"Phosphorus", "mg", ClassMicro},
	Potassium:  {"Potassium", "mg", ClassMicro},
	Sodium:     {"Sodium", "mg", ClassMicro},
	Zinc:       {"Zinc", "mg", ClassMicro},
	Copper:     {"Copper", "mg", ClassMicro},
	Fluoride:   {"Fluoride", "mcg", ClassMicro},
	Manganese:  {"Manganese", "mg", ClassMicro},
	Selenium:   {"Selenium", "mcg", ClassMicro},

	VitaminA:          {"Vitamin A", "IU", ClassMicro},
	Retinol:           {"Retinol", "mcg", ClassMicro},
	VitaminARAE:       {"Vitamin A (RAE)", "mcg", ClassMicro},
	BetaCarotene:      {"Beta Carotene", "mcg", ClassMicro},
	AlphaCarotene:     {"Alpha Carotene", "mcg", ClassMicro},
	VitaminE:          {"Vitamin E", "mg", ClassMicro},
	VitaminD:          {"Vitamin D", "IU", ClassMicro},
	VitaminD2:         {"Vitamin D2", "mcg", ClassMicro},
	VitaminD3:         {"Vitamin D3", "mcg", ClassMicro},
	VitaminDMcg:       {"Vitamin D (D2 + D3)", "mcg", ClassMicro},
	BetaCryptoxanthin: {"Beta Cryptoxanthin", "mcg", ClassMicro},
	Lycopene:          {"Lycopene", "mcg", ClassMicro},
	LuteinZeaxanthin:  {"Lutein + Zeaxanthin", "mcg", ClassMicro},
	BetaTocopherol:    {"Beta Tocopherol", "mg", ClassMicro},
	GammaTocopherol:   {"Gamma Tocopherol", "mg", ClassMicro},
	DeltaTocopherol:   {"Delta Tocopherol", "mg", ClassMicro},
	VitaminC:          {"Vitamin C", "mg", ClassMicro},
	Thiamin:           {"Thiamin", "mg", ClassMicro},
	Riboflavin:        {"Riboflavin", "mg", ClassMicro},
	Niacin:            {"Niacin", "mg", ClassMicro},
	PantothenicAcid:   {"Pantothenic Acid", "mg", ClassMicro},
	VitaminB6:         {"Vitamin B6", "mg", ClassMicro},
	Folate:            {"Folate", "mcg", ClassMicro},
	VitaminB12:        {"Vitamin B12", "mcg", ClassMicro},
	Choline:           {"Choline", "mg", ClassMicro},
	VitaminK:          {"Vitamin K", "mcg", ClassMicro},
	FolicAcid:         {"Folic Acid", "mcg", ClassMicro},
	FoodFolate:        {"Food Folate", "mcg", ClassMicro},
	FolateDFE:         {"Folate (DFE)", "mcg", ClassMicro},
	Betaine:           {"Betaine", "mg", ClassMicro},
	AddedVitaminE:     {"Vitamin E (added)", "mg", ClassMicro},
	AddedVitaminB12:   {"Vitamin B12 (added)", "mcg", ClassMicro},
	Cholesterol:       {"Cholesterol", "mg", ClassMicro},
	Phytosterols:      {"Phytosterols", "mg", ClassMicro},
	Stigmasterol:      {"Stigmasterol", "mg", ClassMicro},
	Campesterol:       {"Campesterol", "mg", ClassMicro},
	BetaSitosterol:    {"Beta Sitosterol", "mg", ClassMicro},

	Tryptophan:     {"Tryptophan", "g", ClassMicro},
	Threonine:      {"Threonine", "g", ClassMicro},
	Isoleucine:     {"Isoleucine", "g", ClassMicro},
	Leucine:        {"Leucine", "g", ClassMicro},
	Lysine:         {"Lysine", "g", ClassMicro},
	Methionine:     {"Methionine", "g", ClassMicro},
	Cystine:        {"Cystine", "g", ClassMicro},
	Phenylalanine:  {"Phenylalanine", "g", ClassMicro},
	Tyrosine:       {"Tyrosine", "g", ClassMicro},
	Valine:         {"Valine", "g", ClassMicro},
	Arginine:       {"Arginine", "g", ClassMicro},
	Histidine:      {"Histidine", "g", ClassMicro},
	Alanine:        {"Alanine", "g", ClassMicro},
	AsparticAcid:   {"Aspartic Acid", "g", ClassMicro},
	GlutamicAcid:   {"Glutamic Acid", "g", ClassMicro},
	Glycine:        {"Glycine", "g", ClassMicro},
	Proline:        {"Proline", "g", ClassMicro},
	Serine:         {"Serine", "g", ClassMicro},
	Hydroxyproline: {"Hydroxyproline", "g", ClassMicro},

	ButyricAcid:        {"Butyric Acid", "g", ClassMicro},
	CaproicAcid:        {"Caproic Acid", "g", ClassMicro},
	CaprylicAcid:       {"Caprylic Acid", "g", ClassMicro},
	CapricAcid:         {"Capric Acid", "g", ClassMicro},
	LauricAcid:         {"Lauric Acid", "g", ClassMicro},
	MyristicAcid:       {"Myristic Acid", "g", ClassMicro},
	PentadecanoicAcid:  {"Pentadecanoic Acid", "g", ClassMicro},
	PalmiticAcid:       {"Palmitic Acid", "g", ClassMicro},
	MargaricAcid:       {"Margaric Acid", "g", ClassMicro},
	StearicAcid:        {"Stearic Acid", "g", ClassMicro},
	ArachidicAcid:      {"Arachidic Acid", "g", ClassMicro},
	BehenicAcid:        {"Behenic Acid", "g", ClassMicro},
	LignocericAcid:     {"Lignoceric Acid", "g", ClassMicro},
	PalmitoleicAcid:    {"Palmitoleic Acid", "g", ClassMicro},
	OleicAcid:          {"Oleic Acid", "g", ClassMicro},
	GadoleicAcid:       {"Gadoleic Acid", "g", ClassMicro},
	ErucicAcid:         {"Erucic Acid", "g", ClassMicro},
	NervonicAcid:       {"Nervonic Acid", "g", ClassMicro},
	LinoleicAcid:       {"Linoleic Acid", "g", ClassMicro},
	AlphaLinolenicAcid: {"Alpha Linolenic Acid", "g", ClassMicro},
	StearidonicAcid:    {"Stearidonic Acid", "g", ClassMicro},
	EicosadienoicAcid:  {"Eicosadienoic Acid", "g", ClassMicro},
	EicosatrienoicAcid: {"Eicosatrienoic Acid", "g", ClassMicro},
	ArachidonicAcid:    {"Arachidonic Acid", "g", ClassMicro},
	EPA:                {"EPA", "g", ClassMicro},
	DPA:                {"DPA", "g", ClassMicro},
	DHA:                {"DHA", "g", ClassMicro},
	TransMonoenoicFat:  {"Trans Monoenoic Fat", "g", ClassMicro},
	TransPolyenoicFat:  {"Trans Polyenoic Fat", "g", ClassMicro},
}

var byName = func() map[string]ID {
	out := make(map[string]ID, numIDs)
	for id := Calories; id < numIDs; id++ {
		out[strings.ToLower(infos[id].name)] = id
	}
	return out
}()

// Valid reports whether id is a known nutrient.
func (id ID) Valid() bool {
	return id > Unknown && id < numIDs
}

// Name is the display name, e.g. "Vitamin C".
func (id ID) Name() string {
	if !id.Valid() {
		return fmt.Sprintf("nutrient(%d)", int(id))
	}
	return infos[id].name
}

// Unit is the display unit. Unknown nutrients are reported in grams.
func (id ID) Unit() string {
	if !id.Valid() || infos[id].unit == "" {
		return "g"
	}
	return infos[id].unit
}

func (id ID) Class() Class {
	if !id.Valid() {
		return 0
	}
	return infos[id].class
}

func (id ID) String() string {
	return id.Name()
}

func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("unknown nutrient id %d", int(id))
	}
	return []byte(infos[id].name), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, ok := Lookup(string(text))
	if !ok {
		return fmt.Errorf("unknown nutrient %q", string(text))
	}
	*id = parsed
	return nil
}

// Lookup finds a nutrient by display name, ignoring case.
func Lookup(name string) (ID, bool) {
	id, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// All returns every known nutrient in declaration order.
func All() []ID {
	out := make([]ID, 0, numIDs-1)
	for id := Calories; id < numIDs; id++ {
		out = append(out, id)
	}
	return out
}
