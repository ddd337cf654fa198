package nutrient

import "slices"

// Nutrient numbers used by the external nutrition-data source for the macros.
const (
	CodeProtein       = 203
	CodeFat           = 204
	CodeCarbohydrates = 205
	CodeCalories      = 208
)

// codeTable maps external nutrient numbers to nutrients. Several numbers may
// fold into one nutrient; their values are summed.
var codeTable = map[int]ID{
	CodeProtein:       Protein,
	CodeFat:           Fat,
	CodeCarbohydrates: Carbohydrates,
	CodeCalories:      Calories,
	291:               Fiber,
	269:               Sugar,
	606:               SaturatedFat,
	605:               TransFat,
	645:               UnsaturatedFat,
	646:               UnsaturatedFat,

	255: Water,
	207: Ash,
	268: EnergyKJ,
	209: Starch,
	210: Sucrose,
	211: Glucose,
	212: Fructose,
	213: Lactose,
	214: Maltose,
	287: Galactose,
	539: AddedSugars,
	221: Alcohol,
	262: Caffeine,
	263: Theobromine,

	301: Calcium,
	303: Iron,
	304: Magnesium,
	305: Phosphorus,
	306: Potassium,
	307: Sodium,
	309: Zinc,
	312: Copper,
	313: Fluoride,
	315: Manganese,
	317: Selenium,

	318: VitaminA,
	319: Retinol,
	320: VitaminARAE,
	321: BetaCarotene,
	322: AlphaCarotene,
	323: VitaminE,
	324: VitaminD,
	325: VitaminD2,
	326: VitaminD3,
	328: VitaminDMcg,
	334: BetaCryptoxanthin,
	337: Lycopene,
	338: LuteinZeaxanthin,
	341: BetaTocopherol,
	342: GammaTocopherol,
	343: DeltaTocopherol,
	401: VitaminC,
	404: Thiamin,
	405: Riboflavin,
	406: Niacin,
	410: PantothenicAcid,
	415: VitaminB6,
	417: Folate,
	418: VitaminB12,
	421: Choline,
	430: VitaminK,
	431: FolicAcid,
	432: FoodFolate,
	435: FolateDFE,
	454: Betaine,
	573: AddedVitaminE,
	578: AddedVitaminB12,
	601: Cholesterol,
	636: Phytosterols,
	638: Stigmasterol,
	639: Campesterol,
	641: BetaSitosterol,

	501: Tryptophan,
	502: Threonine,
	503: Isoleucine,
	504: Leucine,
	505: Lysine,
	506: Methionine,
	507: Cystine,
	508: Phenylalanine,
	509: Tyrosine,
	510: Valine,
	511: Arginine,
	512: Histidine,
	513: Alanine,
	514: AsparticAcid,
	515: GlutamicAcid,
	516: Glycine,
	517: Proline,
	518: Serine,
	521: Hydroxyproline,

	607: ButyricAcid,
	608: CaproicAcid,
	609: CaprylicAcid,
	610: CapricAcid,
	611: LauricAcid,
	612: MyristicAcid,
	652: PentadecanoicAcid,
	613: PalmiticAcid,
	653: MargaricAcid,
	614: StearicAcid,
	615: ArachidicAcid,
	624: BehenicAcid,
	654: LignocericAcid,
	626: PalmitoleicAcid,
	617: OleicAcid,
	628: GadoleicAcid,
	630: ErucicAcid,
	671: NervonicAcid,
	618: LinoleicAcid,
	619: AlphaLinolenicAcid,
	627: StearidonicAcid,
	672: EicosadienoicAcid,
	689: EicosatrienoicAcid,
	620: ArachidonicAcid,
	629: EPA,
	631: DPA,
	621: DHA,
	693: TransMonoenoicFat,
	695: TransPolyenoicFat,
}

// FromCode maps an external nutrient number to a nutrient.
func FromCode(code int) (ID, bool) {
	id, ok := codeTable[code]
	return id, ok
}

// FactsFromCodes builds Facts from values keyed by external nutrient number.
// Unknown numbers are returned in ascending order so callers can report them.
func FactsFromCodes(values map[int]float64) (Facts, []int) {
	facts := Facts{Micros: Amounts{}}
	var unknown []int
	for code, v := range values {
		id, ok := FromCode(code)
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		facts.AddAmount(id, v)
	}
	slices.Sort(unknown)
	return facts, unknown
}
