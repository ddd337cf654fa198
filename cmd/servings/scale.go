package servings

import (
	"fmt"
	"io"
	"strings"

	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
	"github.com/spf13/cobra"
)

// servingFlags describe a reference serving on the command line.
type servingFlags struct {
	qty       float64
	unit      string
	grams     float64
	kind      string
	nutrients []string
}

func (f *servingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.qty, "serving-qty", 1, "Reference serving quantity")
	cmd.Flags().StringVar(&f.unit, "serving-unit", "", "Reference serving unit, e.g. \"cup (8 fl oz)\"")
	cmd.Flags().Float64Var(&f.grams, "serving-grams", 0, "Reference serving weight in grams, if known")
	cmd.Flags().StringVar(&f.kind, "kind", "", "Serving unit kind: weight, volume, or count (default: classify the unit)")
	cmd.Flags().StringArrayVar(&f.nutrients, "nutrient", nil, "Nutrient per serving as CODE=VALUE (USDA nutrient number, repeatable)")
}

func (f *servingFlags) serving() (scaling.ReferenceServing, error) {
	if strings.TrimSpace(f.unit) == "" {
		return scaling.ReferenceServing{}, fmt.Errorf("--serving-unit is required")
	}
	values, err := parseNutrientFlags(f.nutrients)
	if err != nil {
		return scaling.ReferenceServing{}, err
	}
	s := scaling.ReferenceServing{
		Quantity:           f.qty,
		Unit:               f.unit,
		NutrientCodeValues: values,
	}
	if f.grams > 0 {
		s.WeightGrams = scaling.Grams(f.grams)
	}
	if strings.TrimSpace(f.kind) != "" {
		if s.Kind, err = units.ParseKind(f.kind); err != nil {
			return scaling.ReferenceServing{}, err
		}
	}
	return s, nil
}

var (
	scaleServing servingFlags
	scaleName    string
	scaleQty     float64
	scaleUnit    string
	scaleJSON    bool
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Scale a reference serving to a portion without logging it",
	RunE: func(cmd *cobra.Command, args []string) error {
		serving, err := scaleServing.serving()
		if err != nil {
			return err
		}
		req := scaling.UserRequest{Quantity: scaleQty, Unit: scaleUnit}
		if strings.TrimSpace(req.Unit) == "" {
			req.Unit = serving.Unit
		}
		item := scaling.Build(scaleName, serving, req)
		if scaleJSON {
			return printJSON(cmd.OutOrStdout(), item)
		}
		writeScaledItem(cmd.OutOrStdout(), item)
		return nil
	},
}

func writeScaledItem(w io.Writer, item scaling.ScaledFoodItem) {
	f := item.Facts()
	fmt.Fprintf(w, "Food: %s\n", item.Name())
	fmt.Fprintf(w, "Portion: %s %s (%s)\n", formatQty(item.Quantity()), item.Unit(), item.Kind())
	fmt.Fprintf(w, "Servings: %.3f\n", item.Servings())
	if !item.Resolved() {
		fmt.Fprintln(w, "Note: portion could not be matched to the serving; showing one reference serving")
	}
	fmt.Fprintf(w, "Calories: %.1f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n", f.Calories, f.Protein, f.Carbohydrates, f.Fat)
	fmt.Fprintf(w, "Fiber: %.1fg\nSugar: %.1fg\nSaturated Fat: %.1fg\n", f.Fiber, f.Sugar, f.SaturatedFat)
	for _, id := range item.MicroKeys() {
		fmt.Fprintf(w, "%s: %.2f%s\n", id.Name(), f.Micros[id], unitSuffix(id))
	}
}

func unitSuffix(id nutrient.ID) string {
	u := id.Unit()
	if u == "g" || u == "mg" || u == "mcg" {
		return u
	}
	return " " + u
}

func init() {
	scaleServing.register(scaleCmd)
	scaleCmd.Flags().StringVar(&scaleName, "name", "food", "Food name")
	scaleCmd.Flags().Float64Var(&scaleQty, "qty", 1, "Portion quantity")
	scaleCmd.Flags().StringVar(&scaleUnit, "unit", "", "Portion unit (default: the serving unit)")
	scaleCmd.Flags().BoolVar(&scaleJSON, "json", false, "Output JSON")
	rootCmd.AddCommand(scaleCmd)
}
