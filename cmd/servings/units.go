package servings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/servings-cli/internal/units"
	"github.com/spf13/cobra"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Inspect unit classification and conversion",
}

var unitsLenient bool

var unitsClassifyCmd = &cobra.Command{
	Use:   "classify <unit>",
	Short: "Classify a unit as weight, volume, or count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if unitsLenient {
			fmt.Fprintln(cmd.OutOrStdout(), units.ClassifyOrDefault(args[0]))
			return nil
		}
		kind, err := units.Classify(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), kind)
		return nil
	},
}

var unitsGramsCmd = &cobra.Command{
	Use:   "grams <quantity> <unit>",
	Short: "Convert a quantity to grams (volume at water density)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[0])
		}
		grams, ok := units.ToGrams(qty, args[1])
		if !ok {
			return fmt.Errorf("no gram conversion for unit %q", args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s g\n", strconv.FormatFloat(grams, 'f', -1, 64))
		return nil
	},
}

func init() {
	unitsClassifyCmd.Flags().BoolVar(&unitsLenient, "lenient", false, "Treat unrecognized units as count instead of failing")
	unitsCmd.AddCommand(unitsClassifyCmd, unitsGramsCmd)
	rootCmd.AddCommand(unitsCmd)
}
