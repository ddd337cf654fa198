package servings

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/servings-cli/internal/app"
	"github.com/saadjs/servings-cli/internal/provider/usda"
	"github.com/saadjs/servings-cli/internal/service"
	"github.com/spf13/cobra"
)

const usdaSignupURL = "https://api.data.gov/signup/"

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up reference servings in USDA FoodData Central",
}

var (
	lookupLimit   int
	lookupJSON    bool
	lookupRefresh bool
)

var lookupSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search FoodData Central",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := requireUSDAClient()
		if err != nil {
			return err
		}
		foods, err := client.Search(commandContext(cmd), strings.Join(args, " "), lookupLimit)
		if err != nil {
			return err
		}
		if lookupJSON {
			return printJSON(cmd.OutOrStdout(), foods)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FDC ID\tDESCRIPTION\tBRAND\tSERVING\tKCAL/100")
		for _, f := range foods {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%.0f\n", f.FDCID, f.Description, f.Brand, f.Note, f.Serving.NutrientCodeValues[208])
		}
		return nil
	},
}

var lookupFoodCmd = &cobra.Command{
	Use:   "food <fdc-id>",
	Short: "Fetch one food and cache its reference serving",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fdcID, err := parseInt64Arg("fdc id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			rec, cached, err := service.USDAServing(commandContext(cmd), sqldb, usdaFetcher(), fdcID, lookupRefresh)
			if err != nil {
				return err
			}
			if lookupJSON {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			source := "live"
			if cached {
				source = "cache"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "FDC ID: %s (%s)\n", rec.SourceRef, source)
			fmt.Fprintf(w, "Food: %s\n", rec.Name)
			if rec.Brand != "" {
				fmt.Fprintf(w, "Brand: %s\n", rec.Brand)
			}
			fmt.Fprintf(w, "Serving: %s %s (%s)\n", formatQty(rec.Serving.Quantity), rec.Serving.Unit, rec.Serving.Kind)
			if rec.Note != "" {
				fmt.Fprintf(w, "Label serving: %s\n", rec.Note)
			}
			fmt.Fprintf(w, "Nutrient codes: %d\n", len(rec.Serving.NutrientCodeValues))
			return nil
		})
	},
}

func requireUSDAClient() (*usda.Client, error) {
	if settings.USDAAPIKey == "" {
		return nil, fmt.Errorf("set %s to use FoodData Central (free key: %s)", app.EnvUSDAAPIKey, usdaSignupURL)
	}
	return usda.NewClient(settings.USDAAPIKey), nil
}

func init() {
	lookupSearchCmd.Flags().IntVar(&lookupLimit, "limit", 10, "Max results")
	lookupFoodCmd.Flags().BoolVar(&lookupRefresh, "refresh", false, "Refetch even if cached")
	for _, c := range []*cobra.Command{lookupSearchCmd, lookupFoodCmd} {
		c.Flags().BoolVar(&lookupJSON, "json", false, "Output JSON")
	}
	lookupCmd.AddCommand(lookupSearchCmd, lookupFoodCmd)
	rootCmd.AddCommand(lookupCmd)
}
