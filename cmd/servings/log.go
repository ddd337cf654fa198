package servings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/provider/usda"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/service"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log foods you ate",
}

var (
	logServing     servingFlags
	logName        string
	logBrand       string
	logQty         float64
	logUnit        string
	logFDCID       int64
	logRefresh     bool
	logDate        string
	logMeal        string
	logDescription string
	logGroup       string
	logJSON        bool
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log one food as a new entry",
	Long: "Log one food as a new entry. The reference serving comes from the --serving-* and --nutrient flags,\n" +
		"or from FoodData Central with --fdc-id (cached locally after the first fetch).",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(logUnit) == "" {
			return fmt.Errorf("--unit is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			name := logName
			brand := logBrand
			var serving scaling.ReferenceServing
			if logFDCID > 0 {
				rec, cached, err := service.USDAServing(commandContext(cmd), sqldb, usdaFetcher(), logFDCID, logRefresh)
				if err != nil {
					return err
				}
				if cached {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using cached serving for FDC %d\n", logFDCID)
				}
				serving = rec.Serving
				if strings.TrimSpace(name) == "" {
					name = rec.Name
				}
				if strings.TrimSpace(brand) == "" {
					brand = rec.Brand
				}
			} else {
				s, err := logServing.serving()
				if err != nil {
					return err
				}
				serving = s
			}

			entry, err := service.LogFood(sqldb, service.LogFoodInput{
				Date:        logDate,
				MealType:    logMeal,
				Description: logDescription,
				Groups: []service.LogGroupInput{{
					Name: logGroup,
					Items: []service.LogItemInput{{
						Name:    name,
						Serving: serving,
						Request: scaling.UserRequest{Quantity: logQty, Unit: logUnit, Brand: brand, IsBranded: brand != ""},
					}},
				}},
			})
			if err != nil {
				return err
			}
			return writeLoggedEntry(cmd, entry)
		})
	},
}

var logImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Log an entry with several groups from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var in service.LogFoodInput
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}
		if cmd.Flags().Changed("date") {
			in.Date = logDate
		}
		if cmd.Flags().Changed("meal") {
			in.MealType = logMeal
		}
		return withDB(func(sqldb *sql.DB) error {
			entry, err := service.LogFood(sqldb, in)
			if err != nil {
				return err
			}
			return writeLoggedEntry(cmd, entry)
		})
	},
}

func writeLoggedEntry(cmd *cobra.Command, e model.FoodEntry) error {
	if logJSON {
		return printJSON(cmd.OutOrStdout(), newEntryView(e))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged entry %s (%s, %s, %d item(s))\n", e.ID, e.Date, e.MealType, e.ItemCount())
	for _, g := range e.Groups {
		for _, it := range g.Items {
			writeItemLine(cmd.OutOrStdout(), it.ID, it.ScaledFoodItem)
		}
	}
	return nil
}

// usdaFetcher returns nil when no API key is configured so cached servings
// still work offline.
func usdaFetcher() service.FoodFetcher {
	if settings.USDAAPIKey == "" {
		return nil
	}
	return usda.NewClient(settings.USDAAPIKey)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	logServing.register(logAddCmd)
	logAddCmd.Flags().StringVar(&logName, "name", "", "Food name (defaults to the FoodData Central description with --fdc-id)")
	logAddCmd.Flags().StringVar(&logBrand, "brand", "", "Brand name")
	logAddCmd.Flags().Float64Var(&logQty, "qty", 1, "Portion quantity")
	logAddCmd.Flags().StringVar(&logUnit, "unit", "", "Portion unit")
	logAddCmd.Flags().Int64Var(&logFDCID, "fdc-id", 0, "FoodData Central id to take the reference serving from")
	logAddCmd.Flags().BoolVar(&logRefresh, "refresh", false, "Refetch the --fdc-id serving even if cached")
	logAddCmd.Flags().StringVar(&logGroup, "group", "", "Group name (defaults to the food name)")
	logAddCmd.Flags().StringVar(&logDescription, "description", "", "Entry description")

	for _, c := range []*cobra.Command{logAddCmd, logImportCmd} {
		c.Flags().StringVar(&logDate, "date", "", "Entry date YYYY-MM-DD (default today)")
		c.Flags().StringVar(&logMeal, "meal", "", "Meal type: breakfast, lunch, dinner, snack (default from config)")
		c.Flags().BoolVar(&logJSON, "json", false, "Output JSON")
	}
	logCmd.AddCommand(logAddCmd, logImportCmd)
	rootCmd.AddCommand(logCmd)
}
