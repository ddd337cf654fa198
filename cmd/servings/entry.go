package servings

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/report"
	"github.com/saadjs/servings-cli/internal/service"
	"github.com/spf13/cobra"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Inspect and edit logged entries",
}

var (
	listDate     string
	listFromDate string
	listToDate   string
	listMeal     string
	listLimit    int
	listJSON     bool
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.ListEntriesFilter{
			Date:     listDate,
			FromDate: listFromDate,
			ToDate:   listToDate,
			MealType: listMeal,
			Limit:    listLimit,
		}
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.ListEntries(sqldb, filter)
			if err != nil {
				return err
			}
			if listJSON {
				views := make([]entryView, 0, len(entries))
				for _, e := range entries {
					views = append(views, newEntryView(e))
				}
				return printJSON(cmd.OutOrStdout(), views)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tMEAL\tITEMS\tKCAL\tP\tC\tF\tDESCRIPTION")
			for _, e := range entries {
				t := report.Totals(report.Flatten([]model.FoodEntry{e}))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					e.ID, e.Date, e.MealType, t.ItemCount, t.Calories, t.Protein, t.Carbohydrates, t.Fat, e.Description)
			}
			return nil
		})
	},
}

var showJSON bool

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry with its groups and items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUUIDArg("entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			e, err := service.EntryByID(sqldb, id)
			if err != nil {
				return err
			}
			if showJSON {
				return printJSON(cmd.OutOrStdout(), newEntryView(e))
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID: %s\n", e.ID)
			fmt.Fprintf(w, "Date: %s\n", e.Date)
			fmt.Fprintf(w, "Meal: %s\n", e.MealType)
			fmt.Fprintf(w, "Description: %s\n", e.Description)
			for _, g := range e.Groups {
				fmt.Fprintf(w, "\n[%s]\n", g.Name)
				fmt.Fprintln(w, "ITEM ID\tNAME\tPORTION\tSERVINGS\tKCAL\tP\tC\tF")
				for _, it := range g.Items {
					writeItemLine(w, it.ID, it.ScaledFoodItem)
				}
			}
			t := report.Totals(report.Flatten([]model.FoodEntry{e}))
			fmt.Fprintf(w, "\nTotal: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n", t.Calories, t.Protein, t.Carbohydrates, t.Fat)
			return nil
		})
	},
}

var (
	updateDate        string
	updateMeal        string
	updateDescription string
)

var entryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update entry date, meal type, or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUUIDArg("entry id", args[0])
		if err != nil {
			return err
		}
		in := service.UpdateEntryInput{ID: id}
		if cmd.Flags().Changed("date") {
			in.Date = &updateDate
		}
		if cmd.Flags().Changed("meal") {
			in.MealType = &updateMeal
		}
		if cmd.Flags().Changed("description") {
			in.Description = &updateDescription
		}
		if in.Date == nil && in.MealType == nil && in.Description == nil {
			return fmt.Errorf("set at least one of --date, --meal, --description")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateEntry(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", id)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry with all of its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUUIDArg("entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteEntry(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", id)
			return nil
		})
	},
}

var entryRemoveItemCmd = &cobra.Command{
	Use:   "remove-item <item-id>",
	Short: "Remove one item from its entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUUIDArg("item id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			entryRemoved, err := service.RemoveItem(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", id)
			if entryRemoved {
				fmt.Fprintln(cmd.OutOrStdout(), "Entry had no items left and was deleted")
			}
			return nil
		})
	},
}

func init() {
	entryListCmd.Flags().StringVar(&listDate, "date", "", "Filter by date (YYYY-MM-DD)")
	entryListCmd.Flags().StringVar(&listFromDate, "from", "", "Filter from date inclusive (YYYY-MM-DD)")
	entryListCmd.Flags().StringVar(&listToDate, "to", "", "Filter to date inclusive (YYYY-MM-DD)")
	entryListCmd.Flags().StringVar(&listMeal, "meal", "", "Filter by meal type")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 50, "Max rows")
	entryListCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")

	entryShowCmd.Flags().BoolVar(&showJSON, "json", false, "Output JSON")

	entryUpdateCmd.Flags().StringVar(&updateDate, "date", "", "New date (YYYY-MM-DD)")
	entryUpdateCmd.Flags().StringVar(&updateMeal, "meal", "", "New meal type")
	entryUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")

	entryCmd.AddCommand(entryListCmd, entryShowCmd, entryUpdateCmd, entryDeleteCmd, entryRemoveItemCmd)
	rootCmd.AddCommand(entryCmd)
}
