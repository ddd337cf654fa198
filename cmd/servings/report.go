package servings

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/saadjs/servings-cli/internal/export"
	"github.com/saadjs/servings-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	reportFrom   string
	reportTo     string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report totals and nutrient/food breakdowns for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(reportFormat))
		if format != "text" && format != "json" {
			if _, err := export.ParseFormat(format); err != nil {
				return fmt.Errorf("unsupported --format %q (expected text, json, csv, or pdf)", reportFormat)
			}
		}
		if format == string(export.FormatPDF) && strings.TrimSpace(reportOut) == "" {
			return fmt.Errorf("--out is required for pdf reports")
		}
		return withDB(func(sqldb *sql.DB) error {
			summary, err := service.PeriodReport(sqldb, reportFrom, reportTo)
			if err != nil {
				return err
			}

			write := func(w io.Writer) error {
				return writeReport(w, format, summary)
			}
			if strings.TrimSpace(reportOut) == "" {
				return write(cmd.OutOrStdout())
			}
			if err := writeReportFile(reportOut, write); err != nil {
				return err
			}
			slog.Info("wrote report", "path", reportOut, "format", format)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, reportOut)
			return nil
		})
	},
}

func writeReport(w io.Writer, format string, s service.PeriodSummary) error {
	switch format {
	case "text":
		writeTextReport(w, s)
		return nil
	case "json":
		return printJSON(w, s)
	default:
		return export.Write(w, export.Format(format), s)
	}
}

// writeReportFile removes the file again when writing or closing it fails.
func writeReportFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}

func writeTextReport(w io.Writer, s service.PeriodSummary) {
	t := s.Totals
	fmt.Fprintf(w, "Period: %s to %s\n", s.From, s.To)
	fmt.Fprintf(w, "Entries: %d  Items: %d\n", s.EntryCount, t.ItemCount)
	fmt.Fprintf(w, "Calories: %.0f\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\n", t.Calories, t.Protein, t.Carbohydrates, t.Fat)
	fmt.Fprintf(w, "Fiber: %.1fg\nSugar: %.1fg\nSaturated Fat: %.1fg\nUnsaturated Fat: %.1fg\nTrans Fat: %.1fg\n",
		t.Fiber, t.Sugar, t.SaturatedFat, t.UnsaturatedFat, t.TransFat)

	if len(s.Days) > 1 {
		fmt.Fprintln(w, "\nDATE\tITEMS\tKCAL\tP\tC\tF")
		for _, d := range s.Days {
			fmt.Fprintf(w, "%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n", d.Date, d.Totals.ItemCount, d.Totals.Calories, d.Totals.Protein, d.Totals.Carbohydrates, d.Totals.Fat)
		}
	}

	if len(s.Nutrients) > 0 {
		fmt.Fprintln(w, "\nBy nutrient:")
		for _, b := range s.Nutrients {
			fmt.Fprintf(w, "%s: %.2f %s\n", b.Nutrient.Name(), b.TotalAmount, b.Unit)
			for _, c := range b.Foods {
				fmt.Fprintf(w, "  %s\t%.2f %s\t(%s %s)\n", c.Name, c.Amount, c.Unit, formatQty(c.DisplayQuantity), c.DisplayUnit)
			}
		}
	}

	if len(s.Foods) > 0 {
		fmt.Fprintln(w, "\nBy food:")
		for _, f := range s.Foods {
			fmt.Fprintf(w, "%s: %s %s\n", f.Name, formatQty(f.TotalAmount), f.Unit)
			for _, c := range f.Nutrients {
				fmt.Fprintf(w, "  %s\t%.2f %s\n", c.Name, c.Amount, c.Unit)
			}
		}
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Start date inclusive (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "End date inclusive (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, json, csv, pdf")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Write the report to this file")
	rootCmd.AddCommand(reportCmd)
}
