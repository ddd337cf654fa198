package servings

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/saadjs/servings-cli/internal/app"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	logLevel string
	settings app.Settings
)

var rootCmd = &cobra.Command{
	Use:   "servings",
	Short: "servings scales nutrition facts to the portions you actually ate",
	Long: "servings is a local-first food log. It scales reference-serving nutrition data to reported portions,\n" +
		"stores meals in SQLite, and reports totals and per-nutrient and per-food breakdowns.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadDotEnv(".env"); err != nil {
			return err
		}
		s, err := app.ResolveSettings(dbPath, logLevel)
		if err != nil {
			return err
		}
		settings = s
		slog.SetDefault(app.NewLogger(cmd.ErrOrStderr(), s.LogLevel))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env "+app.EnvDBPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+app.EnvLogLevel+")")
}
