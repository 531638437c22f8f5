package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/datenorm/internal/config"
	"github.com/gyeh/datenorm/internal/exitcode"
	"github.com/gyeh/datenorm/internal/model"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "datenorm",
	Short:        "Spreadsheet date column normalizer",
	Long:         "Reads xlsx or CSV files, rewrites the selected date columns in one output format, and reports the values it could not recognize.",
	SilenceUsage: true,
}

func init() {
	// A .env file in the working directory may supply DATENORM_DB_URL.
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATENORM_DB_URL"), "Postgres connection string for the run audit (or set DATENORM_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&configPath, "config", "", "YAML file with column and output settings")
}

// addInputFlags registers the flags shared by commands that read and
// normalize a file.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to the xlsx or CSV file (required)")
	f.StringSliceVar(&cfg.Columns, "columns", nil, "Date columns to normalize (comma-separated or repeated)")
	f.StringVar(&cfg.SortColumn, "sort-column", "", "Column to sort rows by (default: first selected column)")
	f.BoolVar(&cfg.Sort, "sort", true, "Sort rows by date, unrecognized values last")
	f.StringVar(&cfg.OutputPattern, "pattern", string(model.DefaultPattern), "Output date format: DD-MM-YYYY, DD/MM/YYYY or YYYY-MM-DD")
	f.StringVar(&cfg.Sheet, "sheet", "", "Sheet to process (default: first sheet)")
	f.BoolVar(&cfg.AllSheets, "all-sheets", false, "Process every sheet in the workbook")
	_ = cmd.MarkFlagRequired("file")
}

// loadConfigFile merges --config into cfg without overriding flags the user
// set explicitly.
func loadConfigFile(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}
	return cfg.LoadFromFile(configPath, cmd.Flags().Changed)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
