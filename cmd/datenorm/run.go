package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gyeh/datenorm/internal/db"
	"github.com/gyeh/datenorm/internal/exitcode"
	"github.com/gyeh/datenorm/internal/ingest"
	"github.com/gyeh/datenorm/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Normalize date columns and write the result",
	RunE:  runNormalize,
}

func init() {
	addInputFlags(runCmd)
	f := runCmd.Flags()
	f.StringVar(&cfg.OutputPath, "output", "", "Output xlsx path (default: <input>_normalized.xlsx)")
	f.StringVar(&cfg.ProblemsPath, "problems", "", "Also export unrecognized cells to this Parquet file")
	f.BoolVar(&cfg.NativeDates, "native-dates", false, "Write recognized dates as Excel date cells instead of text")
	f.BoolVar(&cfg.ProblemSheet, "problem-sheet", false, "Append a sheet listing unrecognized cells")
	rootCmd.AddCommand(runCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := loadConfigFile(cmd); err != nil {
		log.Error().Err(err).Msg("config file failed to load")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.ValidationError)
	}

	var pool *pgxpool.Pool
	if cfg.DSN != "" {
		p, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.AuditError)
		}
		defer p.Close()
		pool = p
	}

	summary, err := ingest.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("normalization failed")
			os.Exit(exitcode.ForPhase(pe.Phase))
		}
		log.Error().Err(err).Msg("normalization failed")
		os.Exit(exitcode.NormalizeError)
	}

	printSummary(os.Stdout, summary, false)
	fmt.Printf("Wrote %s (%.1fs)\n", summary.OutputPath, summary.DurationTotal.Seconds())
	if len(summary.SheetErrors) > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
