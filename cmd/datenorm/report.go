package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/datenorm/internal/audit"
	"github.com/gyeh/datenorm/internal/db"
	"github.com/gyeh/datenorm/internal/exitcode"
	"github.com/gyeh/datenorm/internal/logging"
	"github.com/gyeh/datenorm/internal/parquetio"
)

var (
	reportFile string
	reportRuns int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an exported problem-row file or the recent audited runs",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFile, "file", "", "Problem-row Parquet file written by run --problems")
	f.IntVar(&reportRuns, "runs", 0, "List this many recent runs from the audit database")
	reportCmd.MarkFlagsOneRequired("file", "runs")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if reportFile != "" {
		r, err := parquetio.Open(reportFile)
		if err != nil {
			log.Error().Err(err).Msg("failed to open problem file")
			os.Exit(exitcode.ReadError)
		}
		defer r.Close()

		rows, err := r.ReadAll()
		if err != nil {
			log.Error().Err(err).Msg("failed to read problem file")
			os.Exit(exitcode.ReadError)
		}
		fmt.Printf("%s: %d problem rows\n", reportFile, len(rows))
		printProblems(os.Stdout, rows, 0)
	}

	if reportRuns > 0 {
		if err := cfg.ValidateDSN(); err != nil {
			log.Error().Err(err).Msg("--runs needs the audit database")
			os.Exit(exitcode.UsageError)
		}
		ctx := context.Background()
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.AuditError)
		}
		defer pool.Close()

		runs, err := audit.ListRuns(ctx, pool, reportRuns)
		if err != nil {
			log.Error().Err(err).Msg("failed to list runs")
			os.Exit(exitcode.AuditError)
		}
		fmt.Printf("%-36s  %-19s  %-10s  %8s  %7s  %s\n", "RUN", "CREATED", "STATUS", "RATE", "PROBLEMS", "INPUT")
		for _, r := range runs {
			fmt.Printf("%-36s  %-19s  %-10s  %7.1f%%  %7d  %s\n",
				r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Status, r.Percent, r.ProblemRows, r.InputPath)
		}
	}
	return nil
}
