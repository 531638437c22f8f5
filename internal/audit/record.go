// Package audit records normalization runs in Postgres: one row per run,
// its per-column stats and every problem row.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/model"
	embedsql "github.com/gyeh/datenorm/internal/sql"
)

// Run statuses stored in datenorm.runs.status.
const (
	StatusRecording = "recording"
	StatusRecorded  = "recorded"
	StatusFailed    = "failed"
)

// Result holds metrics from recording one run.
type Result struct {
	RunID        uuid.UUID
	ProblemRows  int64
	ColumnStats  int
	PreviousRuns int
	Duration     time.Duration
}

// Record stores summary and its problem rows. A failure after the run row
// exists marks the run failed and removes any problem rows already copied.
func Record(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, summary *model.RunSummary, problems []model.ProblemRow) (*Result, error) {
	start := time.Now()

	runID, err := uuid.Parse(summary.RunID)
	if err != nil {
		return nil, fmt.Errorf("parse run id: %w", err)
	}

	previous, err := PreviousRuns(ctx, pool, summary.InputSHA256)
	if err != nil {
		return nil, err
	}
	if len(previous) > 0 {
		log.Info().
			Str("sha256", summary.InputSHA256).
			Int("previous_runs", len(previous)).
			Str("last_run_id", previous[0].RunID.String()).
			Msg("input was normalized before")
	}

	if _, err := pool.Exec(ctx, embedsql.InsertRun,
		runID,
		summary.InputPath,
		summary.InputSHA256,
		nilIfEmpty(summary.OutputPath),
		nilIfEmpty(summary.ProblemsPath),
		string(summary.Pattern),
	); err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	fail := func(err error) (*Result, error) {
		if uerr := UpdateStatus(ctx, pool, runID, StatusFailed); uerr != nil {
			log.Warn().Err(uerr).Str("run_id", runID.String()).Msg("mark run failed")
		}
		if cerr := Cleanup(ctx, pool, log, runID); cerr != nil {
			log.Warn().Err(cerr).Str("run_id", runID.String()).Msg("problem row cleanup failed (non-fatal)")
		}
		return nil, err
	}

	copied, err := CopyProblems(ctx, pool, log, runID, problems)
	if err != nil {
		return fail(err)
	}

	nstats, err := InsertColumnStats(ctx, pool, log, runID, summary.Stats)
	if err != nil {
		return fail(err)
	}

	if _, err := pool.Exec(ctx, embedsql.FinishRun,
		runID,
		summary.SheetsRead,
		summary.SheetsDone,
		summary.Converted,
		summary.Total,
		summary.Percent,
		copied,
		summary.DurationTotal.Milliseconds(),
	); err != nil {
		return fail(fmt.Errorf("finish run: %w", err))
	}

	res := &Result{
		RunID:        runID,
		ProblemRows:  copied,
		ColumnStats:  nstats,
		PreviousRuns: len(previous),
		Duration:     time.Since(start),
	}
	log.Info().
		Str("run_id", runID.String()).
		Int64("problem_rows", res.ProblemRows).
		Int("column_stats", res.ColumnStats).
		Dur("duration", res.Duration).
		Msg("run recorded")
	return res, nil
}

// UpdateStatus sets the status of a recorded run.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateRunStatus, runID, status)
	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
