package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/audit"
	"github.com/gyeh/datenorm/internal/config"
	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/parquetio"
	"github.com/gyeh/datenorm/internal/sheet"
	"github.com/gyeh/datenorm/internal/workbook"
)

// Pipeline phases, reported in PipelineError.Phase.
const (
	PhaseRead      = "read"
	PhaseNormalize = "normalize"
	PhaseWrite     = "write"
	PhaseExport    = "export"
	PhaseAudit     = "audit"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the normalization pipeline: read → normalize → write →
// export → audit. With cfg.DryRun it stops after normalize. Export runs only
// when cfg.ProblemsPath is set and audit only when pool is non-nil.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.RunSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()
	opts := cfg.Options()

	// Phase 1: Read
	log.Info().Str("file", cfg.FilePath).Msg("reading input")
	in, err := ReadInput(ctx, log, cfg)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseRead, Err: err}
	}

	// Phase 2: Normalize
	normStart := time.Now()
	res, err := sheet.ProcessWorkbook(in.Tables, opts, log)
	if err != nil {
		if res != nil {
			for _, se := range res.Errors {
				log.Warn().Str("sheet", se.Sheet).Str("reason", se.Reason).Msg("sheet skipped")
			}
		}
		return nil, &PipelineError{Phase: PhaseNormalize, Err: err}
	}

	problems := res.ProblemRows()
	summary := &model.RunSummary{
		RunID:        runID.String(),
		InputPath:    in.FilePath,
		InputSHA256:  in.FileSHA256,
		Pattern:      opts.Pattern,
		SheetsRead:   len(in.Tables) + len(in.SheetErrors),
		SheetsDone:   len(res.Sheets),
		Stats:        res.Stats(),
		Converted:    res.Converted,
		Total:        res.Total,
		Percent:      res.Percent(),
		ProblemRows:  int64(len(problems)),
		Problems:     problems,
		Warnings:     res.Warnings,
		SheetErrors:  append(append([]model.SheetError(nil), in.SheetErrors...), res.Errors...),
		DurationRead: in.Duration,
		DurationNorm: time.Since(normStart),
	}

	if cfg.DryRun {
		log.Info().Msg("dry run, skipping write")
		summary.DurationTotal = time.Since(totalStart)
		return summary, nil
	}

	// Phase 3: Write
	writeStart := time.Now()
	summary.OutputPath = cfg.Output()
	if err := workbook.Write(summary.OutputPath, res.Sheets, workbook.WriteOptions{
		Pattern:      opts.Pattern,
		NativeDates:  cfg.NativeDates,
		ProblemSheet: cfg.ProblemSheet,
	}); err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}
	summary.DurationWrite = time.Since(writeStart)
	log.Info().Str("output", summary.OutputPath).Dur("duration", summary.DurationWrite).Msg("output written")

	// Phase 4: Export problem rows
	if cfg.ProblemsPath != "" {
		exportStart := time.Now()
		if err := parquetio.WriteProblemRows(cfg.ProblemsPath, problems); err != nil {
			return nil, &PipelineError{Phase: PhaseExport, Err: err}
		}
		summary.ProblemsPath = cfg.ProblemsPath
		summary.DurationExport = time.Since(exportStart)
		log.Info().
			Str("problems", cfg.ProblemsPath).
			Int("rows", len(problems)).
			Msg("problem rows exported")
	}

	// Phase 5: Audit
	summary.DurationTotal = time.Since(totalStart)
	if pool != nil {
		auditRes, err := audit.Record(ctx, pool, log, summary, problems)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseAudit, Err: err}
		}
		summary.DurationAudit = auditRes.Duration
		summary.DurationTotal = time.Since(totalStart)
	}

	level := zerolog.InfoLevel
	if summary.Grade() != "complete" || len(summary.SheetErrors) > 0 {
		level = zerolog.WarnLevel
	}
	log.WithLevel(level).
		Int("sheets_done", summary.SheetsDone).
		Int("sheets_skipped", len(summary.SheetErrors)).
		Int("converted", summary.Converted).
		Int("total", summary.Total).
		Float64("percent", summary.Percent).
		Str("grade", summary.Grade()).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("normalization pipeline complete")

	return summary, nil
}
