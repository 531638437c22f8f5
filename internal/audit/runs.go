package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	embedsql "github.com/gyeh/datenorm/internal/sql"
)

// PreviousRun identifies an earlier recorded run over the same input bytes.
type PreviousRun struct {
	RunID     uuid.UUID
	CreatedAt time.Time
}

// RunRecord is one row of datenorm.runs as listed by ListRuns.
type RunRecord struct {
	RunID       uuid.UUID
	InputPath   string
	InputSHA256 string
	Pattern     string
	SheetsDone  int
	Converted   int
	Total       int
	Percent     float64
	ProblemRows int64
	Status      string
	CreatedAt   time.Time
}

// PreviousRuns returns recorded runs whose input had the given SHA-256,
// newest first.
func PreviousRuns(ctx context.Context, pool *pgxpool.Pool, sha string) ([]PreviousRun, error) {
	rows, err := pool.Query(ctx, embedsql.LookupRunsBySHA, sha)
	if err != nil {
		return nil, fmt.Errorf("lookup previous runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[PreviousRun])
	if err != nil {
		return nil, fmt.Errorf("scan previous runs: %w", err)
	}
	return runs, nil
}

// ListRuns returns the most recent runs, newest first.
func ListRuns(ctx context.Context, pool *pgxpool.Pool, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := pool.Query(ctx, embedsql.ListRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	runs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[RunRecord])
	if err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return runs, nil
}
