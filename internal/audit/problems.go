package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/db"
	"github.com/gyeh/datenorm/internal/model"
	embedsql "github.com/gyeh/datenorm/internal/sql"
)

const copyBufferSize = 1024

// CopyProblems COPY-loads rows into datenorm.problem_rows through a
// channel-backed CopyFromSource and returns the number of rows copied.
func CopyProblems(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID, rows []model.ProblemRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	start := time.Now()

	ch := make(chan *model.ProblemRow, copyBufferSize)
	errCh := make(chan error, 1)

	// Producer goroutine: feed rows until done or cancelled
	go func() {
		defer close(ch)
		for i := range rows {
			select {
			case ch <- &rows[i]:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	source := db.NewChannelSource(runID, ch)
	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"datenorm", "problem_rows"},
		model.ProblemColumns(),
		source,
	)

	// Drain so the producer never blocks after an early COPY failure.
	for range ch {
	}
	if prodErr := <-errCh; prodErr != nil {
		return 0, fmt.Errorf("problem row producer: %w", prodErr)
	}
	if err != nil {
		return 0, fmt.Errorf("copy problem rows: %w", err)
	}

	log.Debug().
		Str("run_id", runID.String()).
		Int64("rows", copied).
		Dur("duration", time.Since(start)).
		Msg("problem rows copied")
	return copied, nil
}

// Cleanup deletes the problem rows of a run.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteRunProblems, runID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("problem row cleanup complete")
	return nil
}
