package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/model"
	embedsql "github.com/gyeh/datenorm/internal/sql"
)

// InsertColumnStats upserts one datenorm.column_stats row per column in a
// single batch round trip.
func InsertColumnStats(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID, stats []model.ColumnStats) (int, error) {
	if len(stats) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(embedsql.InsertColumnStat,
			runID,
			s.Sheet,
			s.Column,
			s.Converted,
			s.Total,
			s.Percent,
			s.Earliest,
			s.Latest,
		)
	}

	br := pool.SendBatch(ctx, batch)
	for _, s := range stats {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("insert stats for %s/%s: %w", s.Sheet, s.Column, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close stats batch: %w", err)
	}

	log.Debug().Str("run_id", runID.String()).Int("columns", len(stats)).Msg("column stats recorded")
	return len(stats), nil
}
