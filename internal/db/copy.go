package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/datenorm/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading ProblemRows from a
// channel, tagging each with the run they belong to.
type ChannelSource struct {
	runID   uuid.UUID
	ch      <-chan *model.ProblemRow
	current *model.ProblemRow
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(runID uuid.UUID, ch <-chan *model.ProblemRow) *ChannelSource {
	return &ChannelSource{runID: runID, ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	return true
}

// Values returns the current row's values in model.ProblemColumns order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(s.runID), nil
}

// Err returns any error encountered during iteration.
func (s *ChannelSource) Err() error {
	return s.err
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
