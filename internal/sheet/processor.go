// Package sheet applies the date normalizer across tabular data: per-column
// normalization and statistics, chronological reordering, and multi-sheet
// aggregation.
package sheet

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/normalize"
)

var (
	// ErrNoColumns is returned when no column was selected for normalization.
	ErrNoColumns = errors.New("no columns selected")
	// ErrNoSheetProcessed is returned when every sheet of a run was skipped.
	ErrNoSheetProcessed = errors.New("no sheet processed successfully")
	// ErrMalformedTable marks a sheet whose structure cannot be processed.
	ErrMalformedTable = errors.New("malformed table")
)

// Options configures one processing run.
type Options struct {
	Columns    []string          // columns to normalize, in order
	SortColumn string            // defaults to the first entry of Columns
	Sort       bool              // reorder rows chronologically by SortColumn
	Pattern    model.DatePattern // output pattern, defaults to DD-MM-YYYY
}

func (o Options) pattern() model.DatePattern {
	if o.Pattern.Valid() {
		return o.Pattern
	}
	return model.DefaultPattern
}

func (o Options) sortColumn() string {
	if o.SortColumn != "" {
		return o.SortColumn
	}
	if len(o.Columns) > 0 {
		return o.Columns[0]
	}
	return ""
}

// Process normalizes the selected columns of t. Selected columns missing
// from t are skipped with a warning. The input table is not modified.
func Process(t *model.Table, opts Options, log zerolog.Logger) (*model.NormalizedTable, map[string]model.ColumnStats, error) {
	if len(opts.Columns) == 0 {
		return nil, nil, ErrNoColumns
	}
	if err := validateTable(t); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	pattern := opts.pattern()

	nt := &model.NormalizedTable{
		Sheet:    t.Name,
		Header:   append([]string(nil), t.Header...),
		Rows:     copyRows(t),
		Outcomes: make(map[string][]model.ParseOutcome),
		Raw:      make(map[string][]model.CellValue),
	}
	stats := make(map[string]model.ColumnStats)

	for _, col := range opts.Columns {
		if _, done := nt.Outcomes[col]; done {
			continue
		}
		idx, ok := t.ColumnIndex(col)
		if !ok {
			msg := fmt.Sprintf("column %q not found in sheet %q, skipped", col, t.Name)
			nt.Warnings = append(nt.Warnings, msg)
			log.Warn().Str("sheet", t.Name).Str("column", col).Msg("column not found, skipped")
			continue
		}

		outcomes := make([]model.ParseOutcome, len(t.Rows))
		raw := make([]model.CellValue, len(t.Rows))
		for i, row := range t.Rows {
			v := row.Cell(idx)
			raw[i] = v
			outcomes[i] = normalize.Normalize(v, pattern)
			nt.Rows[i].Cells[idx] = model.Text(outcomes[i].Display)
		}

		st := model.NewColumnStats(col, t.Name, outcomes)
		nt.Columns = append(nt.Columns, col)
		nt.Outcomes[col] = outcomes
		nt.Raw[col] = raw
		nt.Stats = append(nt.Stats, st)
		stats[col] = st

		level := zerolog.InfoLevel
		if st.Failed() > 0 {
			level = zerolog.WarnLevel
		}
		log.WithLevel(level).
			Str("sheet", t.Name).
			Str("column", col).
			Int("converted", st.Converted).
			Int("failed", st.Failed()).
			Int("total", st.Total).
			Float64("percent", st.Percent).
			Msg("column normalized")
	}

	if opts.Sort {
		sortRows(nt, opts.sortColumn(), stats, log)
	}

	log.Debug().
		Str("sheet", t.Name).
		Int("rows", len(nt.Rows)).
		Int("columns", len(nt.Columns)).
		Dur("duration", time.Since(start)).
		Msg("sheet processed")

	return nt, stats, nil
}

// sortRows orders nt.Rows by the canonical dates of column, ascending and
// stable, with unrecognized values last. It does nothing when column was not
// normalized or none of its values were recognized.
func sortRows(nt *model.NormalizedTable, column string, stats map[string]model.ColumnStats, log zerolog.Logger) {
	outcomes, ok := nt.Outcomes[column]
	if !ok {
		log.Debug().Str("sheet", nt.Sheet).Str("column", column).Msg("sort column not normalized, sort skipped")
		return
	}
	if stats[column].Converted == 0 {
		log.Warn().Str("sheet", nt.Sheet).Str("column", column).Msg("no dates recognized in sort column, sort skipped")
		return
	}

	sort.SliceStable(nt.Rows, func(i, j int) bool {
		a := outcomes[nt.Rows[i].Index]
		b := outcomes[nt.Rows[j].Index]
		switch {
		case a.Succeeded() && b.Succeeded():
			return a.Date.Before(*b.Date)
		case a.Succeeded():
			return true
		default:
			return false
		}
	})
	nt.Sorted = true
	nt.SortedBy = column

	log.Info().Str("sheet", nt.Sheet).Str("column", column).Msg("rows sorted chronologically")
}

func validateTable(t *model.Table) error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrMalformedTable)
	}
	if len(t.Header) == 0 {
		return fmt.Errorf("%w: sheet %q has no header row", ErrMalformedTable, t.Name)
	}
	for i, row := range t.Rows {
		if len(row.Cells) > len(t.Header) {
			return fmt.Errorf("%w: sheet %q row %d has %d cells, header has %d",
				ErrMalformedTable, t.Name, i, len(row.Cells), len(t.Header))
		}
	}
	return nil
}

// copyRows deep-copies the rows of t, padding short rows to the header
// width and re-indexing them by position.
func copyRows(t *model.Table) []model.Row {
	rows := make([]model.Row, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]model.CellValue, len(t.Header))
		copy(cells, row.Cells)
		for j := len(row.Cells); j < len(cells); j++ {
			cells[j] = model.Missing()
		}
		rows[i] = model.Row{Index: i, Cells: cells}
	}
	return rows
}
