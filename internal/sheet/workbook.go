package sheet

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/model"
)

// WorkbookResult collects the outcome of processing several sheets.
type WorkbookResult struct {
	Sheets    []*model.NormalizedTable
	Errors    []model.SheetError
	Warnings  []string
	Converted int
	Total     int
}

// Percent is the aggregate success rate over every processed sheet.
func (r *WorkbookResult) Percent() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Converted) / float64(r.Total) * 100
}

// Stats returns the column stats of every processed sheet, in order.
func (r *WorkbookResult) Stats() []model.ColumnStats {
	var all []model.ColumnStats
	for _, nt := range r.Sheets {
		all = append(all, nt.Stats...)
	}
	return all
}

// ProblemRows returns the problem rows of every processed sheet.
func (r *WorkbookResult) ProblemRows() []model.ProblemRow {
	var all []model.ProblemRow
	for _, nt := range r.Sheets {
		all = append(all, nt.AllProblemRows()...)
	}
	return all
}

// ProcessWorkbook processes sheets one after another. A sheet lacking some
// selected columns is processed with the ones it has; a sheet lacking all of
// them, or failing structurally, is recorded in Errors and skipped without
// affecting the others. When SortColumn is absent from a sheet, that sheet
// is sorted by its first present selected column.
func ProcessWorkbook(sheets []*model.Table, opts Options, log zerolog.Logger) (*WorkbookResult, error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}
	res := &WorkbookResult{}

	for _, t := range sheets {
		name := ""
		if t != nil {
			name = t.Name
		}
		present, missing := splitColumns(t, opts.Columns)
		if len(missing) > 0 {
			msg := fmt.Sprintf("sheet %q is missing columns: %s", name, strings.Join(missing, ", "))
			res.Warnings = append(res.Warnings, msg)
			log.Warn().Str("sheet", name).Strs("missing", missing).Msg("selected columns missing from sheet")
		}
		if len(present) == 0 {
			res.Errors = append(res.Errors, model.SheetError{Sheet: name, Reason: "none of the selected columns found"})
			log.Error().Str("sheet", name).Msg("none of the selected columns found, sheet skipped")
			continue
		}

		sheetOpts := opts
		sheetOpts.Columns = present
		sheetOpts.SortColumn = present[0]
		for _, c := range present {
			if c == opts.SortColumn {
				sheetOpts.SortColumn = c
				break
			}
		}

		nt, _, err := Process(t, sheetOpts, log)
		if err != nil {
			res.Errors = append(res.Errors, model.SheetError{Sheet: name, Reason: err.Error()})
			log.Error().Err(err).Str("sheet", name).Msg("sheet processing failed, skipped")
			continue
		}

		res.Sheets = append(res.Sheets, nt)
		res.Warnings = append(res.Warnings, nt.Warnings...)
		for _, st := range nt.Stats {
			res.Converted += st.Converted
			res.Total += st.Total
		}
	}

	if len(res.Sheets) == 0 {
		return res, ErrNoSheetProcessed
	}

	log.Info().
		Int("sheets", len(res.Sheets)).
		Int("skipped", len(res.Errors)).
		Int("converted", res.Converted).
		Int("total", res.Total).
		Float64("percent", res.Percent()).
		Msg("workbook processed")

	return res, nil
}

// splitColumns partitions the selected columns into those present in t and
// those missing, de-duplicating while preserving order.
func splitColumns(t *model.Table, columns []string) (present, missing []string) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		if t != nil {
			if _, ok := t.ColumnIndex(c); ok {
				present = append(present, c)
				continue
			}
		}
		missing = append(missing, c)
	}
	return present, missing
}
