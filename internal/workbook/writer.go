package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/normalize"
)

// ProblemSheetName is the sheet that lists unconvertible cells when
// WriteOptions.ProblemSheet is set.
const ProblemSheetName = "Problem rows"

// Excel sheet names are limited to 31 characters.
const maxSheetName = 31

// WriteOptions controls how normalized tables are written.
type WriteOptions struct {
	Pattern model.DatePattern
	// NativeDates writes recognized dates as serial numbers styled with the
	// pattern's number format instead of display strings.
	NativeDates  bool
	ProblemSheet bool
}

// Write saves tables to a new xlsx file at path, one sheet per table in
// order. Normalized columns are given the pattern's date number format.
func Write(path string, tables []*model.NormalizedTable, opts WriteOptions) error {
	if len(tables) == 0 {
		return fmt.Errorf("write workbook: no sheets")
	}
	f := excelize.NewFile()
	defer f.Close()

	pattern := opts.Pattern
	if !pattern.Valid() {
		pattern = model.DefaultPattern
	}
	numFmt := pattern.NumFmt()
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	used := make(map[string]bool, len(tables)+1)
	for i, t := range tables {
		name := uniqueSheetName(t.Sheet, used)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeTable(f, name, t, dateStyle, opts.NativeDates); err != nil {
			return err
		}
	}

	if opts.ProblemSheet {
		var problems []model.ProblemRow
		for _, t := range tables {
			problems = append(problems, t.AllProblemRows()...)
		}
		name := uniqueSheetName(ProblemSheetName, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeProblems(f, name, problems); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t *model.NormalizedTable, dateStyle int, native bool) error {
	if err := setRow(f, sheet, 1, stringsToAny(t.Header)); err != nil {
		return err
	}

	normalized := make(map[int]string, len(t.Columns))
	for _, c := range t.Columns {
		for i, h := range t.Header {
			if h == c {
				normalized[i] = c
				break
			}
		}
	}

	for r, row := range t.Rows {
		values := make([]any, len(t.Header))
		for c := range values {
			values[c] = cellToAny(row.Cell(c))
			if col, ok := normalized[c]; ok && native {
				if o, ok := t.Outcome(col, row.Index); ok && o.Succeeded() {
					values[c] = normalize.ToSerial(*o.Date)
				}
			}
		}
		if err := setRow(f, sheet, r+2, values); err != nil {
			return err
		}
	}

	if len(t.Rows) == 0 {
		return nil
	}
	last := len(t.Rows) + 1
	for c := range normalized {
		top, err := excelize.CoordinatesToCellName(c+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(c+1, last)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, top, bottom, dateStyle); err != nil {
			return fmt.Errorf("style column %q: %w", normalized[c], err)
		}
	}
	return nil
}

func writeProblems(f *excelize.File, sheet string, problems []model.ProblemRow) error {
	header := []any{"Sheet", "Column", "Line", "Value", "Kind"}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, p := range problems {
		row := []any{p.Sheet, p.Column, p.Line, p.RawValue, p.Kind}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, axis, &values); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, axis, err)
	}
	return nil
}

func cellToAny(v model.CellValue) any {
	switch v.Kind {
	case model.KindTemporal:
		return v.Time
	case model.KindText:
		return v.Text
	case model.KindNumeric:
		if v.IsNaN() {
			return nil
		}
		return v.Number
	case model.KindOther:
		return v.Other
	}
	return nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// uniqueSheetName cleans name into a valid Excel sheet name that is not yet
// in used, and records it.
func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	name = truncateRunes(name, maxSheetName)

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
