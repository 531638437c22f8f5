package model

// Row is one data row of a sheet. Index is the row's zero-based position in
// the source data (header excluded) and survives reordering.
type Row struct {
	Index int
	Cells []CellValue
}

// Cell returns the cell at column position i, or Missing when the row is short.
func (r Row) Cell(i int) CellValue {
	if i < 0 || i >= len(r.Cells) {
		return Missing()
	}
	return r.Cells[i]
}

// Table is a single sheet of raw input: a header row plus data rows.
type Table struct {
	Name   string
	Header []string
	Rows   []Row
}

// ColumnIndex returns the position of column name in the header.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// NewTable builds a Table from a header and cell rows, assigning each row its
// position as Index.
func NewTable(name string, header []string, rows [][]CellValue) *Table {
	t := &Table{Name: name, Header: header, Rows: make([]Row, len(rows))}
	for i, cells := range rows {
		t.Rows[i] = Row{Index: i, Cells: cells}
	}
	return t
}

// NormalizedTable is the product of processing one sheet. Rows hold the
// cleaned output (normalized columns replaced by display strings, possibly
// reordered). Outcomes keeps, per normalized column, one ParseOutcome per
// source row indexed by Row.Index.
type NormalizedTable struct {
	Sheet    string
	Header   []string
	Rows     []Row
	Columns  []string // normalized columns, in processing order
	Outcomes map[string][]ParseOutcome
	Raw      map[string][]CellValue // source cells per normalized column, by Row.Index
	Stats    []ColumnStats
	Warnings []string
	Sorted   bool
	SortedBy string
}

// Outcome returns the parse outcome of column for the source row index.
func (t *NormalizedTable) Outcome(column string, index int) (ParseOutcome, bool) {
	outs, ok := t.Outcomes[column]
	if !ok || index < 0 || index >= len(outs) {
		return ParseOutcome{}, false
	}
	return outs[index], true
}

// ProblemRows lists the rows of column whose value could not be normalized,
// in source row order.
func (t *NormalizedTable) ProblemRows(column string) []ProblemRow {
	outs, ok := t.Outcomes[column]
	if !ok {
		return nil
	}
	raw := t.Raw[column]
	var problems []ProblemRow
	for i, o := range outs {
		if o.Succeeded() {
			continue
		}
		v := Missing()
		if i < len(raw) {
			v = raw[i]
		}
		problems = append(problems, ProblemRow{
			Sheet:    t.Sheet,
			Column:   column,
			Row:      int64(i),
			Line:     int64(i) + 2,
			RawValue: v.String(),
			Kind:     v.Kind.String(),
		})
	}
	return problems
}

// AllProblemRows concatenates ProblemRows for every normalized column.
func (t *NormalizedTable) AllProblemRows() []ProblemRow {
	var all []ProblemRow
	for _, c := range t.Columns {
		all = append(all, t.ProblemRows(c)...)
	}
	return all
}
