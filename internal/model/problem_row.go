package model

// ProblemRow is a cell that could not be normalized, addressed by its
// position in the source sheet. It doubles as the Parquet export schema.
type ProblemRow struct {
	Sheet    string `parquet:"sheet"`
	Column   string `parquet:"column"`
	Row      int64  `parquet:"row"`  // zero-based data row index
	Line     int64  `parquet:"line"` // spreadsheet row number, header is line 1
	RawValue string `parquet:"raw_value"`
	Kind     string `parquet:"kind"`
}

// ProblemColumns returns the Postgres column names used when COPYing
// ProblemRows into the audit table, in CopyValues order.
func ProblemColumns() []string {
	return []string{
		"run_id",
		"sheet_name",
		"column_name",
		"row_index",
		"line_number",
		"raw_value",
		"value_kind",
	}
}

// CopyValues returns the row's values in ProblemColumns order.
func (p *ProblemRow) CopyValues(runID any) []any {
	return []any{
		runID,
		p.Sheet,
		p.Column,
		p.Row,
		p.Line,
		p.RawValue,
		p.Kind,
	}
}
