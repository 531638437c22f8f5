// Package workbook reads spreadsheets into model.Tables and writes
// normalized tables back out as xlsx.
package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/normalize"
)

// Workbook wraps an excelize file for reading typed sheet data.
type Workbook struct {
	path       string
	file       *excelize.File
	date1904   bool
	dateStyles map[int]bool
}

// Open opens an xlsx workbook.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	w := &Workbook{path: path, file: f, dateStyles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}
	return w, nil
}

// SheetNames returns the workbook's sheet names in tab order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// ReadSheet reads sheet name with its first row as the header. Cells are
// typed: strings become Text, numbers Numeric, numbers carrying a date
// number format Temporal, booleans and error values Other, and blanks
// Missing.
func (w *Workbook) ReadSheet(name string) (*model.Table, error) {
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return &model.Table{Name: name}, nil
	}

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	header := buildHeader(rows[0], width)

	data := make([][]model.CellValue, 0, len(rows)-1)
	for r := 1; r < len(rows); r++ {
		cells := make([]model.CellValue, width)
		for c := 0; c < width; c++ {
			raw := ""
			if c < len(rows[r]) {
				raw = rows[r][c]
			}
			cells[c] = w.cellValue(name, c+1, r+1, raw)
		}
		data = append(data, cells)
	}
	return model.NewTable(name, header, data), nil
}

func (w *Workbook) cellValue(sheet string, col, row int, raw string) model.CellValue {
	if raw == "" {
		return model.Missing()
	}
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return model.Text(raw)
	}
	typ, err := w.file.GetCellType(sheet, axis)
	if err != nil {
		return model.Text(raw)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return model.Text(raw)
	case excelize.CellTypeBool:
		return model.Other(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeError:
		return model.Other(raw)
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return model.Temporal(t)
			}
		}
		return model.Text(raw)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Text(raw)
	}
	if w.isDateStyled(sheet, axis) {
		if t, err := excelize.ExcelDateToTime(f, w.date1904); err == nil {
			return model.Temporal(t)
		}
	}
	return model.Numeric(f)
}

func (w *Workbook) isDateStyled(sheet, axis string) bool {
	id, err := w.file.GetCellStyle(sheet, axis)
	if err != nil || id == 0 {
		return false
	}
	if isDate, ok := w.dateStyles[id]; ok {
		return isDate
	}
	isDate := false
	if style, err := w.file.GetStyle(id); err == nil {
		isDate = isBuiltInDateID(style.NumFmt) ||
			(style.CustomNumFmt != nil && isDateFormatString(*style.CustomNumFmt))
	}
	w.dateStyles[id] = isDate
	return isDate
}

// buildHeader names every column of a sheet that is width cells wide.
// Blank titles become "Unnamed: N" and repeated titles get a ".N" suffix.
func buildHeader(first []string, width int) []string {
	header := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(first) {
			name = strings.TrimSpace(first[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		header[i] = name
	}
	return header
}

// IsCSV reports whether path names a CSV file.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// ReadCSV reads a CSV file as a single table named after the file. Fields
// that are plain decimal numbers become Numeric, so serials and Unix
// timestamps reach the numeric strategies; everything else is Text.
func ReadCSV(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if len(records) == 0 {
		return &model.Table{Name: name}, nil
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	header := buildHeader(records[0], width)
	data := make([][]model.CellValue, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make([]model.CellValue, width)
		for c := range cells {
			if c < len(rec) && rec[c] != "" {
				cells[c] = csvCell(rec[c])
			} else {
				cells[c] = model.Missing()
			}
		}
		data = append(data, cells)
	}
	return model.NewTable(name, header, data), nil
}

var csvNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// csvCell types one CSV field. Digit strings an explicit date layout reads
// (20240115) stay Text.
func csvCell(field string) model.CellValue {
	s := strings.TrimSpace(field)
	if !csvNumber.MatchString(s) || normalize.ParseDate(s) != nil {
		return model.Text(field)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.Text(field)
	}
	return model.Numeric(f)
}
