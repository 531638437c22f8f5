package workbook

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gyeh/datenorm/internal/model"
)

// buildFixture writes a one-sheet workbook mixing every cell kind the reader
// distinguishes.
func buildFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Orders"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	set := func(cell string, v any) {
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set %s: %v", cell, err)
		}
	}
	set("A1", "Date")
	set("B1", "")
	set("C1", "Date")
	set("A2", "15/03/2024")
	set("A3", 45000)
	set("A4", true)
	set("A5", 45366)
	// A6 left blank
	set("B6", "x")
	set("C7", "tail")

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		t.Fatalf("new style: %v", err)
	}
	if err := f.SetCellStyle(sheet, "A5", "A5", dateStyle); err != nil {
		t.Fatalf("set style: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestReadSheetCellKinds(t *testing.T) {
	wb, err := Open(buildFixture(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	names := wb.SheetNames()
	if len(names) != 1 || names[0] != "Orders" {
		t.Fatalf("SheetNames = %v", names)
	}

	tbl, err := wb.ReadSheet("Orders")
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}

	wantHeader := []string{"Date", "Unnamed: 1", "Date.1"}
	if len(tbl.Header) != len(wantHeader) {
		t.Fatalf("header = %v, want %v", tbl.Header, wantHeader)
	}
	for i := range wantHeader {
		if tbl.Header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, tbl.Header[i], wantHeader[i])
		}
	}
	if len(tbl.Rows) != 6 {
		t.Fatalf("rows = %d, want 6", len(tbl.Rows))
	}

	tests := []struct {
		row  int
		kind model.CellKind
	}{
		{0, model.KindText},
		{1, model.KindNumeric},
		{2, model.KindOther},
		{3, model.KindTemporal},
		{4, model.KindMissing},
		{5, model.KindMissing},
	}
	for _, tt := range tests {
		got := tbl.Rows[tt.row].Cell(0)
		if got.Kind != tt.kind {
			t.Errorf("row %d kind = %v, want %v", tt.row, got.Kind, tt.kind)
		}
	}

	if v := tbl.Rows[0].Cell(0); v.Text != "15/03/2024" {
		t.Errorf("text = %q", v.Text)
	}
	if v := tbl.Rows[1].Cell(0); v.Number != 45000 {
		t.Errorf("number = %v", v.Number)
	}
	if v := tbl.Rows[2].Cell(0); v.Other != true {
		t.Errorf("bool = %v", v.Other)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if v := tbl.Rows[3].Cell(0); !v.Time.Equal(want) {
		t.Errorf("temporal = %v, want %v", v.Time, want)
	}
	if v := tbl.Rows[5].Cell(2); v.Kind != model.KindText || v.Text != "tail" {
		t.Errorf("padded row cell = %+v", v)
	}
	if tbl.Rows[4].Index != 4 {
		t.Errorf("row index = %d", tbl.Rows[4].Index)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error opening missing workbook")
	}
}

func TestReadSheetUnknown(t *testing.T) {
	wb, err := Open(buildFixture(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()
	if _, err := wb.ReadSheet("Missing"); err == nil {
		t.Fatal("expected error for unknown sheet")
	}
}

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := "Date,Amount\n15/03/2024,10\n,20\n2024-01-15\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsCSV(path) {
		t.Fatal("IsCSV = false")
	}

	tbl, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Name != "orders" {
		t.Errorf("name = %q", tbl.Name)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if v := tbl.Rows[0].Cell(0); v.Kind != model.KindText || v.Text != "15/03/2024" {
		t.Errorf("row 0 = %+v", v)
	}
	if v := tbl.Rows[1].Cell(0); v.Kind != model.KindMissing {
		t.Errorf("row 1 = %+v, want missing", v)
	}
	if v := tbl.Rows[2].Cell(1); v.Kind != model.KindMissing {
		t.Errorf("short row = %+v, want missing", v)
	}
	if v := tbl.Rows[0].Cell(1); v.Kind != model.KindNumeric || v.Number != 10 {
		t.Errorf("amount = %+v, want numeric 10", v)
	}
}

func TestCSVCellTyping(t *testing.T) {
	tests := []struct {
		in   string
		kind model.CellKind
	}{
		{"45000", model.KindNumeric},
		{" 45000.5 ", model.KindNumeric},
		{"1.7e9", model.KindNumeric},
		{"-3", model.KindNumeric},
		{"20240115", model.KindText},
		{"03.02.2024", model.KindText},
		{"nan", model.KindText},
		{"Inf", model.KindText},
		{"0x1F", model.KindText},
		{"15 marzo 2024", model.KindText},
	}
	for _, tt := range tests {
		if got := csvCell(tt.in); got.Kind != tt.kind {
			t.Errorf("csvCell(%q) kind = %v, want %v", tt.in, got.Kind, tt.kind)
		}
	}
}

func TestIsCSV(t *testing.T) {
	for path, want := range map[string]bool{
		"a.csv":  true,
		"A.CSV":  true,
		"a.xlsx": false,
		"csv":    false,
	} {
		if got := IsCSV(path); got != want {
			t.Errorf("IsCSV(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	for _, id := range []int{14, 22, 27, 45, 58} {
		if !isBuiltInDateID(id) {
			t.Errorf("isBuiltInDateID(%d) = false", id)
		}
	}
	for _, id := range []int{0, 1, 2, 13, 23, 37, 49, 59} {
		if isBuiltInDateID(id) {
			t.Errorf("isBuiltInDateID(%d) = true", id)
		}
	}

	for format, want := range map[string]bool{
		"dd-mm-yyyy": true,
		"yyyy/mm/dd": true,
		"hh:mm:ss":   true,
		"General":    false,
		"0.00":       false,
		"#,##0":      false,
		`"day" 0`:    false,
		"":           false,
	} {
		if got := isDateFormatString(format); got != want {
			t.Errorf("isDateFormatString(%q) = %v, want %v", format, got, want)
		}
	}
}
