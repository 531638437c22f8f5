package sheet

import (
	"errors"
	"testing"

	"github.com/gyeh/datenorm/internal/model"
)

func TestProcessWorkbook_AggregateRate(t *testing.T) {
	jan := column("Jan", model.Text("2024-01-01"), model.Text("bad"), model.Text("2024-01-03"))
	feb := column("Feb", model.Text("2024-02-01"))
	other := model.NewTable("Notes", []string{"Text"}, [][]model.CellValue{{model.Text("hello")}})

	res, err := ProcessWorkbook([]*model.Table{jan, other, feb}, Options{Columns: []string{"Data"}, Sort: true}, nop)
	if err != nil {
		t.Fatalf("ProcessWorkbook: %v", err)
	}
	if len(res.Sheets) != 2 {
		t.Fatalf("sheets processed = %d, want 2", len(res.Sheets))
	}
	if len(res.Errors) != 1 || res.Errors[0].Sheet != "Notes" {
		t.Errorf("errors = %+v", res.Errors)
	}
	if res.Converted != 3 || res.Total != 4 {
		t.Errorf("aggregate = %d/%d, want 3/4", res.Converted, res.Total)
	}
	if res.Percent() != 75.0 {
		t.Errorf("percent = %v", res.Percent())
	}
	stats := res.Stats()
	if len(stats) != 2 || stats[0].Sheet != "Jan" || stats[1].Sheet != "Feb" {
		t.Errorf("stats = %+v", stats)
	}
	if probs := res.ProblemRows(); len(probs) != 1 || probs[0].Sheet != "Jan" {
		t.Errorf("problem rows = %+v", probs)
	}
}

func TestProcessWorkbook_PartialColumnsAndSortFallback(t *testing.T) {
	a := model.NewTable("A", []string{"Due", "Paid"}, [][]model.CellValue{
		{model.Text("2024-05-01"), model.Text("2024-01-01")},
		{model.Text("2024-04-01"), model.Text("2024-02-01")},
	})
	b := model.NewTable("B", []string{"Due"}, [][]model.CellValue{
		{model.Text("2024-03-01")},
		{model.Text("2024-02-01")},
	})
	res, err := ProcessWorkbook([]*model.Table{a, b}, Options{Columns: []string{"Due", "Paid"}, SortColumn: "Paid", Sort: true}, nop)
	if err != nil {
		t.Fatalf("ProcessWorkbook: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if res.Sheets[0].SortedBy != "Paid" {
		t.Errorf("sheet A sorted by %q", res.Sheets[0].SortedBy)
	}
	if res.Sheets[1].SortedBy != "Due" {
		t.Errorf("sheet B sorted by %q, want fallback Due", res.Sheets[1].SortedBy)
	}
	if got := res.Sheets[1].Rows[0].Cell(0).String(); got != "01-02-2024" {
		t.Errorf("sheet B first row = %q", got)
	}
}

func TestProcessWorkbook_FailureIsolation(t *testing.T) {
	broken := model.NewTable("Broken", []string{"Data"}, [][]model.CellValue{{model.Text("a"), model.Text("b")}})
	good := column("Good", model.Text("2024-01-01"))

	res, err := ProcessWorkbook([]*model.Table{broken, nil, good}, Options{Columns: []string{"Data"}}, nop)
	if err != nil {
		t.Fatalf("ProcessWorkbook: %v", err)
	}
	if len(res.Sheets) != 1 || res.Sheets[0].Sheet != "Good" {
		t.Errorf("sheets = %+v", res.Sheets)
	}
	if len(res.Errors) != 2 {
		t.Errorf("errors = %+v", res.Errors)
	}
}

func TestProcessWorkbook_Fatal(t *testing.T) {
	if _, err := ProcessWorkbook(nil, Options{}, nop); !errors.Is(err, ErrNoColumns) {
		t.Errorf("err = %v, want ErrNoColumns", err)
	}
	res, err := ProcessWorkbook([]*model.Table{column("S")}, Options{Columns: []string{"Other"}}, nop)
	if !errors.Is(err, ErrNoSheetProcessed) {
		t.Errorf("err = %v, want ErrNoSheetProcessed", err)
	}
	if res == nil || len(res.Errors) != 1 {
		t.Errorf("result = %+v", res)
	}
}
