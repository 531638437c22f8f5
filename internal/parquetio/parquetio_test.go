package parquetio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/datenorm/internal/model"
)

func TestWriteAndReadProblemRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.parquet")
	rows := []model.ProblemRow{
		{Sheet: "Orders", Column: "Date", Row: 1, Line: 3, RawValue: "not-a-date", Kind: "text"},
		{Sheet: "Orders", Column: "Date", Row: 4, Line: 6, RawValue: "", Kind: "missing"},
		{Sheet: "Returns", Column: "Shipped", Row: 0, Line: 2, RawValue: "true", Kind: "other"},
	}
	if err := WriteProblemRows(path, rows); err != nil {
		t.Fatalf("WriteProblemRows: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if r.NumRows() != int64(len(rows)) {
		t.Fatalf("NumRows = %d, want %d", r.NumRows(), len(rows))
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteProblemRows(path, nil); err != nil {
		t.Fatalf("WriteProblemRows: %v", err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	if r.NumRows() != 0 {
		t.Errorf("NumRows = %d, want 0", r.NumRows())
	}
}

type otherRow struct {
	Description string `parquet:"description"`
	Sheet       string `parquet:"sheet"`
}

func TestOpenRejectsForeignSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewGenericWriter[otherRow](f)
	if _, err := w.Write([]otherRow{{Description: "x", Sheet: "s"}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestValidateSchema(t *testing.T) {
	if err := ValidateSchema(parquet.SchemaOf(model.ProblemRow{})); err != nil {
		t.Errorf("ProblemRow schema rejected: %v", err)
	}
	if err := ValidateSchema(parquet.SchemaOf(otherRow{})); err == nil {
		t.Error("expected error for schema without row/column/raw_value")
	}
}
