package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gyeh/datenorm/internal/model"
)

func TestPadUsesDisplayWidth(t *testing.T) {
	got := pad("Città", 8)
	if got != "Città   " {
		t.Errorf("pad = %q", got)
	}
	if got := pad("日付", 6); got != "日付  " {
		t.Errorf("pad wide = %q", got)
	}
}

func TestPrintProblemsLimitAndEmpty(t *testing.T) {
	rows := []model.ProblemRow{
		{Sheet: "Orders", Column: "Date", Line: 2, RawValue: "", Kind: model.KindMissing.String()},
		{Sheet: "Orders", Column: "Date", Line: 5, RawValue: "soon", Kind: model.KindText.String()},
		{Sheet: "Orders", Column: "Date", Line: 9, RawValue: "later", Kind: model.KindText.String()},
	}
	var buf bytes.Buffer
	printProblems(&buf, rows, 2)
	out := buf.String()

	if !strings.Contains(out, "(empty)") {
		t.Errorf("missing value not shown as (empty):\n%s", out)
	}
	if !strings.Contains(out, "soon") {
		t.Errorf("second row missing:\n%s", out)
	}
	if strings.Contains(out, "later") {
		t.Errorf("row past limit printed:\n%s", out)
	}
	if !strings.Contains(out, "... 1 more") {
		t.Errorf("overflow line missing:\n%s", out)
	}
}
