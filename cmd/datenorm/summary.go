package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/gyeh/datenorm/internal/model"
)

// maxListedProblems caps the problem rows printed by plan.
const maxListedProblems = 50

func printSummary(w io.Writer, s *model.RunSummary, withProblems bool) {
	dateFmt := s.Pattern.Layout()

	fmt.Fprintln(w, "=== datenorm ===")
	fmt.Fprintf(w, "File:       %s\n", s.InputPath)
	fmt.Fprintf(w, "SHA-256:    %s\n", s.InputSHA256)
	fmt.Fprintf(w, "Run ID:     %s\n", s.RunID)
	fmt.Fprintf(w, "Pattern:    %s\n", s.Pattern)
	fmt.Fprintf(w, "Sheets:     %d of %d processed\n", s.SheetsDone, s.SheetsRead)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Columns:")
	for _, st := range s.Stats {
		fmt.Fprintf(w, "  %s %6d / %-6d %6.1f%%", pad(st.Sheet+"/"+st.Column, 30), st.Converted, st.Total, st.Percent)
		if st.Earliest != nil && st.Latest != nil {
			days := int(st.Latest.Sub(*st.Earliest).Hours() / 24)
			fmt.Fprintf(w, "  %s → %s (%d days)", st.Earliest.Format(dateFmt), st.Latest.Format(dateFmt), days)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nOverall:    %d / %d converted (%.1f%%, %s)\n", s.Converted, s.Total, s.Percent, s.Grade())

	for _, msg := range s.Warnings {
		fmt.Fprintf(w, "Warning:    %s\n", msg)
	}
	for _, se := range s.SheetErrors {
		fmt.Fprintf(w, "Skipped:    %s: %s\n", se.Sheet, se.Reason)
	}

	if !withProblems || len(s.Problems) == 0 {
		return
	}
	fmt.Fprintf(w, "\nProblem rows (%d):\n", len(s.Problems))
	printProblems(w, s.Problems, maxListedProblems)
}

func printProblems(w io.Writer, rows []model.ProblemRow, limit int) {
	fmt.Fprintf(w, "  %-20s %-20s %6s  %s\n", "SHEET", "COLUMN", "LINE", "VALUE")
	for i, p := range rows {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "  ... %d more\n", len(rows)-limit)
			break
		}
		value := p.RawValue
		if p.Kind == model.KindMissing.String() {
			value = "(empty)"
		}
		fmt.Fprintf(w, "  %s %s %6d  %s\n", pad(p.Sheet, 20), pad(p.Column, 20), p.Line, value)
	}
}

// pad left-aligns s in a field of width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
