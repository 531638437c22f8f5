package model

import "time"

// SheetError records a sheet that was skipped during a multi-sheet run.
type SheetError struct {
	Sheet  string
	Reason string
}

// RunSummary captures metrics from a single normalization run.
type RunSummary struct {
	RunID          string
	InputPath      string
	InputSHA256    string
	OutputPath     string
	ProblemsPath   string
	Pattern        DatePattern
	SheetsRead     int
	SheetsDone     int
	Stats          []ColumnStats
	Converted      int
	Total          int
	Percent        float64
	ProblemRows    int64
	Problems       []ProblemRow
	Warnings       []string
	SheetErrors    []SheetError
	DurationRead   time.Duration
	DurationNorm   time.Duration
	DurationWrite  time.Duration
	DurationExport time.Duration
	DurationAudit  time.Duration
	DurationTotal  time.Duration
}

// Grade buckets the aggregate success rate: "complete" at 100%, "partial"
// from 80%, "poor" below.
func (s *RunSummary) Grade() string {
	switch {
	case s.Total > 0 && s.Converted == s.Total:
		return "complete"
	case s.Percent >= 80:
		return "partial"
	}
	return "poor"
}
