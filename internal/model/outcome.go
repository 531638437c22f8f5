package model

import "time"

// Strategy names the resolution step that produced a date.
type Strategy string

const (
	StrategyNone     Strategy = ""
	StrategyTemporal Strategy = "temporal"
	StrategyPattern  Strategy = "pattern"
	StrategyLocale   Strategy = "locale"
	StrategyFreeform Strategy = "freeform"
	StrategySerial   Strategy = "serial"
	StrategyUnix     Strategy = "unix"
)

// ParseOutcome is the result of normalizing one cell.
// Date is non-nil iff the value was recognized; Display is always set.
type ParseOutcome struct {
	Date      *time.Time
	Display   string
	Canonical string // DD-MM-YYYY rendering, empty on failure
	Strategy  Strategy
	Layout    string    // matching layout for pattern/locale strategies
	Instant   time.Time // full timestamp of a Temporal input
}

// Succeeded reports whether a canonical date was produced.
func (o ParseOutcome) Succeeded() bool {
	return o.Date != nil
}

// ColumnStats summarizes the normalization of one column.
type ColumnStats struct {
	Column    string
	Sheet     string
	Converted int
	Total     int
	Percent   float64
	Earliest  *time.Time
	Latest    *time.Time
}

// NewColumnStats computes stats, including the recognized date range, from
// row-aligned outcomes.
func NewColumnStats(column, sheet string, outcomes []ParseOutcome) ColumnStats {
	s := ColumnStats{Column: column, Sheet: sheet, Total: len(outcomes)}
	for _, o := range outcomes {
		if !o.Succeeded() {
			continue
		}
		s.Converted++
		if s.Earliest == nil || o.Date.Before(*s.Earliest) {
			s.Earliest = o.Date
		}
		if s.Latest == nil || o.Date.After(*s.Latest) {
			s.Latest = o.Date
		}
	}
	if s.Total > 0 {
		s.Percent = float64(s.Converted) / float64(s.Total) * 100
	}
	return s
}

// Failed returns the number of values that could not be normalized.
func (s ColumnStats) Failed() int {
	return s.Total - s.Converted
}
