package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// CellKind discriminates the variants of a CellValue.
type CellKind int

const (
	KindMissing CellKind = iota
	KindTemporal
	KindText
	KindNumeric
	KindOther
)

func (k CellKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindTemporal:
		return "temporal"
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindOther:
		return "other"
	}
	return fmt.Sprintf("CellKind(%d)", int(k))
}

// CellValue is a single raw spreadsheet cell. Exactly one payload field is
// meaningful, selected by Kind. Values are immutable once constructed.
type CellValue struct {
	Kind   CellKind
	Time   time.Time
	Text   string
	Number float64
	Other  any
}

func Missing() CellValue { return CellValue{Kind: KindMissing} }
func Temporal(t time.Time) CellValue { return CellValue{Kind: KindTemporal, Time: t} }
func Text(s string) CellValue { return CellValue{Kind: KindText, Text: s} }
func Numeric(f float64) CellValue { return CellValue{Kind: KindNumeric, Number: f} }
func Other(v any) CellValue { return CellValue{Kind: KindOther, Other: v} }

// IsNaN reports whether the cell is a numeric NaN, which is treated like a
// missing value everywhere.
func (v CellValue) IsNaN() bool {
	return v.Kind == KindNumeric && math.IsNaN(v.Number)
}

// String returns the value's original string form. It is what a failed
// normalization displays in place of a date.
func (v CellValue) String() string {
	switch v.Kind {
	case KindTemporal:
		if v.Time.Hour() == 0 && v.Time.Minute() == 0 && v.Time.Second() == 0 && v.Time.Nanosecond() == 0 {
			return v.Time.Format("2006-01-02")
		}
		return v.Time.Format("2006-01-02 15:04:05")
	case KindText:
		return v.Text
	case KindNumeric:
		if math.IsNaN(v.Number) {
			return ""
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindOther:
		if v.Other == nil {
			return ""
		}
		return fmt.Sprint(v.Other)
	}
	return ""
}
