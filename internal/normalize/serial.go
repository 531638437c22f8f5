package normalize

import (
	"math"
	"time"
)

// excelEpoch is day 0 of the 1900 spreadsheet date system. Starting at
// 1899-12-30 rather than 12-31 absorbs the nonexistent 1900-02-29 that the
// format counts.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const (
	// maxSerialDays bounds the day offset before date arithmetic; anything
	// beyond it lands outside years 1..9999 anyway.
	maxSerialDays = 4_000_000
	// maxUnixSeconds is 9999-12-31T23:59:59Z.
	maxUnixSeconds = 253402300799
	// minUnixSeconds is 0001-01-01T00:00:00Z.
	minUnixSeconds = -62135596800

	secondsPerDay = 86400
)

// fromSerial interprets f as a spreadsheet serial day number. The
// fractional part (time of day) is dropped. The result must fall in years
// 1..9999.
func fromSerial(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	days := math.Trunc(f)
	if math.Abs(days) > maxSerialDays {
		return time.Time{}, false
	}
	t := excelEpoch.AddDate(0, 0, int(days))
	if !inCalendarRange(t) {
		return time.Time{}, false
	}
	return t, true
}

// fromUnix interprets f as seconds since the Unix epoch, in UTC.
func fromUnix(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	sec := math.Trunc(f)
	if sec > maxUnixSeconds || sec < minUnixSeconds {
		return time.Time{}, false
	}
	return time.Unix(int64(sec), 0).UTC(), true
}

// ToSerial converts a calendar date back to its spreadsheet serial number.
func ToSerial(t time.Time) int {
	return int((dateOnly(t).Unix() - excelEpoch.Unix()) / secondsPerDay)
}

func inCalendarRange(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}
