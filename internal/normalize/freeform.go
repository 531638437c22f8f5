package normalize

import (
	"time"

	"github.com/araddon/dateparse"
)

// parseFreeform hands s to dateparse with a day-before-month preference.
// Ambiguous values that are invalid day-first (12/25/2023) are retried
// month-first. The accepted grammar is whatever dateparse.ParseIn accepts.
func parseFreeform(s string) (t time.Time, ok bool) {
	if s == "" {
		return time.Time{}, false
	}
	// dateparse panics on a handful of malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			t, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
