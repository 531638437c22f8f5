package normalize

import (
	"regexp"
	"strings"
	"time"
)

// trailingClock matches a time of day at the end of a date string:
// hh:mm, hh:mm:ss, optional fraction and am/pm marker.
var trailingClock = regexp.MustCompile(`(?i)^(.*\S)[\sT]+\d{1,2}:\d{2}(?::\d{2}(?:[.,]\d+)?)?(?:\s*[ap]\.?m\.?)?$`)

// Explicit calendar layouts, tried in order; the first match wins.
// Day-first layouts precede their month-first twins, so an ambiguous value
// such as 03/04/2024 is read as 3 April. Single-digit day and month fields
// are accepted.
var dateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
	"2006/1/2",
	"2.1.2006",
	"1.2.2006",
	"2006.1.2",
	"20060102",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2-Jan-2006",
	"2-January-2006",
	"Mon, 2 Jan 2006",
	"Monday, 2 Jan 2006",
	"Monday, 2 January 2006",
	"Monday 2 January 2006",
	"Mon, 2 January 2006",
	"Mon 2 Jan 2006",
	"Mon 2 January 2006",
	"Monday 2 Jan 2006",
}

// Layouts returns a copy of the explicit layouts in priority order.
func Layouts() []string {
	out := make([]string, len(dateLayouts))
	copy(out, dateLayouts)
	return out
}

// matchLayout tries every explicit layout against s and reports the first
// one that parses.
func matchLayout(s string) (time.Time, string, bool) {
	if s == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

// matchLayoutIgnoringClock drops a trailing time of day from s and tries
// the explicit layouts on what remains.
func matchLayoutIgnoringClock(s string) (time.Time, string, bool) {
	m := trailingClock.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, "", false
	}
	return matchLayout(m[1])
}

// ParseDate parses s against the explicit layouts only.
// Returns nil if the input is empty or matches none of them.
func ParseDate(s string) *time.Time {
	t, _, ok := matchLayout(strings.TrimSpace(s))
	if !ok {
		return nil
	}
	return &t
}

// dateOnly drops the time of day, keeping the calendar date as seen in t's
// own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
