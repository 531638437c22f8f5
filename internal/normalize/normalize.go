// Package normalize turns raw spreadsheet cells into calendar dates.
//
// Normalize tries, in order: temporal passthrough, the explicit layouts in
// dateLayouts, Italian name translation plus free-form parsing, and for
// numbers the spreadsheet serial then Unix-seconds readings. The first
// strategy that yields a date wins. Nothing in this package does I/O or
// keeps state between calls.
package normalize

import (
	"strings"
	"time"

	"github.com/gyeh/datenorm/internal/model"
)

// CanonicalLayout renders the internal DD-MM-YYYY form kept on every
// successful outcome.
const CanonicalLayout = "02-01-2006"

// Normalize resolves v to a calendar date and renders it with pattern p.
// Unrecognized values are reported as a failed outcome whose Display is the
// value's original string form.
func Normalize(v model.CellValue, p model.DatePattern) model.ParseOutcome {
	switch v.Kind {
	case model.KindTemporal:
		out := success(v.Time, p, model.StrategyTemporal, "")
		out.Instant = v.Time
		return out

	case model.KindText:
		s := strings.TrimSpace(v.Text)
		if t, layout, ok := matchLayout(s); ok {
			return success(t, p, model.StrategyPattern, layout)
		}
		if t, strategy, layout, ok := parseLocale(s); ok {
			return success(t, p, strategy, layout)
		}
		return model.ParseOutcome{Display: s}

	case model.KindNumeric:
		if v.IsNaN() {
			return failure(v)
		}
		if t, ok := fromSerial(v.Number); ok {
			return success(t, p, model.StrategySerial, "")
		}
		if t, ok := fromUnix(v.Number); ok {
			return success(t, p, model.StrategyUnix, "")
		}
		return failure(v)

	case model.KindMissing, model.KindOther:
		return failure(v)
	}
	return failure(v)
}

// parseLocale runs the free-form step. A translated string is tried first,
// against the explicit layouts, then dateparse, then the explicit layouts
// with any trailing time of day removed; the untranslated original goes
// through the same last two steps as the fallback.
func parseLocale(s string) (time.Time, model.Strategy, string, bool) {
	if translated, changed := TranslateItalian(s); changed {
		if t, layout, ok := matchLayout(translated); ok {
			return t, model.StrategyLocale, layout, true
		}
		if t, ok := parseFreeform(translated); ok {
			return t, model.StrategyLocale, "", true
		}
		if t, layout, ok := matchLayoutIgnoringClock(translated); ok {
			return t, model.StrategyLocale, layout, true
		}
	}
	if t, ok := parseFreeform(s); ok {
		return t, model.StrategyFreeform, "", true
	}
	if t, layout, ok := matchLayoutIgnoringClock(s); ok {
		return t, model.StrategyFreeform, layout, true
	}
	return time.Time{}, model.StrategyNone, "", false
}

func success(t time.Time, p model.DatePattern, strategy model.Strategy, layout string) model.ParseOutcome {
	d := dateOnly(t)
	return model.ParseOutcome{
		Date:      &d,
		Display:   d.Format(p.Layout()),
		Canonical: d.Format(CanonicalLayout),
		Strategy:  strategy,
		Layout:    layout,
	}
}

func failure(v model.CellValue) model.ParseOutcome {
	return model.ParseOutcome{Display: v.String()}
}
