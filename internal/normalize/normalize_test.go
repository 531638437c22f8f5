package normalize

import (
	"math"
	"testing"
	"time"

	"github.com/gyeh/datenorm/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSucceed(t *testing.T, v model.CellValue, want time.Time) model.ParseOutcome {
	t.Helper()
	out := Normalize(v, model.PatternYMD)
	if !out.Succeeded() {
		t.Fatalf("Normalize(%v %q) failed, display=%q", v.Kind, v.String(), out.Display)
	}
	if !out.Date.Equal(want) {
		t.Fatalf("Normalize(%q) = %s, want %s", v.String(), out.Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	return out
}

func TestNormalize_ExplicitPatterns(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15", date(2024, 1, 15)},
		{"25/12/2023", date(2023, 12, 25)},
		{"12/25/2023", date(2023, 12, 25)},
		{"25-12-2023", date(2023, 12, 25)},
		{"12-25-2023", date(2023, 12, 25)},
		{"2023/12/25", date(2023, 12, 25)},
		{"25.12.2023", date(2023, 12, 25)},
		{"12.25.2023", date(2023, 12, 25)},
		{"2023.12.25", date(2023, 12, 25)},
		{"20231225", date(2023, 12, 25)},
		{"25 Dec 2023", date(2023, 12, 25)},
		{"25 December 2023", date(2023, 12, 25)},
		{"Dec 25, 2023", date(2023, 12, 25)},
		{"December 25, 2023", date(2023, 12, 25)},
		{"25-Dec-2023", date(2023, 12, 25)},
		{"25-December-2023", date(2023, 12, 25)},
		{"Mon, 25 Dec 2023", date(2023, 12, 25)},
		{"Monday, 25 Dec 2023", date(2023, 12, 25)},
		{"Monday, 25 December 2023", date(2023, 12, 25)},
		{"Monday 25 December 2023", date(2023, 12, 25)},
		{"Mon 25 Dec 2023", date(2023, 12, 25)},
		{"  2024-01-15  ", date(2024, 1, 15)},
		{"5/3/2024", date(2024, 3, 5)},
		{"29/02/2024", date(2024, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := mustSucceed(t, model.Text(tt.in), tt.want)
			if out.Strategy != model.StrategyPattern {
				t.Errorf("strategy = %q, want %q", out.Strategy, model.StrategyPattern)
			}
		})
	}
}

func TestNormalize_DayFirstTieBreak(t *testing.T) {
	for _, in := range []string{"03/04/2024", "03-04-2024", "03.04.2024"} {
		out := mustSucceed(t, model.Text(in), date(2024, 4, 3))
		if out.Display != "2024-04-03" {
			t.Errorf("%s: display = %q", in, out.Display)
		}
	}
}

func TestNormalize_ItalianNames(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"giovedì 12 giugno 2025", date(2025, 6, 12)},
		{"Giovedi 12 Giugno 2025", date(2025, 6, 12)},
		{"15 marzo 2024", date(2024, 3, 15)},
		{"1 GENNAIO 2020", date(2020, 1, 1)},
		{"3 dic 2021", date(2021, 12, 3)},
		{"sabato,  7 settembre 2024", date(2024, 9, 7)},
		{"15 marzo 2024 10:30", date(2024, 3, 15)},
		{"venerdì 15 marzo 2024 18:05:59", date(2024, 3, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := mustSucceed(t, model.Text(tt.in), tt.want)
			if out.Strategy != model.StrategyLocale {
				t.Errorf("strategy = %q, want %q", out.Strategy, model.StrategyLocale)
			}
		})
	}
}

func TestNormalize_Freeform(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-15T10:30:00Z", date(2024, 1, 15)},
		{"15 March 2024 10:30", date(2024, 3, 15)},
		{"15-03-2024 10:30:00", date(2024, 3, 15)},
		{"Friday, 15 March 2024 10:30", date(2024, 3, 15)},
		{"15 Mar 2024 10:30", date(2024, 3, 15)},
		{"15.03.2024 7:15 pm", date(2024, 3, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := mustSucceed(t, model.Text(tt.in), tt.want)
			if out.Strategy != model.StrategyFreeform {
				t.Errorf("strategy = %q, want %q", out.Strategy, model.StrategyFreeform)
			}
		})
	}
}

func TestNormalize_Temporal(t *testing.T) {
	in := time.Date(2022, 7, 4, 18, 45, 12, 0, time.UTC)
	out := mustSucceed(t, model.Temporal(in), date(2022, 7, 4))
	if out.Strategy != model.StrategyTemporal {
		t.Errorf("strategy = %q", out.Strategy)
	}
	if !out.Instant.Equal(in) {
		t.Errorf("instant = %v, want %v", out.Instant, in)
	}

	// date portion is taken in the value's own location
	rome := time.FixedZone("CET", 3600)
	mustSucceed(t, model.Temporal(time.Date(2022, 7, 4, 0, 30, 0, 0, rome)), date(2022, 7, 4))
}

func TestNormalize_SerialAndUnix(t *testing.T) {
	out := mustSucceed(t, model.Numeric(45000), date(2023, 3, 15))
	if out.Strategy != model.StrategySerial {
		t.Errorf("strategy = %q, want serial", out.Strategy)
	}
	mustSucceed(t, model.Numeric(0), date(1899, 12, 30))
	mustSucceed(t, model.Numeric(45000.75), date(2023, 3, 15))

	out = mustSucceed(t, model.Numeric(1e9), date(2001, 9, 9))
	if out.Strategy != model.StrategyUnix {
		t.Errorf("strategy = %q, want unix", out.Strategy)
	}
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name    string
		in      model.CellValue
		display string
	}{
		{"nan", model.Numeric(math.NaN()), ""},
		{"inf", model.Numeric(math.Inf(1)), "+Inf"},
		{"huge", model.Numeric(1e20), "100000000000000000000"},
		{"missing", model.Missing(), ""},
		{"other", model.Other(true), "true"},
		{"empty", model.Text(""), ""},
		{"whitespace", model.Text("   \t "), ""},
		{"garbage", model.Text("not-a-date"), "not-a-date"},
		{"invalid day", model.Text("31/02/2024"), "31/02/2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.in, model.PatternDMYDash)
			if out.Succeeded() {
				t.Fatalf("expected failure, got %v", out.Date)
			}
			if out.Date != nil || out.Canonical != "" {
				t.Errorf("failed outcome carries a date: %+v", out)
			}
			if out.Display != tt.display {
				t.Errorf("display = %q, want %q", out.Display, tt.display)
			}
		})
	}
}

func TestNormalize_DisplayPatterns(t *testing.T) {
	want := map[model.DatePattern]string{
		model.PatternDMYDash:  "05-03-2024",
		model.PatternDMYSlash: "05/03/2024",
		model.PatternYMD:      "2024-03-05",
	}
	for p, display := range want {
		out := Normalize(model.Text("2024-03-05"), p)
		if out.Display != display {
			t.Errorf("%s: display = %q, want %q", p, out.Display, display)
		}
		if out.Canonical != "05-03-2024" {
			t.Errorf("%s: canonical = %q", p, out.Canonical)
		}
	}
}

// Formatting a date with any output pattern and normalizing the result must
// give back the same date.
func TestNormalize_RoundTrip(t *testing.T) {
	dates := []time.Time{
		date(2024, 1, 1), date(2024, 4, 3), date(2023, 12, 31),
		date(1999, 2, 28), date(2024, 2, 29), date(2030, 11, 9),
	}
	for _, pi := range model.AllPatterns {
		for _, d := range dates {
			s := d.Format(pi.Layout)
			out := Normalize(model.Text(s), pi.Pattern)
			if !out.Succeeded() || !out.Date.Equal(d) {
				t.Errorf("%s: %q round-tripped to %v", pi.Pattern, s, out.Date)
				continue
			}
			if out.Display != s {
				t.Errorf("%s: display %q != input %q", pi.Pattern, out.Display, s)
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	if got := ParseDate("  15/01/2024 "); got == nil || !got.Equal(date(2024, 1, 15)) {
		t.Errorf("ParseDate = %v", got)
	}
	if got := ParseDate("15 marzo 2024"); got != nil {
		t.Errorf("ParseDate should not translate, got %v", got)
	}
	if got := ParseDate(""); got != nil {
		t.Errorf("ParseDate(\"\") = %v", got)
	}
}
