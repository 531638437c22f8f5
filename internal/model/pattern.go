package model

import "strings"

// DatePattern is one of the supported output date formats.
type DatePattern string

const (
	PatternDMYDash  DatePattern = "DD-MM-YYYY"
	PatternDMYSlash DatePattern = "DD/MM/YYYY"
	PatternYMD      DatePattern = "YYYY-MM-DD"
)

// DefaultPattern is used when no output pattern is configured.
const DefaultPattern = PatternDMYDash

// patternInfo ties a pattern to its Go layout, Excel number format and the
// Italian label accepted as an alias.
type patternInfo struct {
	Pattern DatePattern
	Layout  string
	NumFmt  string
	Label   string
}

// AllPatterns lists the supported output patterns in presentation order.
var AllPatterns = []patternInfo{
	{Pattern: PatternDMYDash, Layout: "02-01-2006", NumFmt: "dd-mm-yyyy", Label: "gg-mm-aaaa"},
	{Pattern: PatternDMYSlash, Layout: "02/01/2006", NumFmt: "dd/mm/yyyy", Label: "gg/mm/aaaa"},
	{Pattern: PatternYMD, Layout: "2006-01-02", NumFmt: "yyyy-mm-dd", Label: "aaaa-mm-gg"},
}

// PatternByName resolves a pattern from its canonical name or Italian label,
// case-insensitively.
func PatternByName(name string) (DatePattern, bool) {
	name = strings.TrimSpace(name)
	for _, p := range AllPatterns {
		if strings.EqualFold(string(p.Pattern), name) || strings.EqualFold(p.Label, name) {
			return p.Pattern, true
		}
	}
	return "", false
}

// PatternNames returns the canonical pattern names.
func PatternNames() []string {
	names := make([]string, len(AllPatterns))
	for i, p := range AllPatterns {
		names[i] = string(p.Pattern)
	}
	return names
}

func (p DatePattern) info() patternInfo {
	for _, pi := range AllPatterns {
		if pi.Pattern == p {
			return pi
		}
	}
	return AllPatterns[0]
}

// Valid reports whether p is one of AllPatterns.
func (p DatePattern) Valid() bool {
	for _, pi := range AllPatterns {
		if pi.Pattern == p {
			return true
		}
	}
	return false
}

// Layout returns the Go time layout for p. Unknown patterns fall back to
// DefaultPattern.
func (p DatePattern) Layout() string { return p.info().Layout }

// NumFmt returns the Excel custom number format for p.
func (p DatePattern) NumFmt() string { return p.info().NumFmt }
