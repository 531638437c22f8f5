package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var multiSpace = regexp.MustCompile(`\s+`)

// localeName maps one Italian month or weekday spelling to its English token.
type localeName struct {
	it string
	en string
	re *regexp.Regexp
}

func names(pairs ...string) []localeName {
	out := make([]localeName, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, localeName{
			it: pairs[i],
			en: pairs[i+1],
			// whole word: neighbours must not be letters
			re: regexp.MustCompile(`(^|[^\p{L}])` + regexp.QuoteMeta(pairs[i]) + `([^\p{L}]|$)`),
		})
	}
	return out
}

// Full month names come before abbreviations so "marzo" is never read as
// "mar" followed by junk.
var italianMonths = names(
	"gennaio", "January",
	"febbraio", "February",
	"marzo", "March",
	"aprile", "April",
	"maggio", "May",
	"giugno", "June",
	"luglio", "July",
	"agosto", "August",
	"settembre", "September",
	"ottobre", "October",
	"novembre", "November",
	"dicembre", "December",
	"gen", "Jan",
	"feb", "Feb",
	"mar", "Mar",
	"apr", "Apr",
	"mag", "May",
	"giu", "Jun",
	"lug", "Jul",
	"ago", "Aug",
	"set", "Sep",
	"ott", "Oct",
	"nov", "Nov",
	"dic", "Dec",
)

var italianWeekdays = names(
	"lunedì", "Monday",
	"martedì", "Tuesday",
	"mercoledì", "Wednesday",
	"giovedì", "Thursday",
	"venerdì", "Friday",
	"sabato", "Saturday",
	"domenica", "Sunday",
	"lunedi", "Monday",
	"martedi", "Tuesday",
	"mercoledi", "Wednesday",
	"giovedi", "Thursday",
	"venerdi", "Friday",
)

// TranslateItalian replaces the first Italian month name and the first
// Italian weekday name found in s with their English equivalents. Matching
// is case-insensitive and whole-word. When anything was replaced the result
// is lower-cased with its first letter capitalized, and changed is true.
// Abbreviations spelled the same in both languages (mar, feb, apr, nov)
// count as the category's match but leave s and changed alone.
func TranslateItalian(s string) (out string, changed bool) {
	out = multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
	for _, table := range [][]localeName{italianMonths, italianWeekdays} {
		lower := strings.ToLower(out)
		for _, n := range table {
			if !n.re.MatchString(lower) {
				continue
			}
			if strings.EqualFold(n.it, n.en) {
				break
			}
			out = capitalize(n.re.ReplaceAllString(lower, "${1}"+n.en+"${2}"))
			changed = true
			break
		}
	}
	return out, changed
}

// capitalize lower-cases s and upper-cases its first rune.
func capitalize(s string) string {
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
