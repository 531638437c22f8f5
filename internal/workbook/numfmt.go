package workbook

import "github.com/xuri/nfp"

// isBuiltInDateID reports whether a built-in numFmtId renders a date, time or
// datetime (ECMA-376 §18.8.30).
func isBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatString reports whether a custom number format contains any
// date or time token in its first section.
func isDateFormatString(format string) bool {
	if format == "" || format == "General" {
		return false
	}
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(format)
	if len(sections) == 0 {
		return false
	}
	for _, tok := range sections[0].Items {
		if tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes {
			return true
		}
	}
	return false
}
