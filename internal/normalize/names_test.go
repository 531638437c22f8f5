package normalize

import "testing"

func TestTranslateItalian(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"giovedì 12 giugno 2025", "Thursday 12 june 2025", true},
		{"15 MARZO 2024", "15 march 2024", true},
		{"1 gen 2024", "1 jan 2024", true},
		{"martedì 2 aprile", "Tuesday 2 april", true},
		{"15 March 2024", "15 March 2024", false},
		// whole word only: "mar" inside "marmellata" is not a month
		{"marmellata", "marmellata", false},
		{"  domenica   ", "Sunday", true},
		// abbreviations shared with English are left alone
		{"Mar 15 2024", "Mar 15 2024", false},
		{"15 Nov 2024", "15 Nov 2024", false},
		{"sabato 15 mar 2024", "Saturday 15 mar 2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, changed := TranslateItalian(tt.in)
			if got != tt.want || changed != tt.changed {
				t.Errorf("TranslateItalian(%q) = %q, %v; want %q, %v", tt.in, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestTranslateItalian_FirstMatchPerCategory(t *testing.T) {
	got, _ := TranslateItalian("gennaio febbraio")
	if got != "January febbraio" {
		t.Errorf("got %q", got)
	}
}
