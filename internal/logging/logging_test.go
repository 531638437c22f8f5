package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLevel(t *testing.T) {
	tests := []struct {
		format, level string
		want          zerolog.Level
	}{
		{"text", "debug", zerolog.DebugLevel},
		{"json", "WARN", zerolog.WarnLevel},
		{"json", "", zerolog.InfoLevel},
		{"text", "loud", zerolog.InfoLevel},
		{"json", " error ", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		log := Setup(tt.format, tt.level)
		if got := log.GetLevel(); got != tt.want {
			t.Errorf("Setup(%q, %q) level = %v, want %v", tt.format, tt.level, got, tt.want)
		}
	}
}
