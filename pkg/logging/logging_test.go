package logging

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetupLogger(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("SetupLogger(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestLogFilePath(t *testing.T) {
	path := LogFilePath()

	if !strings.HasSuffix(path, "cursync/cursync.log") {
		t.Errorf("LogFilePath() = %q, want a cursync/cursync.log suffix", path)
	}
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger("planner")

	// The returned logger must be usable without further setup.
	logger.Debug().Msg("component logger works")
}
