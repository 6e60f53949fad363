package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatMinutes(t *testing.T) {
	tc := []struct {
		name    string
		minutes int
		want    string
	}{
		{
			name:    "under an hour",
			minutes: 45,
			want:    "45m",
		},
		{
			name:    "zero",
			minutes: 0,
			want:    "0m",
		},
		{
			name:    "exact hour",
			minutes: 60,
			want:    "1h 00m",
		},
		{
			name:    "hours and minutes",
			minutes: 205,
			want:    "3h 25m",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMinutes(tt.minutes)
			if got != tt.want {
				t.Errorf("FormatMinutes(%d) = %v, want %v", tt.minutes, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" || second == "" {
		t.Fatal("expected non-empty IDs")
	}
	if first == second {
		t.Error("expected distinct IDs")
	}
	if len(strings.Split(first, "-")) != 5 {
		t.Errorf("expected UUID shape, got %q", first)
	}
}

func TestLoggers(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("WithLogger carries key-values", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "test")

		logger.Info("tagged")

		out := buf.String()
		if !strings.Contains(out, "component") || !strings.Contains(out, "tagged") {
			t.Errorf("expected tagged output, got %q", out)
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}

		logger.Info("to file")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("log file missing: %v", err)
		}
		if !strings.Contains(string(data), "to file") {
			t.Errorf("expected log line in file, got %q", data)
		}
	})
}
