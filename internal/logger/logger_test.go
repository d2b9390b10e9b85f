package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "résumé text", limit: 0, expect: ""},
		{name: "shorter than limit", input: "résumé", limit: 10, expect: "résumé"},
		{name: "counts runes", input: "résumé text", limit: 6, expect: "résumé..."},
		{name: "trims before measuring", input: "  python  ", limit: 6, expect: "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		l, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !l.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("expected debug level to be enabled")
		}
	}

	l, err := New(false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be disabled")
	}
}

func TestNewWritesJSONWithName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")

	l, err := New(true, false, WithOutput(path), WithName("ats-scorer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Info("resume scored", CommonFields("cv.txt", "job.txt")...)
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("decoding log entry %q: %v", data, err)
	}
	for key, want := range map[string]string{"msg": "resume scored", "level": "info", "app": "ats-scorer", FieldResume: "cv.txt", FieldJob: "job.txt"} {
		if entry[key] != want {
			t.Fatalf("expected %s=%q, got %v", key, want, entry[key])
		}
	}
	if _, ok := entry["caller"]; ok {
		t.Fatalf("caller should be omitted outside debug mode")
	}
}
