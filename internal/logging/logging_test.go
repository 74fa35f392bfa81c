package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"text", func(t *testing.T, out string) {
			if !strings.Contains(out, "msg=tick") || !strings.Contains(out, "n=3") {
				t.Errorf("text output = %q", out)
			}
		}},
		{"json", func(t *testing.T, out string) {
			var rec map[string]any
			if err := json.Unmarshal([]byte(out), &rec); err != nil {
				t.Fatalf("not json: %q", out)
			}
			if rec["msg"] != "tick" || rec["n"] != 3.0 {
				t.Errorf("json record = %v", rec)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(&buf, "info", tt.format)
			if err != nil {
				t.Fatal(err)
			}
			log.Info("tick", "n", 3)
			tt.check(t, buf.String())
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", "text")
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, "loud", "text"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("bad level error = %v", err)
	}
	if _, err := New(nil, "info", "xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger reports enabled")
	}
}
