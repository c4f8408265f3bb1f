package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONErrorIncludesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO", "")
	logger.Error("failed to save message", "error", "disk full")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "failed to save message" {
		t.Errorf("unexpected msg: %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace attribute on ERROR record")
	}
}

func TestNew_InfoHasNoStacktrace(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "INFO", "").Info("request")
	if strings.Contains(buf.String(), "stacktrace") {
		t.Errorf("did not expect stacktrace on INFO: %s", buf.String())
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "WARN", "").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN, got %q", buf.String())
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "", "text").With("component", "store").Info("loaded")
	out := buf.String()
	if !strings.Contains(out, "msg=loaded") || !strings.Contains(out, "component=store") {
		t.Errorf("expected text handler output, got %q", out)
	}
}
