package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("disk full", "path", "/data")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["level"] != "CRITICAL" {
		t.Fatalf("expected CRITICAL level, got %v", record["level"])
	}
	if record["path"] != "/data" {
		t.Fatalf("expected path attr, got %v", record["path"])
	}
}

func TestErrorHelpersSkipNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("ignored", nil)
	log.InternalError("ignored", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil errors, got %q", buf.String())
	}

	log.BusinessError("wrong pin", errors.New("mismatch"), "profile_id", "p-1")
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "err=mismatch") || !strings.Contains(out, "profile_id=p-1") {
		t.Fatalf("expected warn record with attrs, got %q", out)
	}
}

func TestWithAddsAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "text").With("service", serviceName)

	log.Debug("hidden")
	log.Info("started")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug to be filtered, got %q", out)
	}
	if !strings.Contains(out, "service=money-tracker") {
		t.Fatalf("expected service attr, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{"", "development", slog.LevelDebug},
		{"", "production", slog.LevelInfo},
		{"WARNING", "production", slog.LevelWarn},
		{"fatal", "production", LevelCritical},
		{"verbose", "production", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.value, tc.env); got != tc.want {
			t.Fatalf("parseLevel(%q, %q): expected %v, got %v", tc.value, tc.env, tc.want, got)
		}
	}
	if got := parseFormat("xml"); got != "json" {
		t.Fatalf("expected json fallback, got %q", got)
	}
}
