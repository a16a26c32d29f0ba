package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/karandeol-26/VeriCura/internal/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestWriterLogger_LevelFilter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := logging.NewWriterLogger(&buf, "test", logging.LevelWarn)

	l.Debug("dropped")
	l.Info("dropped too")
	l.Warn("kept")
	l.Error("kept too")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "warn" || lines[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", lines[0]["level"], lines[1]["level"])
	}
}

func TestWriterLogger_WithComponentAndFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	root := logging.NewWriterLogger(&buf, "root", logging.LevelDebug)
	child := root.With(
		logging.Field{Key: "component", Value: "classifier"},
		logging.Field{Key: "session", Value: "abc"},
	)

	child.Info("scored", logging.Field{Key: "error", Value: errors.New("boom")})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(lines))
	}
	if lines[0]["component"] != "classifier" {
		t.Errorf("component = %v, want classifier", lines[0]["component"])
	}
	fields, _ := lines[0]["fields"].(map[string]any)
	if fields["session"] != "abc" {
		t.Errorf("session field = %v, want abc", fields["session"])
	}
	if fields["error"] != "boom" {
		t.Errorf("error field = %v, want boom", fields["error"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"INFO":    logging.LevelInfo,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"bogus":   logging.LevelInfo,
	}
	for in, want := range cases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
