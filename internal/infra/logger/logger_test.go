package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &Options{Level: level, NoColor: true}))
}

func TestHandler_WritesMessageAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.Info("provider selected", "provider", "openai", "model", "gpt-4o-mini")

	out := buf.String()
	for _, want := range []string{"INFO", "provider selected", "provider=openai", "model=gpt-4o-mini"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline, got %q", out)
	}
}

func TestHandler_FiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestHandler_QuotesStringsWithSpaces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo)

	log.Info("msg", "note", "two words")

	if !strings.Contains(buf.String(), `note="two words"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}

func TestHandler_WithGroupAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newTestLogger(&buf, slog.LevelInfo).With("component", "chatbot").WithGroup("req")

	log.Info("done", "id", 7)

	out := buf.String()
	if !strings.Contains(out, "component=chatbot") {
		t.Errorf("expected persistent attr, got %q", out)
	}
	if !strings.Contains(out, "req.id=7") {
		t.Errorf("expected grouped key, got %q", out)
	}
}

func TestErr(t *testing.T) {
	t.Parallel()

	a := Err(errors.New("boom"))
	if a.Key != "error" || a.Value.String() != "boom" {
		t.Errorf("unexpected attr %v", a)
	}
	if Err(nil).Value.String() != "<nil>" {
		t.Errorf("expected <nil> for nil error")
	}
}
