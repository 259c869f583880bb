package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewAppLogger(nil, NewConsoleLogger(&buf, false))

	l.Info("RUNNING")
	l.Error("capture failed: %v", "no display")
	l.Debug("hidden %d", 1)

	out := buf.String()
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "RUNNING") {
		t.Errorf("info line missing:\n%s", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "no display") {
		t.Errorf("error line missing:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line printed without verbose:\n%s", out)
	}
}

func TestConsoleVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewAppLogger(nil, NewConsoleLogger(&buf, true))

	l.Debug("[Detect] ui=%s", "kbm")
	if !strings.Contains(buf.String(), "ui=kbm") {
		t.Errorf("debug line missing:\n%s", buf.String())
	}
}

func TestLineFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewAppLogger(nil, NewConsoleLogger(&buf, false))
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 8, 7, 0, time.UTC) }

	if got, want := l.Line(LevelError, "boom"), "[09:08:07] ERROR: boom"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}
