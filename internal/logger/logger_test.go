package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestJSONRecord(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.With("component", "api").Info("ordering created", "n", 4)

	out := buf.String()
	for _, want := range []string{`"msg":"ordering created"`, `"component":"api"`, `"n":4`, `"level":"INFO"`, `"source"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	for _, format := range []string{FormatPretty, FormatJSON, FormatText} {
		var buf bytes.Buffer
		log, err := ForFormat(format, &buf, slog.LevelWarn)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", format, err)
		}
		log.Debug("hidden")
		log.Info("hidden")
		if buf.Len() > 0 {
			t.Fatalf("%s: expected no output below warn, got: %s", format, buf.String())
		}
		log.Warn("ordering failed")
		if !strings.Contains(buf.String(), "ordering failed") {
			t.Fatalf("%s: expected warn message, got: %s", format, buf.String())
		}
	}
}

func TestForFormat(t *testing.T) {
	t.Parallel()
	for _, format := range []string{"pretty", "JSON", "text", ""} {
		var buf bytes.Buffer
		log, err := ForFormat(format, &buf, slog.LevelDebug)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", format, err)
		}
		log.Debug("ordering control", "dense_alpha", 10)
		if !strings.Contains(buf.String(), "ordering control") {
			t.Fatalf("ForFormat(%q): expected message in output, got: %s", format, buf.String())
		}
	}
	if _, err := ForFormat("xml", &bytes.Buffer{}, slog.LevelInfo); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without a logger returned nil")
	}

	var buf bytes.Buffer
	ctx := WithContext(context.Background(), Text(&buf, slog.LevelInfo))
	FromContext(ctx).Info("roundtrip")
	if !strings.Contains(buf.String(), "msg=roundtrip") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := Discard()
	log.Error("dropped")
	log.With("k", "v").WithGroup("g").Info("dropped")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"Warn", slog.LevelWarn},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}

func prettyLine(t *testing.T, h slog.Handler, msg string, args ...any) string {
	t.Helper()
	var buf bytes.Buffer
	base := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	if h == nil {
		h = base
	}
	slog.New(h).Info(msg, args...)
	return buf.String()
}

func TestPrettyValues(t *testing.T) {
	t.Parallel()
	out := prettyLine(t, nil, "ordering statistics",
		"n", 4,
		"symmetry", 0.5,
		"aggressive", true,
		"took", 1500*time.Millisecond,
		"status", "ok, but jumbled",
		"format", "d",
		"empty", "",
	)
	for _, want := range []string{
		"ordering statistics",
		"n=4",
		"symmetry=0.5",
		"aggressive=true",
		"took=1.5s",
		`status="ok, but jumbled"`,
		"format=d",
		`empty=""`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line, got: %q", out)
	}
}

func TestPrettyErrorHighlighted(t *testing.T) {
	t.Parallel()
	out := prettyLine(t, nil, "ordering failed", "error", errors.New("shape error: not square"))
	if !strings.Contains(out, ansiRed+`error="shape error: not square"`) {
		t.Fatalf("expected red error attribute, got: %q", out)
	}
}

func TestPrettyGroups(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)

	// Attributes bound before a group keep their key.
	h2 := h.WithAttrs([]slog.Attr{slog.String("service", "amdorder")}).WithGroup("a").WithGroup("b")
	slog.New(h2).Info("nested", "key", "val", slog.Group("info", slog.Int("lnz", 3)))

	out := buf.String()
	for _, want := range []string{"service=amdorder", "a.b.key=val", "a.b.info.lnz=3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got: %q", want, out)
		}
	}
	if strings.Contains(out, "a.b.service") {
		t.Fatalf("bound attribute picked up a later group: %q", out)
	}

	if h.WithGroup("") != h {
		t.Fatal("WithGroup empty string should return same handler")
	}
	if h.WithAttrs(nil) != h {
		t.Fatal("WithAttrs with no attributes should return same handler")
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
}

// lockedWriter fails the test if two writes overlap.
type lockedWriter struct {
	t      *testing.T
	active sync.Mutex
	lines  int
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	if !w.active.TryLock() {
		w.t.Error("concurrent write to shared writer")
		return len(p), nil
	}
	defer w.active.Unlock()
	w.lines++
	return len(p), nil
}

func TestPrettyDerivedHandlersShareLock(t *testing.T) {
	t.Parallel()
	w := &lockedWriter{t: t}
	root := NewPrettyHandler(w, nil)
	handlers := []slog.Handler{root, root.WithGroup("g"), root.WithAttrs([]slog.Attr{slog.Int("k", 1)})}

	var wg sync.WaitGroup
	for _, h := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log := slog.New(h)
			for range 50 {
				log.Info("concurrent")
			}
		}()
	}
	wg.Wait()
	if w.lines != 150 {
		t.Fatalf("expected 150 lines, got %d", w.lines)
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{"has\nnewline", true},
		{`has"quote`, true},
		{"k=v", true},
		{"", true},
		{"no-special-chars", false},
	}

	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.expected {
			t.Errorf("needsQuoting(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
