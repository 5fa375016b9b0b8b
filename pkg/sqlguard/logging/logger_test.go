package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var m map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &m))

		entries = append(entries, m)
	}

	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(WARN, buf)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Errorf("error %d", 42)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "warn", entries[0]["message"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "error 42", entries[1]["message"])
	assert.Contains(t, entries[1]["caller"], "logger_test.go")
}

func TestLogger_ChangeLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(ERROR, buf)

	l.Info("hidden")
	l.ChangeLevel(DEBUG)
	l.Debug("visible")

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["message"])
}

func TestLogger_MultipleArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(DEBUG, buf)

	l.Info("a", 1)

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, []any{"a", float64(1)}, entries[0]["message"])
}

func TestLogger_FatalExits(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWriterLogger(DEBUG, buf).(*logger)

	code := -1
	l.exit = func(c int) { code = c }

	l.Fatalf("boom %s", "now")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "boom now")
}

type prettyPayload struct{}

func (prettyPayload) PrettyPrint(w io.Writer) { fmt.Fprintln(w, "PRETTY") }

func TestLogger_PrettyPrintOnTerminal(t *testing.T) {
	buf := &bytes.Buffer{}
	l := &logger{level: DEBUG, normalOut: buf, errorOut: buf, isTerminal: true}

	l.Info(prettyPayload{})
	l.Warn("plain")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "PRETTY")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "plain")
}

func TestContextLogger_AddsTraceID(t *testing.T) {
	buf := &bytes.Buffer{}
	base := NewWriterLogger(DEBUG, buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	NewContextLogger(ctx, base).Infof("hello %s", "world")
	NewContextLogger(context.Background(), base).Warn("no trace")

	entries := decodeEntries(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello world", entries[0]["message"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entries[0]["trace_id"])
	assert.Contains(t, entries[0]["caller"], "logger_test.go")
	assert.NotContains(t, entries[1], "trace_id")
}

func TestGetLevelFromString(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Notice", NOTICE},
		{"warn", WARN},
		{"error", ERROR},
		{"fatal", FATAL},
		{"", INFO},
		{"verbose", INFO},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, GetLevelFromString(tc.in), tc.in)
	}
}
