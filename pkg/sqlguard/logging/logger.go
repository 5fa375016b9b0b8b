// Package logging provides the leveled logger used across sqlguard. Entries are written as JSON lines,
// or as colored single lines when stdout is a terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/term"
)

const traceIDKey = "__trace_id__"

// PrettyPrint is implemented by log payloads that know how to render themselves on a terminal.
type PrettyPrint interface {
	PrettyPrint(writer io.Writer)
}

// Logger is the logging contract accepted by every sqlguard component.
type Logger interface {
	Debug(args ...any)
	Debugf(format string, args ...any)
	Log(args ...any)
	Logf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	ChangeLevel(level Level)
}

type logEntry struct {
	Level   Level     `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
	TraceID string    `json:"trace_id,omitempty"`
	Caller  string    `json:"caller,omitempty"`
}

type logger struct {
	level      Level
	normalOut  io.Writer
	errorOut   io.Writer
	isTerminal bool
	exit       func(code int)
}

// NewLogger creates a logger writing entries at or above level to stdout, and ERROR/FATAL to stderr.
func NewLogger(level Level) Logger {
	return &logger{
		level:      level,
		normalOut:  os.Stdout,
		errorOut:   os.Stderr,
		isTerminal: checkIfTerminal(os.Stdout),
		exit:       os.Exit,
	}
}

// NewWriterLogger creates a logger that writes every level as JSON to w. It is meant for tests and for
// callers that ship logs through their own pipe.
func NewWriterLogger(level Level, w io.Writer) Logger {
	return &logger{
		level:     level,
		normalOut: w,
		errorOut:  w,
		exit:      os.Exit,
	}
}

func checkIfTerminal(w io.Writer) bool {
	switch v := w.(type) {
	case *os.File:
		return term.IsTerminal(int(v.Fd()))
	default:
		return false
	}
}

func (l *logger) logf(level Level, format string, args ...any) {
	l.logfWithSkip(3, level, format, args...)
}

func (l *logger) logfWithSkip(skip int, level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	out := l.normalOut
	if level >= ERROR {
		out = l.errorOut
	}

	traceID, filtered := extractTraceID(args)

	entry := logEntry{
		Level:   level,
		Time:    time.Now(),
		TraceID: traceID,
	}

	if _, file, line, ok := runtime.Caller(skip); ok {
		entry.Caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	switch {
	case format != "":
		entry.Message = fmt.Sprintf(format, filtered...)
	case len(filtered) == 1:
		entry.Message = filtered[0]
	default:
		entry.Message = filtered
	}

	if l.isTerminal {
		l.prettyPrint(&entry, out)
	} else {
		_ = json.NewEncoder(out).Encode(entry)
	}

	if level == FATAL {
		l.exit(1)
	}
}

func (l *logger) prettyPrint(e *logEntry, out io.Writer) {
	fmt.Fprintf(out, "\u001B[%dm%s\u001B[0m [%s]", e.Level.color(), e.Level.String()[0:4], e.Time.Format(time.TimeOnly))

	if e.TraceID != "" {
		fmt.Fprintf(out, " \u001B[38;5;8m%s\u001B[0m", e.TraceID)
	}

	fmt.Fprint(out, " ")

	if fn, ok := e.Message.(PrettyPrint); ok {
		fn.PrettyPrint(out)
		return
	}

	fmt.Fprintf(out, "%v\n", e.Message)
}

// extractTraceID pulls the trace marker appended by ContextLogger out of args.
func extractTraceID(args []any) (string, []any) {
	if len(args) == 0 {
		return "", args
	}

	m, ok := args[len(args)-1].(map[string]any)
	if !ok {
		return "", args
	}

	id, ok := m[traceIDKey].(string)
	if !ok {
		return "", args
	}

	return id, args[:len(args)-1]
}

func (l *logger) Debug(args ...any)                 { l.logf(DEBUG, "", args...) }
func (l *logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *logger) Log(args ...any)                   { l.logf(INFO, "", args...) }
func (l *logger) Logf(format string, args ...any)   { l.logf(INFO, format, args...) }
func (l *logger) Info(args ...any)                  { l.logf(INFO, "", args...) }
func (l *logger) Infof(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *logger) Notice(args ...any)                { l.logf(NOTICE, "", args...) }
func (l *logger) Noticef(format string, args ...any) {
	l.logf(NOTICE, format, args...)
}
func (l *logger) Warn(args ...any)                  { l.logf(WARN, "", args...) }
func (l *logger) Warnf(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *logger) Error(args ...any)                 { l.logf(ERROR, "", args...) }
func (l *logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }
func (l *logger) Fatal(args ...any)                 { l.logf(FATAL, "", args...) }
func (l *logger) Fatalf(format string, args ...any) { l.logf(FATAL, format, args...) }

func (l *logger) ChangeLevel(level Level) {
	l.level = level
}
