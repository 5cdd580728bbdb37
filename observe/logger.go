package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is a minimal structured logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// WithComponent returns a logger that stamps every entry with the
	// component name.
	WithComponent(name string) Logger
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// jsonLogger writes one JSON object per entry.
type jsonLogger struct {
	level     LogLevel
	writer    io.Writer
	mu        *sync.Mutex
	component string
}

// NewLogger creates a structured logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a structured logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &jsonLogger{
		level:  ParseLogLevel(level),
		writer: w,
		mu:     &sync.Mutex{},
	}
}

// WithComponent returns a logger bound to a component name. The returned
// logger shares the writer and its lock.
func (l *jsonLogger) WithComponent(name string) Logger {
	return &jsonLogger{
		level:     l.level,
		writer:    l.writer,
		mu:        l.mu,
		component: name,
	}
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *jsonLogger) log(level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(fields)+4)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg
	if l.component != "" {
		entry["component"] = l.component
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Drop malformed entries rather than panic mid-request.
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer.Write(data)
	l.writer.Write([]byte("\n"))
}

// nopLogger discards everything.
type nopLogger struct{}

func (l *nopLogger) Debug(ctx context.Context, msg string, fields ...Field) {}
func (l *nopLogger) Info(ctx context.Context, msg string, fields ...Field)  {}
func (l *nopLogger) Warn(ctx context.Context, msg string, fields ...Field)  {}
func (l *nopLogger) Error(ctx context.Context, msg string, fields ...Field) {}
func (l *nopLogger) WithComponent(name string) Logger                       { return l }

// NopLogger returns a logger that discards everything.
func NopLogger() Logger { return &nopLogger{} }

// Ensure jsonLogger implements Logger
var _ Logger = (*jsonLogger)(nil)
