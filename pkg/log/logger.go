package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level represents the severity level of a log message.
type Level int

// Log levels, ordered from least to most severe.
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	CriticalLevel
)

// String returns the wire representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name, case-insensitively. "WARN" is accepted as
// an alias for WARNING.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO", "":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL":
		return CriticalLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Fields is a map of field names to values.
type Fields map[string]interface{}

// Entry represents a single log entry as seen by formatters and outputs.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Logger    string
	Message   string
	Fields    Fields

	// Source location of the log call.
	Module   string
	Function string
	Line     int

	// Err carries failure context; the JSON formatter serializes it as the
	// exception field on error-and-above entries.
	Err error
}

// Formatter renders an Entry to a single line, without trailing newline.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// Output receives formatted entries.
type Output interface {
	Write(entry *Entry, formatted []byte) error
	Close() error
}

// Handler pairs a minimum level, a formatter, and an output.
type Handler struct {
	Min       Level
	Formatter Formatter
	Output    Output
}

// Logger is the leveled structured logging interface handed out by the
// Registry.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Critical(msg string, fields ...Field)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})

	// With returns a child logger with additional bound fields.
	With(fields ...Field) Logger
	// WithError returns a child logger whose entries carry err as failure
	// context.
	WithError(err error) Logger

	Name() string
}

// baseLogger implements Logger. Named loggers from one Registry share the
// registry's handler set and threshold; bound fields are per-handle.
type baseLogger struct {
	reg    *Registry
	name   string
	fields []Field
	err    error
}

func (l *baseLogger) Name() string { return l.name }

func (l *baseLogger) With(fields ...Field) Logger {
	child := *l
	child.fields = append(append([]Field{}, l.fields...), fields...)
	return &child
}

func (l *baseLogger) WithError(err error) Logger {
	child := *l
	child.err = err
	return &child
}

func (l *baseLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *baseLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *baseLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *baseLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }
func (l *baseLogger) Critical(msg string, fields ...Field) {
	l.log(CriticalLevel, msg, fields)
}

func (l *baseLogger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...), nil)
}
func (l *baseLogger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...), nil)
}
func (l *baseLogger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...), nil)
}
func (l *baseLogger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...), nil)
}
func (l *baseLogger) Criticalf(format string, args ...interface{}) {
	l.log(CriticalLevel, fmt.Sprintf(format, args...), nil)
}

func (l *baseLogger) log(level Level, msg string, fields []Field) {
	if !l.reg.enabled(level) {
		return
	}

	entry := &Entry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Logger:    l.name,
		Message:   msg,
		Err:       l.err,
	}
	if n := len(l.fields) + len(fields); n > 0 {
		entry.Fields = make(Fields, n)
		for _, f := range l.fields {
			l.applyField(entry, f)
		}
		for _, f := range fields {
			l.applyField(entry, f)
		}
	}
	fillCaller(entry, 2)
	l.reg.dispatch(entry)
}

// applyField merges a field into the entry, lifting error fields into the
// entry's failure context.
func (l *baseLogger) applyField(entry *Entry, f Field) {
	if err, ok := f.Value.(error); ok && f.Key == errFieldKey {
		entry.Err = err
		return
	}
	if entry.Fields == nil {
		entry.Fields = Fields{}
	}
	entry.Fields[f.Key] = f.Value
}

// fillCaller records the module (file base), function, and line of the log
// call site.
func fillCaller(entry *Entry, skip int) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return
	}
	entry.Module = strings.TrimSuffix(filepath.Base(file), ".go")
	entry.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		entry.Function = name
	}
}
