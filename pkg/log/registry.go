package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rzbill/baler/internal/rotate"
)

// ErrAlreadySetup is returned when Setup is called on an initialized
// Registry.
var ErrAlreadySetup = errors.New("log registry already set up")

// Default file names bound by Setup.
const (
	DefaultFileName      = "app.json.log"
	DefaultErrorFileName = "error.log"
)

// SetupOptions configures Registry.Setup.
type SetupOptions struct {
	// Dir is the log directory; created if absent.
	Dir string
	// Level is the console threshold. File handlers persist every level,
	// the error file persists ErrorLevel and above.
	Level Level
	// MaxBytes and MaxBackups define the rotation policy of both file
	// handlers. Zero MaxBytes falls back to 10 MiB, negative MaxBackups
	// to 30.
	MaxBytes   int64
	MaxBackups int
	// FileName and ErrorFileName override the default file names.
	FileName      string
	ErrorFileName string
	// Console disables the stdout handler when false. ConsoleColor enables
	// ANSI colors on it.
	Console      bool
	ConsoleColor bool
}

// Registry binds log handlers once and hands out named logger handles.
type Registry struct {
	mu       sync.RWMutex
	level    Level
	handlers []Handler
	loggers  map[string]*baseLogger
	setup    bool
}

// NewRegistry returns an empty registry. Until Setup or AddHandler is
// called, loggers obtained from it discard everything.
func NewRegistry() *Registry {
	return &Registry{level: InfoLevel, loggers: map[string]*baseLogger{}}
}

// Setup binds the standard handler set: an optional colorized console
// handler at opts.Level, a JSON file handler persisting every level to a
// rotating file, and an error-only JSON handler with its own rotation state.
// Calling Setup twice returns ErrAlreadySetup; there is no hidden
// re-initialization.
func (r *Registry) Setup(opts SetupOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setup {
		return ErrAlreadySetup
	}

	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.MaxBackups < 0 {
		opts.MaxBackups = 30
	}
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	if opts.ErrorFileName == "" {
		opts.ErrorFileName = DefaultErrorFileName
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	policy := rotate.Policy{MaxBytes: opts.MaxBytes, MaxBackups: opts.MaxBackups}

	fileWriter, err := rotate.Open(filepath.Join(opts.Dir, opts.FileName), policy)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	errWriter, err := rotate.Open(filepath.Join(opts.Dir, opts.ErrorFileName), policy)
	if err != nil {
		_ = fileWriter.Close()
		return fmt.Errorf("open error log file: %w", err)
	}

	handlers := make([]Handler, 0, 3)
	if opts.Console {
		handlers = append(handlers, Handler{
			Min:       opts.Level,
			Formatter: &TextFormatter{Color: opts.ConsoleColor},
			Output:    NewConsoleOutput(),
		})
	}
	handlers = append(handlers,
		Handler{Min: DebugLevel, Formatter: &JSONFormatter{}, Output: NewWriterOutput(fileWriter)},
		Handler{Min: ErrorLevel, Formatter: &JSONFormatter{}, Output: NewWriterOutput(errWriter)},
	)

	r.level = opts.Level
	r.handlers = handlers
	r.setup = true
	return nil
}

// AddHandler registers a custom handler. Mostly used in tests; Setup is the
// normal path.
func (r *Registry) AddHandler(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
	r.setup = true
}

// Logger returns the named logger handle, creating it on first use.
func (r *Registry) Logger(name string) Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := &baseLogger{reg: r, name: name}
	r.loggers[name] = l
	return l
}

// SetLevel changes the console threshold at runtime.
func (r *Registry) SetLevel(level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.level = level
	for i := range r.handlers {
		if _, ok := r.handlers[i].Output.(*ConsoleOutput); ok {
			r.handlers[i].Min = level
		}
	}
}

// Close closes every bound output. The registry is unusable afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for _, h := range r.handlers {
		if err := h.Output.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.handlers = nil
	return first
}

// enabled reports whether any handler would accept level.
func (r *Registry) enabled(level Level) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.handlers {
		if level >= h.Min {
			return true
		}
	}
	return false
}

// dispatch formats and writes the entry through every accepting handler.
// Output failures are swallowed: a dropped log line must not block the
// caller.
func (r *Registry) dispatch(entry *Entry) {
	r.mu.RLock()
	handlers := r.handlers
	r.mu.RUnlock()
	for _, h := range handlers {
		if entry.Level < h.Min {
			continue
		}
		formatted, err := h.Formatter.Format(entry)
		if err != nil {
			continue
		}
		_ = h.Output.Write(entry, formatted)
	}
}
