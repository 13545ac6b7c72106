package log

import (
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes formatted entries to stdout.
type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleOutput returns an output writing to stdout.
func NewConsoleOutput() *ConsoleOutput { return &ConsoleOutput{w: os.Stdout} }

// NewConsoleOutputTo returns an output writing to w. Used in tests.
func NewConsoleOutputTo(w io.Writer) *ConsoleOutput { return &ConsoleOutput{w: w} }

// Write implements Output.
func (o *ConsoleOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.w.Write(formatted); err != nil {
		return err
	}
	_, err := o.w.Write([]byte{'\n'})
	return err
}

// Close implements Output. Stdout is not closed.
func (o *ConsoleOutput) Close() error { return nil }

// WriterOutput adapts an io.WriteCloser (typically a rotating file writer)
// into an Output. Each entry becomes one newline-terminated write so the
// underlying writer never rotates mid-record.
type WriterOutput struct {
	w io.WriteCloser
}

// NewWriterOutput wraps w.
func NewWriterOutput(w io.WriteCloser) *WriterOutput { return &WriterOutput{w: w} }

// Write implements Output.
func (o *WriterOutput) Write(_ *Entry, formatted []byte) error {
	line := make([]byte, 0, len(formatted)+1)
	line = append(line, formatted...)
	line = append(line, '\n')
	_, err := o.w.Write(line)
	return err
}

// Close implements Output.
func (o *WriterOutput) Close() error { return o.w.Close() }
