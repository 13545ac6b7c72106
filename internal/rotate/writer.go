package rotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Policy bounds the active file size and the backup chain length.
type Policy struct {
	// MaxBytes is the size ceiling of the active file. A write that brings
	// the file to MaxBytes or more triggers rotation.
	MaxBytes int64
	// MaxBackups is the maximum number of rotated files retained. When a
	// rotation would push a backup past the ceiling, the oldest is deleted.
	// Zero means keep no backups: the active file is truncated instead.
	MaxBackups int
}

// Writer is a size-bounded rotating file writer. Safe for concurrent use by
// multiple goroutines of one process.
type Writer struct {
	path   string
	policy Policy

	mu   sync.Mutex
	file *os.File
	size int64
}

// Open opens or creates the active file at path in append mode. The parent
// directory is created if absent.
func Open(path string, policy Policy) (*Writer, error) {
	if policy.MaxBytes <= 0 {
		return nil, fmt.Errorf("rotate: non-positive size ceiling %d", policy.MaxBytes)
	}
	if policy.MaxBackups < 0 {
		return nil, fmt.Errorf("rotate: negative backup ceiling %d", policy.MaxBackups)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("rotate: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("rotate: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rotate: stat %s: %w", path, err)
	}
	return &Writer{path: path, policy: policy, file: f, size: info.Size()}, nil
}

// Path returns the active file path.
func (w *Writer) Path() string { return w.path }

// Write appends p to the active file, then rotates if the file reached the
// size ceiling. Write errors are returned to the caller without retry.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return 0, fmt.Errorf("rotate: writer closed")
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	if err != nil {
		return n, err
	}
	if w.size >= w.policy.MaxBytes {
		if err := w.rotate(); err != nil {
			return n, fmt.Errorf("rotate %s: %w", w.path, err)
		}
	}
	return n, nil
}

// Sync flushes the active file to disk.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close closes the active file. Further writes fail.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate freezes the active file and opens a fresh one. Caller holds w.mu.
// A failed backup shift leaves the stream live: the active file is reopened
// in append mode so the next write lands in the oversized file and rotation
// is retried on the following size check.
func (w *Writer) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil

	if w.policy.MaxBackups == 0 {
		// No backups kept: restart the active file in place.
		f, err := os.OpenFile(w.path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		w.file = f
		w.size = 0
		return nil
	}

	if err := w.shiftBackups(); err != nil {
		if reopenErr := w.reopen(); reopenErr != nil {
			return fmt.Errorf("%w (reopen active file: %v)", err, reopenErr)
		}
		return err
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w.file = f
	w.size = 0
	return nil
}

// shiftBackups moves the active file and existing backups up one slot; the
// file that would pass the backup ceiling is deleted first. Caller holds
// w.mu.
func (w *Writer) shiftBackups() error {
	last := backupPath(w.path, w.policy.MaxBackups)
	if _, err := os.Stat(last); err == nil {
		if err := os.Remove(last); err != nil {
			return err
		}
	}
	for i := w.policy.MaxBackups - 1; i >= 1; i-- {
		src := backupPath(w.path, i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, backupPath(w.path, i+1)); err != nil {
			return err
		}
	}
	return os.Rename(w.path, backupPath(w.path, 1))
}

// reopen restores the active file handle after a failed rotation. Caller
// holds w.mu.
func (w *Writer) reopen() error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w.file = f
	w.size = info.Size()
	return nil
}

func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

// Chain returns the existing files of a rotated stream in oldest-to-newest
// order: path.N .. path.1 then the active file. Missing members are skipped.
func Chain(path string, maxBackups int) []string {
	var out []string
	for i := maxBackups; i >= 1; i-- {
		p := backupPath(path, i)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	if _, err := os.Stat(path); err == nil {
		out = append(out, path)
	}
	return out
}
