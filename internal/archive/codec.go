package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/rzbill/baler/pkg/id"
)

// writeDurable writes an archive through fn into a dot-prefixed temporary
// file in the archive directory, syncs it, and renames it over the final
// name. The rename is the commit point: sources may only be deleted after
// writeDurable returns nil. An existing archive under the final name is
// replaced.
func (a *Archiver) writeDurable(finalName string, run id.RunID, fn func(w io.Writer) error) error {
	tmp := filepath.Join(a.archiveDir, fmt.Sprintf(".tmp-%s-%s", run, finalName))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync archive: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close archive: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(a.archiveDir, finalName)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit archive: %w", err)
	}
	return nil
}

// gzipFile streams src through a gzip writer into w.
func gzipFile(w io.Writer, srcPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	gz := gzip.NewWriter(w)
	gz.Name = filepath.Base(srcPath)
	if _, err := io.Copy(gz, src); err != nil {
		return err
	}
	return gz.Close()
}

// zipFiles streams the given files into a zip written to w. Entry names are
// file base names; modification times are preserved. Returns the names
// added and the per-file failures; a file that vanished before opening is
// skipped silently.
func zipFiles(w io.Writer, paths []string) (added []string, failures []ItemError, err error) {
	zw := zip.NewWriter(w)
	for _, path := range paths {
		name := filepath.Base(path)
		src, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			failures = append(failures, ItemError{Name: name, Err: err})
			continue
		}
		info, err := src.Stat()
		if err != nil {
			_ = src.Close()
			failures = append(failures, ItemError{Name: name, Err: err})
			continue
		}
		hdr := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		}
		dst, err := zw.CreateHeader(hdr)
		if err != nil {
			_ = src.Close()
			return added, failures, err
		}
		if _, err := io.Copy(dst, src); err != nil {
			_ = src.Close()
			return added, failures, err
		}
		_ = src.Close()
		added = append(added, path)
	}
	return added, failures, zw.Close()
}

// ageOf returns how old a modification time is relative to now.
func ageOf(now, mtime time.Time) time.Duration { return now.Sub(mtime) }

// daysDuration converts whole days to a duration.
func daysDuration(days int) time.Duration { return time.Duration(days) * 24 * time.Hour }
