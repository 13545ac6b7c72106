package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rzbill/baler/pkg/id"
	"github.com/rzbill/baler/pkg/log"
)

// CompressReport is the result of one Compress pass.
type CompressReport struct {
	RunID    id.RunID
	Created  []Entry
	Failures []ItemError
}

// Compress scans the log directory for regular files strictly older than
// olderThanDays and compresses each into the archive directory, deleting
// the source only after its archive is durable. Zero eligible files is not
// an error: the report simply has no Created entries. Re-running
// immediately compresses nothing new, since compressed sources are gone.
func (a *Archiver) Compress(ctx context.Context, olderThanDays int, format Format) (*CompressReport, error) {
	if olderThanDays < 0 {
		return nil, fmt.Errorf("archive: negative age threshold %d", olderThanDays)
	}
	switch format {
	case FormatZip, FormatGzip, FormatBundle:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	rep := &CompressReport{RunID: a.ids.Next()}
	logger := a.logger.With(log.Str("run_id", rep.RunID.String()))

	infos, err := listRegular(a.logDir)
	if err != nil {
		return nil, fmt.Errorf("archive: scan log dir: %w", err)
	}

	now := a.clk.Now()
	cutoff := daysDuration(olderThanDays)
	var eligible []string
	for _, info := range infos {
		if ageOf(now, info.ModTime()) > cutoff {
			eligible = append(eligible, filepath.Join(a.logDir, info.Name()))
		}
	}
	if len(eligible) == 0 {
		logger.Info("no files eligible for compression",
			log.Int("older_than_days", olderThanDays))
		return rep, nil
	}

	if format == FormatBundle {
		return a.compressBundle(ctx, rep, logger, eligible, now)
	}

	for _, src := range eligible {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := filepath.Base(src)
		archiveName := name + "." + string(format)

		writeOne := func(w io.Writer) error {
			if format == FormatGzip {
				return gzipFile(w, src)
			}
			added, failures, err := zipFiles(w, []string{src})
			if err != nil {
				return err
			}
			if len(failures) > 0 {
				return failures[0].Err
			}
			if len(added) == 0 {
				return os.ErrNotExist
			}
			return nil
		}

		if err := a.writeDurable(archiveName, rep.RunID, writeOne); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// vanished between enumeration and open: already handled
				continue
			}
			rep.Failures = append(rep.Failures, ItemError{Name: name, Err: err})
			logger.Error("compression failed", log.Str("file", name), log.Err(err))
			continue
		}

		entry, err := a.entryFor(archiveName)
		if err != nil {
			rep.Failures = append(rep.Failures, ItemError{Name: name, Err: err})
			continue
		}
		rep.Created = append(rep.Created, entry)

		if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
			rep.Failures = append(rep.Failures, ItemError{Name: name, Err: err})
			logger.Error("source delete failed", log.Str("file", name), log.Err(err))
			continue
		}
		logger.Info("compressed and removed source",
			log.Str("file", name), log.Str("archive", archiveName))
	}
	return rep, nil
}

// compressBundle packs all eligible files into one dated zip, then removes
// the sources that made it into the bundle.
func (a *Archiver) compressBundle(ctx context.Context, rep *CompressReport, logger log.Logger, eligible []string, now time.Time) (*CompressReport, error) {
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	archiveName := fmt.Sprintf("%s%s.zip", BundlePrefix, now.Format(dateLayout))

	var added []string
	err := a.writeDurable(archiveName, rep.RunID, func(w io.Writer) error {
		var failures []ItemError
		var err error
		added, failures, err = zipFiles(w, eligible)
		rep.Failures = append(rep.Failures, failures...)
		return err
	})
	if err != nil {
		return rep, fmt.Errorf("archive: write bundle: %w", err)
	}
	if len(added) == 0 {
		// everything vanished mid-pass; drop the empty bundle
		_ = os.Remove(filepath.Join(a.archiveDir, archiveName))
		return rep, nil
	}

	entry, err := a.entryFor(archiveName)
	if err != nil {
		return rep, err
	}
	rep.Created = append(rep.Created, entry)

	for _, src := range added {
		if err := os.Remove(src); err != nil && !os.IsNotExist(err) {
			rep.Failures = append(rep.Failures, ItemError{Name: filepath.Base(src), Err: err})
		}
	}
	logger.Info("bundle created",
		log.Str("archive", archiveName), log.Int("files", len(added)))
	return rep, nil
}
