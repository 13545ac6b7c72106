package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rzbill/baler/pkg/id"
	"github.com/rzbill/baler/pkg/log"
)

// CleanupReport is the result of one retention sweep.
type CleanupReport struct {
	RunID    id.RunID
	Deleted  int
	Failures []ItemError
}

// Cleanup deletes archive files strictly older than keepDays; an archive
// exactly at the boundary is retained. Deletion is unconditional and
// irreversible. Running the sweep twice with the same keepDays deletes
// nothing the second time.
func (a *Archiver) Cleanup(ctx context.Context, keepDays int) (*CleanupReport, error) {
	if keepDays < 0 {
		return nil, fmt.Errorf("archive: negative retention window %d", keepDays)
	}

	rep := &CleanupReport{RunID: a.ids.Next()}
	logger := a.logger.With(log.Str("run_id", rep.RunID.String()))

	infos, err := listRegular(a.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("archive: scan archive dir: %w", err)
	}

	now := a.clk.Now()
	cutoff := daysDuration(keepDays)
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if ageOf(now, info.ModTime()) <= cutoff {
			continue
		}
		path := filepath.Join(a.archiveDir, info.Name())
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				// vanished between enumeration and delete: already handled
				continue
			}
			rep.Failures = append(rep.Failures, ItemError{Name: info.Name(), Err: err})
			logger.Error("archive delete failed", log.Str("file", info.Name()), log.Err(err))
			continue
		}
		rep.Deleted++
		logger.Info("expired archive deleted", log.Str("file", info.Name()))
	}
	return rep, nil
}
