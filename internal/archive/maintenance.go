package archive

import (
	"context"
	"fmt"
)

// MaintenanceReport collects the stages of one FullMaintenance pass.
type MaintenanceReport struct {
	Compress *CompressReport
	Cleanup  *CleanupReport
	Stats    *Stats
}

// FullMaintenance runs the composite pass: compress logs older than
// olderThanDays, then sweep archives older than keepDays, then take a final
// inventory snapshot. Stage failures are carried in the stage reports; only
// a failure that prevents a stage from running at all aborts the pass.
func (a *Archiver) FullMaintenance(ctx context.Context, olderThanDays, keepDays int, format Format) (*MaintenanceReport, error) {
	rep := &MaintenanceReport{}

	var err error
	rep.Compress, err = a.Compress(ctx, olderThanDays, format)
	if err != nil {
		return rep, fmt.Errorf("archive: compress stage: %w", err)
	}
	rep.Cleanup, err = a.Cleanup(ctx, keepDays)
	if err != nil {
		return rep, fmt.Errorf("archive: cleanup stage: %w", err)
	}
	rep.Stats, err = a.Stats()
	if err != nil {
		return rep, fmt.Errorf("archive: stats stage: %w", err)
	}
	return rep, nil
}
