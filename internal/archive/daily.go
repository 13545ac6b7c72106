package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rzbill/baler/pkg/id"
	"github.com/rzbill/baler/pkg/log"
)

// DailyReport is the result of one CreateDailyArchive pass.
type DailyReport struct {
	RunID id.RunID
	Date  string
	// Entry is nil when no file matched the date ("nothing to archive").
	Entry      *Entry
	FilesAdded int
	Failures   []ItemError
}

// CreateDailyArchive bundles every log-directory file whose last-modified
// calendar day equals the target date into one zip named
// logs_archive_<YYYY-MM-DD>.zip. An empty dateStr selects yesterday
// relative to the injected clock. Matching is an exact calendar-day
// comparison in local time, not a rolling 24h window. Source files are left
// in place; an existing archive for the same date is overwritten.
func (a *Archiver) CreateDailyArchive(ctx context.Context, dateStr string) (*DailyReport, error) {
	var target time.Time
	if dateStr == "" {
		target = a.clk.Now().AddDate(0, 0, -1)
		dateStr = target.Format(dateLayout)
	} else {
		var err error
		target, err = time.ParseInLocation(dateLayout, dateStr, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadDate, dateStr)
		}
	}

	rep := &DailyReport{RunID: a.ids.Next(), Date: dateStr}
	logger := a.logger.With(
		log.Str("run_id", rep.RunID.String()), log.Str("date", dateStr))

	if err := ctx.Err(); err != nil {
		return rep, err
	}

	infos, err := listRegular(a.logDir)
	if err != nil {
		return nil, fmt.Errorf("archive: scan log dir: %w", err)
	}

	ty, tm, td := target.Date()
	var matched []string
	for _, info := range infos {
		y, m, d := info.ModTime().Local().Date()
		if y == ty && m == tm && d == td {
			matched = append(matched, filepath.Join(a.logDir, info.Name()))
		}
	}
	if len(matched) == 0 {
		logger.Info("nothing to archive for date")
		return rep, nil
	}

	archiveName := fmt.Sprintf("%s%s.zip", DailyPrefix, dateStr)
	var added []string
	err = a.writeDurable(archiveName, rep.RunID, func(w io.Writer) error {
		var failures []ItemError
		var err error
		added, failures, err = zipFiles(w, matched)
		rep.Failures = append(rep.Failures, failures...)
		return err
	})
	if err != nil {
		return rep, fmt.Errorf("archive: write daily archive: %w", err)
	}
	if len(added) == 0 {
		// all matches vanished mid-pass
		_ = os.Remove(filepath.Join(a.archiveDir, archiveName))
		logger.Info("nothing to archive for date")
		return rep, nil
	}

	entry, err := a.entryFor(archiveName)
	if err != nil {
		return rep, err
	}
	rep.Entry = &entry
	rep.FilesAdded = len(added)
	logger.Info("daily archive created",
		log.Str("archive", archiveName), log.Int("files", len(added)))
	return rep, nil
}
