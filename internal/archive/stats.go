package archive

import (
	"fmt"
	"os"
	"sort"
	"time"
)

// SetStats aggregates one file set.
type SetStats struct {
	Count      int
	TotalBytes int64
	// Oldest and Newest are modification times; zero when the set is empty.
	Oldest time.Time
	Newest time.Time
}

// Stats aggregates the live-log set and the archive set independently.
type Stats struct {
	Logs     SetStats
	Archives SetStats
}

// Stats computes read-only aggregates over both directories.
func (a *Archiver) Stats() (*Stats, error) {
	logs, err := setStats(a.logDir)
	if err != nil {
		return nil, fmt.Errorf("archive: log stats: %w", err)
	}
	archives, err := setStats(a.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("archive: archive stats: %w", err)
	}
	return &Stats{Logs: logs, Archives: archives}, nil
}

func setStats(dir string) (SetStats, error) {
	var st SetStats
	infos, err := listRegular(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	for _, info := range infos {
		st.Count++
		st.TotalBytes += info.Size()
		mtime := info.ModTime()
		if st.Oldest.IsZero() || mtime.Before(st.Oldest) {
			st.Oldest = mtime
		}
		if mtime.After(st.Newest) {
			st.Newest = mtime
		}
	}
	return st, nil
}

// ListArchives returns archive entries sorted by creation time, newest
// first. Read-only and side-effect-free.
func (a *Archiver) ListArchives() ([]Entry, error) {
	infos, err := listRegular(a.archiveDir)
	if err != nil {
		return nil, fmt.Errorf("archive: scan archive dir: %w", err)
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entry, err := a.entryFor(info.Name())
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})
	return entries, nil
}
