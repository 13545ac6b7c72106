package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/rzbill/baler/pkg/id"
	"github.com/rzbill/baler/pkg/log"
)

// Defaults for the maintenance surface.
const (
	DefaultOlderThanDays = 7
	DefaultKeepDays      = 30
)

// Archive name conventions.
const (
	DailyPrefix  = "logs_archive_"
	BundlePrefix = "logs_bundle_"
	dateLayout   = "2006-01-02"
)

// Format selects how Compress packages eligible files.
type Format string

const (
	// FormatZip compresses each eligible file into its own single-entry
	// zip named <source-name>.zip.
	FormatZip Format = "zip"
	// FormatGzip compresses each eligible file to <source-name>.gz.
	FormatGzip Format = "gz"
	// FormatBundle packs every eligible file of one invocation into a
	// single zip named with the bundle prefix and the invocation date.
	FormatBundle Format = "bundle"
)

// ParseFormat parses a format name. Empty input selects FormatZip.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zip":
		return FormatZip, nil
	case "gz", "gzip":
		return FormatGzip, nil
	case "bundle":
		return FormatBundle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Kind classifies how an archive was produced.
type Kind string

const (
	KindFile   Kind = "file"   // per-file compression
	KindDaily  Kind = "daily"  // dated daily bundle
	KindBundle Kind = "bundle" // ad-hoc invocation bundle
)

// Entry describes one archive on disk. Entries are immutable once created.
type Entry struct {
	Name    string
	Size    int64
	Created time.Time
	Path    string
	Kind    Kind
}

// ItemError records one per-file failure inside an otherwise successful
// pass.
type ItemError struct {
	Name string
	Err  error
}

// Sentinel errors.
var (
	ErrUnknownFormat = errors.New("unknown archive format")
	ErrBadDate       = errors.New("invalid date, want YYYY-MM-DD")
)

// Options configures Open.
type Options struct {
	// LogDir is the live log directory. It must exist.
	LogDir string
	// ArchiveDir is where archives land. Defaults to LogDir/archive and is
	// created if absent.
	ArchiveDir string
	// Clock supplies "now" for age eligibility. Defaults to the wall clock.
	Clock clock.Clock
	// Logger receives per-file progress and skip reports. Optional.
	Logger log.Logger
	// IDs generates the run identifiers carried in reports. Optional.
	IDs *id.Generator
}

// Archiver runs maintenance passes over one log directory. All state is
// derived from the filesystem; the zero Archiver is not usable, construct
// with Open.
type Archiver struct {
	logDir     string
	archiveDir string
	clk        clock.Clock
	logger     log.Logger
	ids        *id.Generator
}

// Open validates the directories and returns an Archiver. A missing or
// non-directory log path is a configuration error surfaced immediately.
func Open(opts Options) (*Archiver, error) {
	if opts.LogDir == "" {
		return nil, errors.New("archive: log dir not set")
	}
	info, err := os.Stat(opts.LogDir)
	if err != nil {
		return nil, fmt.Errorf("archive: log dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive: log dir %s is not a directory", opts.LogDir)
	}
	archiveDir := opts.ArchiveDir
	if archiveDir == "" {
		archiveDir = filepath.Join(opts.LogDir, "archive")
	}
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create archive dir: %w", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewRegistry().Logger("archive")
	}
	ids := opts.IDs
	if ids == nil {
		ids = id.NewGenerator()
	}
	return &Archiver{
		logDir:     opts.LogDir,
		archiveDir: archiveDir,
		clk:        clk,
		logger:     logger,
		ids:        ids,
	}, nil
}

// LogDir returns the live log directory.
func (a *Archiver) LogDir() string { return a.logDir }

// ArchiveDir returns the archive directory.
func (a *Archiver) ArchiveDir() string { return a.archiveDir }

// listRegular enumerates regular, non-hidden files directly under dir.
// Vanished entries are skipped.
func listRegular(dir string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]os.FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// kindOf infers an archive kind from its name.
func kindOf(name string) Kind {
	switch {
	case strings.HasPrefix(name, DailyPrefix):
		return KindDaily
	case strings.HasPrefix(name, BundlePrefix):
		return KindBundle
	default:
		return KindFile
	}
}

// entryFor stats one archive file.
func (a *Archiver) entryFor(name string) (Entry, error) {
	path := filepath.Join(a.archiveDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Name:    name,
		Size:    info.Size(),
		Created: info.ModTime(),
		Path:    path,
		Kind:    kindOf(name),
	}, nil
}
