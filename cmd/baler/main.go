package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rzbill/baler/internal/archive"
	"github.com/rzbill/baler/internal/config"
	logpkg "github.com/rzbill/baler/pkg/log"
)

// env holds the wiring shared by every subcommand.
type env struct {
	cfg      config.Config
	registry *logpkg.Registry
	logger   logpkg.Logger
	archiver *archive.Archiver
}

func (e *env) close() {
	if e.registry != nil {
		_ = e.registry.Close()
	}
}

func main() {
	var (
		configPath string
		logDir     string
		archiveDir string
		logLevel   string
	)

	// setup builds config from defaults, file, env, then flags, and wires
	// the registry and archiver.
	setup := func() (*env, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		config.FromEnv(&cfg)
		if logDir != "" {
			cfg.Logging.Dir = logDir
		}
		if archiveDir != "" {
			cfg.Archive.Dir = archiveDir
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		level, err := logpkg.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		reg := logpkg.NewRegistry()
		if err := reg.Setup(logpkg.SetupOptions{
			Dir:          cfg.Logging.Dir,
			Level:        level,
			MaxBytes:     cfg.Logging.MaxBytes,
			MaxBackups:   cfg.Logging.MaxBackups,
			Console:      cfg.Logging.Console,
			ConsoleColor: true,
		}); err != nil {
			return nil, fmt.Errorf("setup logging: %w", err)
		}
		logger := reg.Logger("baler.maintenance")

		a, err := archive.Open(archive.Options{
			LogDir:     cfg.Logging.Dir,
			ArchiveDir: cfg.Archive.Dir,
			Logger:     reg.Logger("baler.archive"),
		})
		if err != nil {
			_ = reg.Close()
			return nil, err
		}
		return &env{cfg: cfg, registry: reg, logger: logger, archiver: a}, nil
	}

	rootCmd := &cobra.Command{
		Use:           "baler",
		Short:         "Log rotation and archival maintenance",
		Long:          "Baler compresses aged log files, builds dated archive bundles, and enforces archive retention.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&archiveDir, "archive-dir", "", "Archive directory (default <log-dir>/archive)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Console log level: debug|info|warning|error|critical")

	// archive
	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Compress log files older than a threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("older-than-days")
			typ, _ := cmd.Flags().GetString("type")
			format, err := archive.ParseFormat(typ)
			if err != nil {
				return err
			}
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signalContext()
			defer stop()
			rep, err := e.archiver.Compress(ctx, days, format)
			if err != nil {
				return err
			}
			if len(rep.Created) == 0 {
				fmt.Println("nothing to compress")
			}
			for _, entry := range rep.Created {
				fmt.Printf("  - %s: %s\n", entry.Name, humanize.IBytes(uint64(entry.Size)))
			}
			return reportFailures(rep.Failures)
		},
	}
	archiveCmd.Flags().Int("older-than-days", archive.DefaultOlderThanDays, "Compress files older than this many days")
	archiveCmd.Flags().String("type", "zip", "Archive format: zip|gz|bundle")
	rootCmd.AddCommand(archiveCmd)

	// daily-archive
	dailyCmd := &cobra.Command{
		Use:   "daily-archive",
		Short: "Bundle one calendar day's log files into a dated archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signalContext()
			defer stop()
			rep, err := e.archiver.CreateDailyArchive(ctx, date)
			if err != nil {
				return err
			}
			if rep.Entry == nil {
				fmt.Printf("nothing to archive for %s\n", rep.Date)
				return nil
			}
			fmt.Printf("created %s (%d files, %s)\n",
				rep.Entry.Path, rep.FilesAdded, humanize.IBytes(uint64(rep.Entry.Size)))
			return reportFailures(rep.Failures)
		},
	}
	dailyCmd.Flags().String("date", "", "Target date YYYY-MM-DD (default yesterday)")
	rootCmd.AddCommand(dailyCmd)

	// cleanup
	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete archives older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("keep-days")
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signalContext()
			defer stop()
			rep, err := e.archiver.Cleanup(ctx, days)
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d archive(s)\n", rep.Deleted)
			return reportFailures(rep.Failures)
		},
	}
	cleanupCmd.Flags().Int("keep-days", archive.DefaultKeepDays, "Keep archives newer than this many days")
	rootCmd.AddCommand(cleanupCmd)

	// stats
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show log and archive inventory totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			st, err := e.archiver.Stats()
			if err != nil {
				return err
			}
			printStats(st)
			return nil
		},
	}
	rootCmd.AddCommand(statsCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archives, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			entries, err := e.archiver.ListArchives()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no archives")
				return nil
			}
			fmt.Printf("%d archive(s):\n", len(entries))
			for _, entry := range entries {
				fmt.Printf("  %-40s %10s  %s (%s)\n",
					entry.Name,
					humanize.IBytes(uint64(entry.Size)),
					entry.Created.Format(time.RFC3339),
					humanize.Time(entry.Created))
			}
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	// full-maintenance
	fullCmd := &cobra.Command{
		Use:   "full-maintenance",
		Short: "Compress aged logs, then sweep old archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			olderThan, _ := cmd.Flags().GetInt("older-than-days")
			keepDays, _ := cmd.Flags().GetInt("keep-days")
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			ctx, stop := signalContext()
			defer stop()
			fmt.Println("=== maintenance started ===")
			rep, err := e.archiver.FullMaintenance(ctx, olderThan, keepDays, archive.FormatZip)
			if err != nil {
				return err
			}
			fmt.Printf("stage 1: compressed %d file(s)\n", len(rep.Compress.Created))
			fmt.Printf("stage 2: deleted %d archive(s)\n", rep.Cleanup.Deleted)
			fmt.Println("stage 3: inventory")
			printStats(rep.Stats)
			fmt.Println("=== maintenance complete ===")

			failures := append(rep.Compress.Failures, rep.Cleanup.Failures...)
			return reportFailures(failures)
		},
	}
	fullCmd.Flags().Int("older-than-days", archive.DefaultOlderThanDays, "Compress files older than this many days")
	fullCmd.Flags().Int("keep-days", archive.DefaultKeepDays, "Keep archives newer than this many days")
	rootCmd.AddCommand(fullCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// signalContext is canceled by SIGINT/SIGTERM. The caller must invoke stop
// to release the signal registration.
func signalContext() (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printStats(st *archive.Stats) {
	fmt.Println("log files:")
	printSet(st.Logs)
	fmt.Println("archives:")
	printSet(st.Archives)
}

func printSet(s archive.SetStats) {
	fmt.Printf("  count: %d, total: %s\n", s.Count, humanize.IBytes(uint64(s.TotalBytes)))
	if !s.Oldest.IsZero() {
		fmt.Printf("  oldest: %s, newest: %s\n",
			s.Oldest.Format(time.RFC3339), s.Newest.Format(time.RFC3339))
	}
}

// reportFailures prints per-item failures and returns an error when any
// occurred, so partial success still exits nonzero.
func reportFailures(failures []archive.ItemError) error {
	if len(failures) == 0 {
		return nil
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "  failed: %s: %v\n", f.Name, f.Err)
	}
	return fmt.Errorf("%d item(s) failed", len(failures))
}
