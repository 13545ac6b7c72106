package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "INFO" {
		t.Fatalf("level %q", cfg.Logging.Level)
	}
	if cfg.Logging.MaxBytes != 10<<20 {
		t.Fatalf("maxBytes %d", cfg.Logging.MaxBytes)
	}
	if cfg.Logging.MaxBackups != 30 {
		t.Fatalf("maxBackups %d", cfg.Logging.MaxBackups)
	}
	if !cfg.Logging.Console {
		t.Fatalf("console should default on")
	}
	if cfg.Archive.CompressAfterDays != 7 || cfg.Archive.KeepDays != 30 {
		t.Fatalf("archive defaults %+v", cfg.Archive)
	}
	if cfg.Archive.Format != "zip" {
		t.Fatalf("format %q", cfg.Archive.Format)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baler.yaml")
	data := `
logging:
  dir: /var/log/myapp
  level: DEBUG
  maxBackups: 5
archive:
  keepDays: 90
  format: gz
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Dir != "/var/log/myapp" || cfg.Logging.Level != "DEBUG" {
		t.Fatalf("logging %+v", cfg.Logging)
	}
	if cfg.Logging.MaxBackups != 5 {
		t.Fatalf("maxBackups %d", cfg.Logging.MaxBackups)
	}
	// unset keys keep defaults
	if cfg.Logging.MaxBytes != 10<<20 {
		t.Fatalf("maxBytes %d", cfg.Logging.MaxBytes)
	}
	if cfg.Archive.KeepDays != 90 || cfg.Archive.Format != "gz" {
		t.Fatalf("archive %+v", cfg.Archive)
	}
	if cfg.Archive.CompressAfterDays != 7 {
		t.Fatalf("compressAfterDays %d", cfg.Archive.CompressAfterDays)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baler.json")
	data := `{"logging": {"level": "WARNING"}, "archive": {"compressAfterDays": 3}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "WARNING" {
		t.Fatalf("level %q", cfg.Logging.Level)
	}
	if cfg.Archive.CompressAfterDays != 3 {
		t.Fatalf("compressAfterDays %d", cfg.Archive.CompressAfterDays)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BALER_LOG_DIR", "/tmp/envlogs")
	t.Setenv("BALER_LOG_LEVEL", "ERROR")
	t.Setenv("BALER_LOG_MAX_BYTES", "1048576")
	t.Setenv("BALER_LOG_MAX_BACKUPS", "3")
	t.Setenv("BALER_LOG_CONSOLE", "false")
	t.Setenv("BALER_ARCHIVE_DIR", "/tmp/envarch")
	t.Setenv("BALER_COMPRESS_AFTER_DAYS", "1")
	t.Setenv("BALER_KEEP_DAYS", "14")
	t.Setenv("BALER_ARCHIVE_FORMAT", "gz")

	cfg := Default()
	FromEnv(&cfg)

	if cfg.Logging.Dir != "/tmp/envlogs" || cfg.Logging.Level != "ERROR" {
		t.Fatalf("logging %+v", cfg.Logging)
	}
	if cfg.Logging.MaxBytes != 1048576 || cfg.Logging.MaxBackups != 3 {
		t.Fatalf("rotation %+v", cfg.Logging)
	}
	if cfg.Logging.Console {
		t.Fatalf("console should be off")
	}
	if cfg.Archive.Dir != "/tmp/envarch" || cfg.Archive.CompressAfterDays != 1 {
		t.Fatalf("archive %+v", cfg.Archive)
	}
	if cfg.Archive.KeepDays != 14 || cfg.Archive.Format != "gz" {
		t.Fatalf("archive %+v", cfg.Archive)
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("BALER_KEEP_DAYS", "soon")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.Archive.KeepDays != 30 {
		t.Fatalf("keepDays %d", cfg.Archive.KeepDays)
	}
}

func TestDefaultLogDirXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	if got := DefaultLogDir(); got != filepath.Join("/tmp/xdg-state", "baler", "logs") {
		t.Fatalf("dir %q", got)
	}
}
