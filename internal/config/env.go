package config

import (
	"os"
	"strconv"
)

// FromEnv overlays BALER_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("BALER_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("BALER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BALER_LOG_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Logging.MaxBytes = n
		}
	}
	if v := os.Getenv("BALER_LOG_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Logging.MaxBackups = n
		}
	}
	if v := os.Getenv("BALER_LOG_CONSOLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.Console = b
		}
	}
	if v := os.Getenv("BALER_ARCHIVE_DIR"); v != "" {
		cfg.Archive.Dir = v
	}
	if v := os.Getenv("BALER_COMPRESS_AFTER_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Archive.CompressAfterDays = n
		}
	}
	if v := os.Getenv("BALER_KEEP_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Archive.KeepDays = n
		}
	}
	if v := os.Getenv("BALER_ARCHIVE_FORMAT"); v != "" {
		cfg.Archive.Format = v
	}
}
