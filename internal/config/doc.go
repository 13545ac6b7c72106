// Package config provides loading and environment overlay for baler
// configuration. It exposes a Default() baseline, Load() for YAML or JSON
// files (by extension), and FromEnv() to overlay BALER_* environment
// variables.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/baler.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
