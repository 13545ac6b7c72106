// Package log provides baler's structured logging facade and registry.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Records flow through handlers,
// each pairing a minimum level, a Formatter, and an Output. This mirrors the
// usual console-plus-files arrangement: a colorized text handler on stdout,
// a JSON handler writing every level to a rotating file, and an error-only
// JSON handler writing to its own rotating file.
//
// Quick start
//
//	reg := log.NewRegistry()
//	err := reg.Setup(log.SetupOptions{
//	    Dir:        "logs",
//	    Level:      log.InfoLevel,
//	    MaxBytes:   10 << 20,
//	    MaxBackups: 30,
//	})
//	l := reg.Logger("maintenance")
//	l.Info("pass started", log.Str("run_id", "..."))
//
// # Registry
//
// The Registry binds handlers exactly once and hands out named logger
// handles. There is no package-level default logger and no hidden
// re-initialization; construct a Registry and pass Logger instances
// explicitly.
//
// # Wire format
//
// The JSONFormatter emits one self-contained JSON object per line:
// timestamp (ISO-8601 UTC, microseconds, Z suffix), level, logger, message,
// module/function/line source location, any caller-supplied fields merged at
// the top level, and exception text on error-and-above records carrying an
// error.
package log
