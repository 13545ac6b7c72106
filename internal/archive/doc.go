// Package archive implements baler's maintenance engine: compression of
// aged logs, dated daily bundles, retention sweeps, and inventory reporting.
//
// # Overview
//
// An Archiver is bound to a log directory and an archive directory. It owns
// no persistent state: every operation is a single synchronous pass that
// derives all decisions from filesystem metadata scanned at invocation time,
// which makes each operation safely re-runnable.
//
//	a, _ := archive.Open(archive.Options{LogDir: "logs"})
//	rep, _ := a.Compress(ctx, 7, archive.FormatZip)   // *.zip / *.gz per file
//	_, _ = a.CreateDailyArchive(ctx, "")              // yesterday's bundle
//	_, _ = a.Cleanup(ctx, 30)                         // retention sweep
//	st, _ := a.Stats()                                // read-only inventory
//
// # Mutation discipline
//
// Archives are written to a dot-prefixed temporary file in the archive
// directory, synced, then renamed into place; a source file is deleted only
// after its archive is durable. Files that vanish between enumeration and
// action are treated as already handled, not as errors. A single failing
// file never aborts a pass: it is recorded in the report's Failures and the
// scan continues.
//
// # Time
//
// "Now" comes from an injected clock so age eligibility is deterministic
// under test. File ages always come from modification times on disk.
package archive
