// Package rotate implements baler's size-bounded rotating log writer.
//
// # Overview
//
// A Writer appends to a single active file. After each write it checks the
// file size against the policy's byte ceiling; on crossing it freezes the
// active file under the numeric suffix .1 (shifting existing .1..N backups
// up, deleting the one that would pass the backup ceiling) and reopens a
// fresh active file. Rotation happens strictly between writes, so a record
// written with one Write call is never split across files.
//
// API surface (internal)
//
//	w, _ := rotate.Open("logs/app.json.log", rotate.Policy{MaxBytes: 10 << 20, MaxBackups: 30})
//	_, _ = w.Write(line) // one record per call
//	_ = w.Close()
//
//	// Oldest-to-newest read order across the chain:
//	paths := rotate.Chain("logs/app.json.log", 30)
//
// # Ownership
//
// One Writer exclusively owns the active file for its stream. Maintenance
// processes only ever see frozen (renamed) files, which is the
// mutual-exclusion boundary between writing and archival.
package rotate
