// Package id provides short, sortable run identifiers.
//
// A RunID names one maintenance pass. It is encoded as
// <ms_timestamp_hex>-<sequence_hex>, so lexical order on IDs of equal width
// preserves chronological order, and IDs generated within the same
// millisecond remain strictly increasing by sequence.
//
// The Generator is monotonic per process: if the system clock regresses it
// pins to the last seen millisecond and keeps incrementing the sequence.
//
// Usage
//
//	g := id.NewGenerator()
//	run := g.Next()
//	logger.Info("pass started", log.Str("run_id", run.String()))
package id
