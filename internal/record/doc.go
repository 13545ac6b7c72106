// Package record defines the persisted log record model and a reader for
// the newline-delimited JSON files the rotating writer produces.
//
// Each line is one immutable, self-contained record: timestamp (ISO-8601
// UTC with microsecond precision), level, logger name, message, source
// location, caller-supplied attributes merged at the top level, and optional
// exception text on error-and-above records. Parsing uses fastjson so large
// files can be scanned without reflective unmarshal per line.
package record
