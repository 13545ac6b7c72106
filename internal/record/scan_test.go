package record

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/valyala/fastjson"
)

const sampleLine = `{"timestamp":"2026-08-29T10:15:30.123456Z","level":"ERROR","logger":"baler.archive","message":"compression failed","module":"compress","function":"Compress","line":42,"file":"app.log","duration_ms":12.5,"exception":"open app.log: permission denied"}`

func TestParseLine(t *testing.T) {
	var p fastjson.Parser
	rec, err := ParseLine(&p, []byte(sampleLine))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2026, 8, 29, 10, 15, 30, 123456000, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Fatalf("timestamp %v, want %v", rec.Timestamp, want)
	}
	if rec.Level != LevelError {
		t.Fatalf("level %q", rec.Level)
	}
	if rec.Logger != "baler.archive" || rec.Message != "compression failed" {
		t.Fatalf("identity fields wrong: %+v", rec)
	}
	if rec.Module != "compress" || rec.Function != "Compress" || rec.Line != 42 {
		t.Fatalf("source location wrong: %+v", rec)
	}
	if rec.Exception == "" {
		t.Fatalf("expected exception text")
	}
	if rec.Attrs["file"] != "app.log" {
		t.Fatalf("attrs missing file: %v", rec.Attrs)
	}
	if rec.Attrs["duration_ms"] != 12.5 {
		t.Fatalf("attrs missing duration: %v", rec.Attrs)
	}
	if _, leaked := rec.Attrs["exception"]; leaked {
		t.Fatalf("fixed key leaked into attrs")
	}
}

func TestParseLineRejectsUnknownLevel(t *testing.T) {
	var p fastjson.Parser
	_, err := ParseLine(&p, []byte(`{"timestamp":"2026-08-29T10:15:30.000000Z","level":"NOTICE","logger":"x","message":"y"}`))
	if err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestParseLineRejectsGarbage(t *testing.T) {
	var p fastjson.Parser
	if _, err := ParseLine(&p, []byte(`not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ParseLine(&p, []byte(`[1,2]`)); err == nil {
		t.Fatalf("expected non-object error")
	}
}

func TestSeverityOrdering(t *testing.T) {
	order := []string{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	for i := 1; i < len(order); i++ {
		if SeverityRank(order[i-1]) >= SeverityRank(order[i]) {
			t.Fatalf("%s should rank below %s", order[i-1], order[i])
		}
	}
	if SeverityRank("NOTICE") != -1 {
		t.Fatalf("unknown level should rank -1")
	}
}

func TestScanFileSkipsBlankAndReportsPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json.log")
	content := sampleLine + "\n\n" + sampleLine + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var n int
	if err := ScanFile(path, func(Record) error { n++; return nil }); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 records, got %d", n)
	}

	if err := os.WriteFile(path, []byte(sampleLine+"\nbroken\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := ScanFile(path, func(Record) error { return nil })
	if err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestReadFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	mkfile := func(name, msg string) string {
		line := `{"timestamp":"2026-08-29T10:15:30.000000Z","level":"INFO","logger":"l","message":"` + msg + `"}` + "\n"
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(line), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		return p
	}
	older := mkfile("app.log.1", "first")
	active := mkfile("app.log", "second")

	recs, err := ReadFiles(older, active)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 || recs[0].Message != "first" || recs[1].Message != "second" {
		t.Fatalf("order wrong: %+v", recs)
	}
}
