package log

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fastjson"
)

func sampleEntry(level Level) *Entry {
	return &Entry{
		Timestamp: time.Date(2026, 8, 29, 10, 15, 30, 123456000, time.UTC),
		Level:     level,
		Logger:    "baler.archive",
		Message:   "hello",
		Module:    "compress",
		Function:  "Compress",
		Line:      42,
	}
}

func TestJSONFormatterFixedFields(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.Format(sampleEntry(InfoLevel))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	v, err := fastjson.ParseBytes(out)
	if err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if got := string(v.GetStringBytes("timestamp")); got != "2026-08-29T10:15:30.123456Z" {
		t.Fatalf("timestamp %q", got)
	}
	if got := string(v.GetStringBytes("level")); got != "INFO" {
		t.Fatalf("level %q", got)
	}
	if got := string(v.GetStringBytes("logger")); got != "baler.archive" {
		t.Fatalf("logger %q", got)
	}
	if got := string(v.GetStringBytes("message")); got != "hello" {
		t.Fatalf("message %q", got)
	}
	if got := v.GetInt("line"); got != 42 {
		t.Fatalf("line %d", got)
	}
	if v.Exists("exception") {
		t.Fatalf("exception must be absent without an error")
	}
}

func TestJSONFormatterMergesFieldsTopLevel(t *testing.T) {
	e := sampleEntry(InfoLevel)
	e.Fields = Fields{"request_id": "abc123", "duration_ms": 12.5, "level": "spoofed"}
	out, err := (&JSONFormatter{}).Format(e)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	v, err := fastjson.ParseBytes(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := string(v.GetStringBytes("request_id")); got != "abc123" {
		t.Fatalf("request_id %q", got)
	}
	if got := v.GetFloat64("duration_ms"); got != 12.5 {
		t.Fatalf("duration_ms %v", got)
	}
	// reserved keys cannot be overridden
	if got := string(v.GetStringBytes("level")); got != "INFO" {
		t.Fatalf("reserved key overridden: %q", got)
	}
}

func TestJSONFormatterExceptionOnErrorOnly(t *testing.T) {
	f := &JSONFormatter{}

	e := sampleEntry(ErrorLevel)
	e.Err = errors.New("disk full")
	out, _ := f.Format(e)
	v, err := fastjson.ParseBytes(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := string(v.GetStringBytes("exception")); got != "disk full" {
		t.Fatalf("exception %q", got)
	}

	// below ERROR the error does not serialize as exception
	e = sampleEntry(WarnLevel)
	e.Err = errors.New("disk full")
	out, _ = f.Format(e)
	v, err = fastjson.ParseBytes(out)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Exists("exception") {
		t.Fatalf("exception must be absent below ERROR")
	}
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{}
	out, err := f.Format(sampleEntry(WarnLevel))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "WARNING") || !strings.Contains(s, "baler.archive") || !strings.Contains(s, "hello") {
		t.Fatalf("text line: %q", s)
	}
	if strings.Contains(s, "\033[") {
		t.Fatalf("colors must be off by default: %q", s)
	}

	colored, _ := (&TextFormatter{Color: true}).Format(sampleEntry(ErrorLevel))
	if !strings.Contains(string(colored), "\033[31mERROR\033[0m") {
		t.Fatalf("expected red ERROR: %q", colored)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warn", WarnLevel},
		{"Warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"critical", CriticalLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelOrdering(t *testing.T) {
	levels := []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, CriticalLevel}
	for i := 1; i < len(levels); i++ {
		if levels[i-1] >= levels[i] {
			t.Fatalf("%v should order below %v", levels[i-1], levels[i])
		}
	}
}
