package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// timestampLayout renders UTC times with microsecond precision; the Z suffix
// is appended literally since entries are always UTC.
const timestampLayout = "2006-01-02T15:04:05.000000"

// JSONFormatter renders entries as single-line JSON objects in the persisted
// record format. Caller-supplied fields are merged at the top level; reserved
// keys cannot be overridden.
type JSONFormatter struct{}

var reservedKeys = map[string]struct{}{
	"timestamp": {}, "level": {}, "logger": {}, "message": {},
	"module": {}, "function": {}, "line": {}, "exception": {},
}

// Format implements Formatter.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, `{"timestamp":"`...)
	buf = entry.Timestamp.UTC().AppendFormat(buf, timestampLayout)
	buf = append(buf, `Z","level":`...)
	buf = strconv.AppendQuote(buf, entry.Level.String())
	buf = append(buf, `,"logger":`...)
	buf = strconv.AppendQuote(buf, entry.Logger)
	buf = append(buf, `,"message":`...)
	buf = strconv.AppendQuote(buf, entry.Message)
	buf = append(buf, `,"module":`...)
	buf = strconv.AppendQuote(buf, entry.Module)
	buf = append(buf, `,"function":`...)
	buf = strconv.AppendQuote(buf, entry.Function)
	buf = append(buf, `,"line":`...)
	buf = strconv.AppendInt(buf, int64(entry.Line), 10)

	// Extra fields, sorted for stable output.
	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			if _, reserved := reservedKeys[k]; reserved {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v, err := json.Marshal(entry.Fields[k])
			if err != nil {
				v = []byte(strconv.Quote(fmt.Sprintf("%v", entry.Fields[k])))
			}
			buf = append(buf, ',')
			buf = strconv.AppendQuote(buf, k)
			buf = append(buf, ':')
			buf = append(buf, v...)
		}
	}

	if entry.Err != nil && entry.Level >= ErrorLevel {
		buf = append(buf, `,"exception":`...)
		buf = strconv.AppendQuote(buf, entry.Err.Error())
	}

	buf = append(buf, '}')
	return buf, nil
}

// ANSI colors per level for console output.
var levelColors = map[Level]string{
	DebugLevel:    "\033[36m", // cyan
	InfoLevel:     "\033[32m", // green
	WarnLevel:     "\033[33m", // yellow
	ErrorLevel:    "\033[31m", // red
	CriticalLevel: "\033[35m", // magenta
}

const colorReset = "\033[0m"

// TextFormatter renders entries as human-readable console lines:
//
//	2026-08-30 14:05:01 - INFO - maintenance - pass started
//
// With Color enabled the level name is wrapped in an ANSI color code.
type TextFormatter struct {
	Color bool
}

// Format implements Formatter.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	buf := make([]byte, 0, 128)
	buf = entry.Timestamp.Local().AppendFormat(buf, "2006-01-02 15:04:05")
	buf = append(buf, " - "...)
	if f.Color {
		buf = append(buf, levelColors[entry.Level]...)
		buf = append(buf, entry.Level.String()...)
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, entry.Level.String()...)
	}
	buf = append(buf, " - "...)
	buf = append(buf, entry.Logger...)
	buf = append(buf, " - "...)
	buf = append(buf, entry.Message...)
	if entry.Err != nil {
		buf = append(buf, ": "...)
		buf = append(buf, entry.Err.Error()...)
	}
	return buf, nil
}
