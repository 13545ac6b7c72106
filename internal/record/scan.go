package record

import (
	"bufio"
	"fmt"
	"os"

	"github.com/valyala/fastjson"
)

// fixed keys of the wire format; anything else lands in Attrs.
var wireKeys = map[string]struct{}{
	"timestamp": {}, "level": {}, "logger": {}, "message": {},
	"module": {}, "function": {}, "line": {}, "exception": {},
}

// ParseLine decodes one NDJSON line into a Record.
func ParseLine(p *fastjson.Parser, line []byte) (Record, error) {
	v, err := p.ParseBytes(line)
	if err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}
	obj, err := v.Object()
	if err != nil {
		return Record{}, fmt.Errorf("record is not an object: %w", err)
	}

	var rec Record
	ts, err := parseTimestamp(string(v.GetStringBytes("timestamp")))
	if err != nil {
		return Record{}, err
	}
	rec.Timestamp = ts
	rec.Level = string(v.GetStringBytes("level"))
	if SeverityRank(rec.Level) < 0 {
		return Record{}, fmt.Errorf("unknown level %q", rec.Level)
	}
	rec.Logger = string(v.GetStringBytes("logger"))
	rec.Message = string(v.GetStringBytes("message"))
	rec.Module = string(v.GetStringBytes("module"))
	rec.Function = string(v.GetStringBytes("function"))
	rec.Line = v.GetInt("line")
	rec.Exception = string(v.GetStringBytes("exception"))

	obj.Visit(func(key []byte, val *fastjson.Value) {
		if _, fixed := wireKeys[string(key)]; fixed {
			return
		}
		if rec.Attrs == nil {
			rec.Attrs = map[string]interface{}{}
		}
		rec.Attrs[string(key)] = attrValue(val)
	})
	return rec, nil
}

func attrValue(v *fastjson.Value) interface{} {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeNull:
		return nil
	default:
		// nested objects/arrays kept as raw JSON text
		return v.String()
	}
}

// ScanFile calls fn for every record in one NDJSON file, in file order.
// Blank lines are skipped; a malformed line aborts the scan with an error
// naming its position.
func ScanFile(path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var p fastjson.Parser
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64<<10), 8<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := ParseLine(&p, line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadFiles reads every record across paths in the given order. Pass a
// rotation chain in oldest-to-newest order to recover a stream's full
// history.
func ReadFiles(paths ...string) ([]Record, error) {
	var out []Record
	for _, path := range paths {
		err := ScanFile(path, func(r Record) error {
			out = append(out, r)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
