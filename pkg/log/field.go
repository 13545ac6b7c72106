package log

import "time"

// Field is one structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

const errFieldKey = "error"

// Str returns a string field.
func Str(key, value string) Field { return Field{Key: key, Value: value} }

// Int returns an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 returns an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Float64 returns a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool returns a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Duration returns the duration in milliseconds under key.
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: float64(d) / float64(time.Millisecond)}
}

// Err attaches failure context to the entry. On error-and-above entries the
// JSON formatter serializes it as the exception field.
func Err(err error) Field { return Field{Key: errFieldKey, Value: err} }

// Component tags entries with a component name.
func Component(name string) Field { return Field{Key: "component", Value: name} }
