package record

import (
	"fmt"
	"time"
)

// Severity names, ordered least to most severe.
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

var severityRank = map[string]int{
	LevelDebug:    0,
	LevelInfo:     1,
	LevelWarning:  2,
	LevelError:    3,
	LevelCritical: 4,
}

// SeverityRank returns the ordinal of a level name, or -1 for unknown
// levels.
func SeverityRank(level string) int {
	if r, ok := severityRank[level]; ok {
		return r
	}
	return -1
}

// Record is one persisted log entry.
type Record struct {
	Timestamp time.Time
	Level     string
	Logger    string
	Message   string
	Module    string
	Function  string
	Line      int

	// Attrs holds caller-supplied attributes that were merged at the top
	// level of the JSON object.
	Attrs map[string]interface{}

	// Exception carries serialized failure text on error-and-above records.
	// It is never reconstructed into a live error value.
	Exception string
}

// Timestamp layouts accepted when reading back persisted records.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000Z",
	time.RFC3339Nano,
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
