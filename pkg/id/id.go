package id

import (
	"fmt"
	"sync"
	"time"
)

// RunID identifies one maintenance pass.
type RunID string

// String returns the ID's textual form.
func (r RunID) String() string { return string(r) }

// NowMs returns current time in milliseconds since Unix epoch. Overridable
// in tests.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Generator produces monotonically increasing RunIDs per process.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint32
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// Next returns a new RunID. If the clock goes backwards, it reuses the last
// seen millisecond and increments the sequence.
func (g *Generator) Next() RunID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMs()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.seq++
	} else {
		g.seq = 0
	}
	g.lastMs = ms
	return RunID(fmt.Sprintf("%011x-%04x", ms, g.seq))
}
