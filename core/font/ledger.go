package font

import (
	"fmt"
	"sync"
)

// Resource is a kind of buffer handed over to a caller.
type Resource int

// Resources tracked by a Ledger.
const (
	FontBuffer  Resource = iota // raw bytes of a font file
	ParserState                 // engine state bound to a font buffer
	GlyphBuffer                 // coverage bitmap of a glyph
	numResources
)

func (r Resource) String() string {
	switch r {
	case FontBuffer:
		return "font-buffer"
	case ParserState:
		return "parser-state"
	case GlyphBuffer:
		return "glyph-buffer"
	}
	return "<unknown>"
}

// Ledger is notified whenever a buffer changes owner. Acquire is called when
// a buffer is allocated on behalf of a caller, Return when the buffer is
// released. size is the byte size of the buffer (1 for parser state).
//
// Ledgers are used to track buffer lifetimes, e.g. for finding leaks in
// tests. Implementations must be safe for concurrent use.
type Ledger interface {
	Acquire(r Resource, size int)
	Return(r Resource, size int)
}

type nopLedger struct{}

func (nopLedger) Acquire(Resource, int) {}
func (nopLedger) Return(Resource, int)  {}

// CountingLedger is a Ledger which counts acquisitions and returns per
// resource kind.
type CountingLedger struct {
	mu       sync.Mutex
	live     [numResources]int
	bytes    [numResources]int
	acquired [numResources]int
}

var _ Ledger = &CountingLedger{}

// NewCountingLedger creates an empty ledger.
func NewCountingLedger() *CountingLedger {
	return &CountingLedger{}
}

// Acquire is part of interface Ledger.
func (l *CountingLedger) Acquire(r Resource, size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live[r]++
	l.bytes[r] += size
	l.acquired[r]++
}

// Return is part of interface Ledger.
func (l *CountingLedger) Return(r Resource, size int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live[r]--
	l.bytes[r] -= size
}

// Live returns the number of buffers of kind r currently held by callers.
func (l *CountingLedger) Live(r Resource) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live[r]
}

// Bytes returns the number of bytes of kind r currently held by callers.
func (l *CountingLedger) Bytes(r Resource) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bytes[r]
}

// Acquired returns the number of buffers of kind r ever acquired.
func (l *CountingLedger) Acquired(r Resource) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquired[r]
}

// Balanced is a predicate: have all buffers been returned?
func (l *CountingLedger) Balanced() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for r := Resource(0); r < numResources; r++ {
		if l.live[r] != 0 || l.bytes[r] != 0 {
			return false
		}
	}
	return true
}

func (l *CountingLedger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := ""
	for r := Resource(0); r < numResources; r++ {
		s += fmt.Sprintf("%s: %d live (%d bytes), %d acquired; ", r, l.live[r], l.bytes[r], l.acquired[r])
	}
	return s
}
