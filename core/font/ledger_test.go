package font

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountingLedger(t *testing.T) {
	l := NewCountingLedger()
	assert.True(t, l.Balanced())
	l.Acquire(FontBuffer, 100)
	l.Acquire(ParserState, 1)
	assert.False(t, l.Balanced())
	assert.Equal(t, 100, l.Bytes(FontBuffer))
	l.Return(ParserState, 1)
	l.Return(FontBuffer, 100)
	assert.True(t, l.Balanced())
	assert.Equal(t, 1, l.Acquired(FontBuffer))
	assert.Contains(t, l.String(), "font-buffer: 0 live")
}

func TestLedgerConcurrency(t *testing.T) {
	l := NewCountingLedger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Acquire(GlyphBuffer, 64)
			l.Return(GlyphBuffer, 64)
		}()
	}
	wg.Wait()
	assert.True(t, l.Balanced())
	assert.Equal(t, 50, l.Acquired(GlyphBuffer))
}
