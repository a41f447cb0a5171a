package font

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKerningIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.font")
	defer teardown()
	//
	f, err := LoadFallbackFont()
	require.NoError(t, err)
	defer f.Release()
	k := Kerning(f, 'A', 'V')
	for i := 0; i < 5; i++ {
		assert.Equal(t, k, Kerning(f, 'A', 'V'))
	}
	t.Logf("kern(A,V) = %d", k)
	assert.False(t, math.IsNaN(float64(KerningAt(f, 'A', 'V', 32))))
}

func TestKerningWithoutFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.font")
	defer teardown()
	//
	assert.Zero(t, Kerning(nil, 'A', 'V'))
	assert.Zero(t, KerningAt(nil, 'A', 'V', 12))
	f, err := LoadFallbackFont()
	require.NoError(t, err)
	f.Release()
	assert.Zero(t, Kerning(f, 'A', 'V'))
	assert.Zero(t, KerningAt(f, 'A', 'V', 12))
}

func TestKerningFromEngine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.font")
	defer teardown()
	//
	engine := &fakeEngine{parser: &fakeParser{kern: -80}}
	f, err := ParseFont([]byte("\x00\x01\x00\x00fake"), "fake", WithEngine(engine))
	require.NoError(t, err)
	defer f.Release()
	assert.Equal(t, -80, Kerning(f, 'T', 'o'))
	// fake engine scales by px/1000
	assert.InDelta(t, -0.8, KerningAt(f, 'T', 'o', 10), 1e-6)
}
