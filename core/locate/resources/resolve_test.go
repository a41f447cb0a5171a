package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/glyphbridge/core/parameters"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func fontsDir(t *testing.T) *parameters.Parameters {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "GoMono.ttf"), gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	params := parameters.Defaults()
	params.Set(parameters.P_FONTSDIR, dir)
	return params
}

func TestFontPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.resources")
	defer teardown()
	//
	params := fontsDir(t)
	dir := params.S(parameters.P_FONTSDIR)
	p, err := FontPath("GoMono.ttf", params)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "GoMono.ttf"), p)
	p, err = FontPath("GoMono", params)
	require.NoError(t, err, "expected extension to be guessed")
	assert.Equal(t, filepath.Join(dir, "GoMono.ttf"), p)
	p, err = FontPath(filepath.Join(dir, "GoMono.ttf"), nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "GoMono.ttf"), p)
}

func TestFontPathNotFound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.resources")
	defer teardown()
	//
	params := fontsDir(t)
	_, err := FontPath("zz-no-such-font-7c1e.ttf", params)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = FontPath(filepath.Join(t.TempDir(), "missing.ttf"), params)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.resources")
	defer teardown()
	//
	ledger := font.NewCountingLedger()
	f, err := LoadFont("GoMono", fontsDir(t), font.WithLedger(ledger))
	require.NoError(t, err)
	assert.Equal(t, len(gomono.TTF), f.Len())
	assert.Equal(t, "GoMono", f.Name())
	f.Release()
	assert.True(t, ledger.Balanced())
	//
	params := fontsDir(t)
	params.Set(parameters.P_MAXFONTSIZE, 16)
	_, err = LoadFont("GoMono", params)
	assert.Equal(t, core.EALLOC, core.Code(err), "expected loader to respect max font size")
}

func TestResolveFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.resources")
	defer teardown()
	//
	promise := ResolveFont("GoMono", fontsDir(t))
	f, err := promise.Font()
	require.NoError(t, err)
	g, _ := promise.Font()
	assert.Same(t, f, g, "expected promise to deliver the same font twice")
	f.Release()
	//
	_, err = ResolveFont("zz-no-such-font-7c1e", fontsDir(t)).Font()
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestResolveFontCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.resources")
	defer teardown()
	//
	ledger := font.NewCountingLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, err := ResolveFont("GoMono", fontsDir(t), font.WithLedger(ledger)).Await(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, f)
	} else { // font has been faster than cancellation
		f.Release()
	}
	assert.Eventually(t, ledger.Balanced, time.Second, 10*time.Millisecond,
		"expected font of cancelled promise to be released")
}
