package font

import (
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/parameters"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Test Suite Preparation ------------------------------------------------

type LoadTestEnviron struct {
	suite.Suite
	ledger *CountingLedger
}

// listen for 'go test' command --> run test methods
func TestLoadFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphs.font")
	defer teardown()
	suite.Run(t, new(LoadTestEnviron))
}

// run once, before test suite methods
func (env *LoadTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("glyphs.font").SetTraceLevel(tracing.LevelInfo)
}

// run before every test method
func (env *LoadTestEnviron) SetupTest() {
	env.ledger = NewCountingLedger()
}

// run after every test method
func (env *LoadTestEnviron) TearDownTest() {
	env.True(env.ledger.Balanced(), "leaked buffers: %s", env.ledger)
}

// --- Tests -----------------------------------------------------------------

func (env *LoadTestEnviron) TestLoadValidFont() {
	path := goRegularFile(env.T())
	f, err := LoadFont(path, "Go", WithLedger(env.ledger))
	env.Require().NoError(err)
	env.True(f.Valid())
	env.Equal(len(goregular.TTF), f.Len(), "expected font buffer to hold the complete file")
	env.Equal("TrueType", f.Format())
	env.Equal(path, f.Path())
	env.Equal("Go", f.Name())
	env.Greater(f.NumGlyphs(), 0)
	env.NotEmpty(f.FullName())
	env.Equal(1, env.ledger.Live(FontBuffer))
	env.Equal(1, env.ledger.Live(ParserState))
	env.Equal(len(goregular.TTF), env.ledger.Bytes(FontBuffer))
	f.Release()
	env.False(f.Valid())
	env.Zero(f.Len())
}

func (env *LoadTestEnviron) TestMissingFile() {
	f, err := LoadFont("/nonexistent/font/path.ttf", "missing", WithLedger(env.ledger))
	env.Nil(f)
	env.Equal(core.EMISSING, core.Code(err))
	env.Zero(env.ledger.Acquired(FontBuffer), "expected no buffer for a missing file")
	env.Zero(env.ledger.Acquired(ParserState))
}

func (env *LoadTestEnviron) TestInvalidSignature() {
	data := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, goregular.TTF[4:]...)
	path := writeFont(env.T(), "deadbeef.ttf", data)
	engine := &fakeEngine{parser: &fakeParser{}}
	f, err := LoadFont(path, "deadbeef", WithLedger(env.ledger), WithEngine(engine))
	env.Nil(f)
	env.Equal(core.EINVALID, core.Code(err))
	env.Zero(engine.Inits(), "expected engine not to see an invalid font")
	env.Zero(env.ledger.Acquired(ParserState), "expected no parser state for invalid font")
	env.Equal(1, env.ledger.Acquired(FontBuffer), "expected file to have been read")
}

func (env *LoadTestEnviron) TestEmptyFile() {
	path := writeFont(env.T(), "empty.ttf", []byte{})
	f, err := LoadFont(path, "empty", WithLedger(env.ledger))
	env.Nil(f)
	env.Equal(core.EINVALID, core.Code(err))
	f, err = ParseFont(nil, "empty", WithLedger(env.ledger))
	env.Nil(f)
	env.Equal(core.EINVALID, core.Code(err))
	env.Zero(env.ledger.Acquired(FontBuffer))
}

func (env *LoadTestEnviron) TestTooLarge() {
	path := goRegularFile(env.T())
	f, err := LoadFont(path, "Go", WithLedger(env.ledger), WithMaxSize(1024))
	env.Nil(f)
	env.Equal(core.EALLOC, core.Code(err))
	env.Zero(env.ledger.Acquired(FontBuffer))
}

func (env *LoadTestEnviron) TestMaxSizeFromParameters() {
	params := parameters.Defaults()
	params.Set(parameters.P_MAXFONTSIZE, 100)
	path := goRegularFile(env.T())
	f, err := LoadFont(path, "Go", WithLedger(env.ledger), WithParameters(params))
	env.Nil(f)
	env.Equal(core.EALLOC, core.Code(err))
}

func (env *LoadTestEnviron) TestShortRead() {
	o := makeOptions([]Option{WithLedger(env.ledger)})
	r := strings.NewReader("\x00\x01\x00\x00 is too short")
	data, err := readFontFile(r, 4096, "short", o)
	env.Nil(data)
	env.Equal(core.ESHORTREAD, core.Code(err))
	env.ErrorIs(err, io.ErrUnexpectedEOF)
	env.Equal(1, env.ledger.Acquired(FontBuffer))
}

func (env *LoadTestEnviron) TestParserInitFails() {
	path := goRegularFile(env.T())
	engine := &fakeEngine{err: errFakeParse}
	f, err := LoadFont(path, "Go", WithLedger(env.ledger), WithEngine(engine))
	env.Nil(f)
	env.Equal(core.EPARSE, core.Code(err))
	env.ErrorIs(err, errFakeParse)
	env.Equal(1, engine.Inits())
	env.Equal(1, env.ledger.Acquired(ParserState))
}

func (env *LoadTestEnviron) TestParserInitReturnsNil() {
	engine := &fakeEngine{}
	f, err := ParseFont([]byte("OTTO and nothing else"), "nil parser",
		WithLedger(env.ledger), WithEngine(engine))
	env.Nil(f)
	env.Equal(core.EPARSE, core.Code(err))
}

func (env *LoadTestEnviron) TestCollectionSignatureNotParseable() {
	data := append([]byte("wtcf"), goregular.TTF[4:]...)
	path := writeFont(env.T(), "collection.ttc", data)
	f, err := LoadFont(path, "wtcf", WithLedger(env.ledger))
	env.Nil(f)
	env.Equal(core.EPARSE, core.Code(err), "expected header check to pass and parsing to fail")
}

func (env *LoadTestEnviron) TestDoubleRelease() {
	engine := &fakeEngine{parser: &fakeParser{}}
	f, err := ParseFont([]byte("true font data"), "fake", WithLedger(env.ledger), WithEngine(engine))
	env.Require().NoError(err)
	env.Equal("AppleTrueType", f.Format())
	env.Empty(f.Path())
	env.Equal("fake", f.FullName())
	f.Release()
	f.Release()
	env.Equal(int32(1), engine.parser.released, "expected parser to be released exactly once")
	var nilFont *Font
	nilFont.Release()
	env.False(nilFont.Valid())
	env.Zero(nilFont.Len())
}

func (env *LoadTestEnviron) TestFallbackFont() {
	f, err := LoadFallbackFont(WithLedger(env.ledger))
	env.Require().NoError(err)
	env.Equal(FallbackName, f.Name())
	env.Equal(len(goregular.TTF), f.Len())
	f.Release()
	// the embedded font data must not be touched by releasing
	env.True(CheckSignature(goregular.TTF))
}
