package font

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// writeFont writes data to a file in a temporary directory and returns its
// path.
func writeFont(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func goRegularFile(t *testing.T) string {
	return writeFont(t, "GoRegular.ttf", goregular.TTF)
}

// --- Fake engine -----------------------------------------------------------

// fakeEngine counts calls to Init and hands out fakeParsers, or fails if
// err is set.
type fakeEngine struct {
	inits  int32
	err    error
	parser *fakeParser
}

func (e *fakeEngine) Init(data []byte) (Parser, error) {
	atomic.AddInt32(&e.inits, 1)
	if e.err != nil {
		return nil, e.err
	}
	if e.parser == nil {
		return nil, nil
	}
	return e.parser, nil
}

func (e *fakeEngine) Inits() int {
	return int(atomic.LoadInt32(&e.inits))
}

var errFakeParse = errors.New("fake engine refuses to parse")

// fakeParser returns a fixed bitmap result and a fixed kerning value.
type fakeParser struct {
	bitmap     []byte
	w, h       int
	xoff, yoff int
	kern       int
	released   int32
}

func (p *fakeParser) ScaleForPixelHeight(px float32) float32 {
	return px / 1000
}

func (p *fakeParser) CodepointBitmap(scale float32, r rune) ([]byte, int, int, int, int) {
	return p.bitmap, p.w, p.h, p.xoff, p.yoff
}

func (p *fakeParser) CodepointKernAdvance(r1, r2 rune) int {
	return p.kern
}

func (p *fakeParser) Release() {
	atomic.AddInt32(&p.released, 1)
}
