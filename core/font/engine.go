package font

import (
	"github.com/npillmayer/glyphbridge/core/font/sfntraster"
)

// Engine is a rasterization engine. It parses font data into a parser state
// which then answers metric, bitmap and kerning queries.
//
// Engine implementations have to accept data with any of the known
// signatures, but may fail on any of them. Only the first font of a font
// collection will be used.
type Engine interface {
	// Init creates parser state bound to data. The parser state may hold
	// references into data, which will not be modified as long as the
	// parser state is alive.
	Init(data []byte) (Parser, error)
}

// Parser is the per-font state of an engine.
//
// Font holds a Parser for its entire lifetime and calls its methods
// concurrently from multiple goroutines. Implementations must be safe for
// concurrent read-only use.
type Parser interface {
	// ScaleForPixelHeight returns the factor converting font design units to
	// pixels, for a glyph height (ascender to descender) of px pixels.
	ScaleForPixelHeight(px float32) float32
	// CodepointBitmap renders the glyph for r with a scale factor, as
	// returned by ScaleForPixelHeight. It returns a coverage bitmap (one
	// byte per pixel, row major) and the offset of the bitmap's top left
	// corner relative to the pen position, y axis pointing down.
	// A nil bitmap signals failure.
	CodepointBitmap(scale float32, r rune) (bitmap []byte, w, h, xoff, yoff int)
	// CodepointKernAdvance returns the kerning between r1 and r2 in
	// font design units, or 0 if the font has no kerning for this pair.
	CodepointKernAdvance(r1, r2 rune) int
}

// releaser is implemented by parser state which wants to be notified when
// its font is released.
type releaser interface {
	Release()
}

// describer is implemented by parser state which knows about font names and
// glyph counts.
type describer interface {
	FullName() string
	NumGlyphs() int
}

// sfntEngine adapts package sfntraster to interface Engine.
type sfntEngine struct{}

func (sfntEngine) Init(data []byte) (Parser, error) {
	p, err := sfntraster.Init(data)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultEngine returns the engine used if no other engine is configured.
// It is based on golang.org/x/image/font/sfnt.
func DefaultEngine() Engine {
	return sfntEngine{}
}
