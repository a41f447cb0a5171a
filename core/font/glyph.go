package font

import (
	"image"

	"github.com/npillmayer/glyphbridge/core"
)

// Glyph is a rasterized glyph: a single-channel coverage bitmap together
// with its dimensions and placement.
//
// XOff and YOff locate the bitmap's top left corner relative to the pen
// position, with the y axis pointing down. Negative offsets are normal: a
// glyph sitting on the baseline has a negative YOff.
//
// A Glyph does not reference the font it has been rasterized from.
type Glyph struct {
	Bitmap        []byte // coverage values, row major, len = Width*Height
	Width, Height int
	XOff, YOff    int
	Codepoint     rune
	ledger        Ledger
}

// Rasterize renders the glyph for a code-point at a pixel height. px is the
// height from the font's ascender to its descender; it should be positive,
// otherwise the outcome is up to the rasterization engine.
//
// The code-point is not checked against the font's coverage; code-points
// without a glyph will usually produce the font's '.notdef' glyph.
// Every glyph is rendered anew, there is no caching.
//
// A successfully rasterized glyph has width and height > 0, and a bitmap of
// exactly width × height bytes. Otherwise an error with code core.ERASTER is
// returned. Glyphs without ink, like a space, have no bitmap and are reported
// as errors as well.
func Rasterize(f *Font, codepoint rune, px float32, opts ...Option) (*Glyph, error) {
	if f == nil {
		return nil, core.Error(core.EINVALID, "cannot rasterize %#U from nil font", codepoint)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	trace := f.trace
	if len(opts) > 0 {
		o := makeOptions(append([]Option{WithTracer(f.trace)}, opts...))
		trace = o.trace
	}
	if f.parser == nil {
		trace.Errorf("font %s has been released", f.name)
		return nil, core.Error(core.EINVALID, "cannot rasterize %#U from released font %s", codepoint, f.name)
	}
	scale := f.parser.ScaleForPixelHeight(px)
	bitmap, w, h, xoff, yoff := f.parser.CodepointBitmap(scale, codepoint)
	if bitmap == nil {
		trace.Errorf("engine returned no bitmap for %#U of font %s", codepoint, f.name)
		return nil, core.Error(core.ERASTER, "no bitmap for %#U at %.1fpx in font %s", codepoint, px, f.name)
	}
	if w <= 0 || h <= 0 {
		// The engine allocated a buffer but reports a zero dimension. We
		// do not hand it out and drop our reference to it.
		trace.Errorf("engine returned glyph %#U with size zero (%d×%d, %d bytes dropped)",
			codepoint, w, h, len(bitmap))
		return nil, core.Error(core.ERASTER, "glyph %#U at %.1fpx in font %s has size zero",
			codepoint, px, f.name)
	}
	if len(bitmap) != w*h {
		trace.Errorf("engine returned %d bytes for a %d×%d glyph %#U", len(bitmap), w, h, codepoint)
		return nil, core.Error(core.ERASTER, "bitmap of glyph %#U has %d bytes, expected %d",
			codepoint, len(bitmap), w*h)
	}
	g := &Glyph{
		Bitmap:    bitmap,
		Width:     w,
		Height:    h,
		XOff:      xoff,
		YOff:      yoff,
		Codepoint: codepoint,
		ledger:    f.ledger,
	}
	g.ledger.Acquire(GlyphBuffer, len(bitmap))
	trace.Debugf("rasterized %#U at %.1fpx: %d×%d at (%d,%d)", codepoint, px, w, h, xoff, yoff)
	return g, nil
}

// Release frees the glyph's bitmap. Calling Release more than once, or on a
// nil glyph, does nothing.
func (g *Glyph) Release() {
	if g == nil || g.Bitmap == nil {
		return
	}
	g.ledger.Return(GlyphBuffer, len(g.Bitmap))
	g.Bitmap = nil
	g.Width, g.Height = 0, 0
	g.XOff, g.YOff = 0, 0
}

// Valid is a predicate: does g hold a bitmap?
func (g *Glyph) Valid() bool {
	return g != nil && g.Bitmap != nil
}

// Len returns the size of the bitmap in bytes.
func (g *Glyph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Bitmap)
}

// At returns the coverage at bitmap position (x, y), with (0, 0) being the
// top left pixel. Positions outside the bitmap have coverage 0.
func (g *Glyph) At(x, y int) byte {
	if !g.Valid() || x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Bitmap[y*g.Width+x]
}

// Alpha returns an image view onto the glyph's bitmap. The image's bounds are
// relative to the pen position, i.e. its minimum point is (XOff, YOff).
// The image shares the bitmap and becomes invalid when g is released.
func (g *Glyph) Alpha() *image.Alpha {
	if !g.Valid() {
		return image.NewAlpha(image.Rectangle{})
	}
	return &image.Alpha{
		Pix:    g.Bitmap,
		Stride: g.Width,
		Rect:   image.Rect(g.XOff, g.YOff, g.XOff+g.Width, g.YOff+g.Height),
	}
}
