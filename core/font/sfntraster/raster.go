/*
Package sfntraster is a glyph rasterization engine on top of
golang.org/x/image/font/sfnt and golang.org/x/image/vector.

Sizing follows the conventions of stb_truetype: a pixel height is the
distance from the font's ascender to its descender (from table 'hhea'), and
bitmaps are cut to the glyph's scaled bounding box, with offsets pointing
from the pen position to the bitmap's top left corner (y axis down).

A Parser is safe for concurrent use. Every query works on its own
sfnt.Buffer, taken from a pool.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntraster

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'glyphs.font'
func tracer() tracing.Trace {
	return tracing.Select("glyphs.font")
}

// ErrNoVerticalMetrics is returned for fonts with ascender == descender.
var ErrNoVerticalMetrics = errors.New("sfntraster: font has no vertical metrics")

// collectionTag is the signature of font collection files.
var collectionTag = []byte("ttcf")

// Parser is the parsed state of a single font.
type Parser struct {
	font    *sfnt.Font
	upem    sfnt.Units
	height  int32 // ascender - descender, in design units
	buffers sync.Pool
}

// Init parses font data. For font collections, the first font is used.
// The parser keeps references into data.
func Init(data []byte) (*Parser, error) {
	var f *sfnt.Font
	var err error
	if bytes.HasPrefix(data, collectionTag) {
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(data); err == nil {
			tracer().Debugf("font collection with %d fonts, using first one", c.NumFonts())
			f, err = c.Font(0)
		}
	} else {
		f, err = sfnt.Parse(data)
	}
	if err != nil {
		return nil, err
	}
	p := &Parser{font: f, upem: f.UnitsPerEm()}
	p.buffers.New = func() interface{} { return &sfnt.Buffer{} }
	// With ppem equal to units-per-em, sfnt reports metrics in 26.6 values
	// which numerically are font design units.
	b := p.buffer()
	defer p.buffers.Put(b)
	m, err := f.Metrics(b, fixed.Int26_6(p.upem), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	p.height = int32(m.Ascent + m.Descent)
	if p.height <= 0 {
		return nil, ErrNoVerticalMetrics
	}
	return p, nil
}

func (p *Parser) buffer() *sfnt.Buffer {
	return p.buffers.Get().(*sfnt.Buffer)
}

// Release drops the parser's references to the font data.
func (p *Parser) Release() {
	p.font = nil
}

// ScaleForPixelHeight returns the factor from design units to pixels for a
// font height of px pixels.
func (p *Parser) ScaleForPixelHeight(px float32) float32 {
	if p.height == 0 {
		return 0
	}
	return px / float32(p.height)
}

// CodepointBitmap renders the glyph for r into a coverage bitmap.
// It returns a nil bitmap if r cannot be rendered, including glyphs with an
// empty outline and scale factors ≤ 0.
func (p *Parser) CodepointBitmap(scale float32, r rune) (bitmap []byte, w, h, xoff, yoff int) {
	if p.font == nil {
		return
	}
	ppem := fixed.Int26_6(scale*float32(p.upem)*64 + 0.5)
	if ppem <= 0 {
		return
	}
	b := p.buffer()
	defer p.buffers.Put(b)
	gid, err := p.font.GlyphIndex(b, r)
	if err != nil {
		tracer().Debugf("no glyph index for %#U: %v", r, err)
		return
	}
	segments, err := p.font.LoadGlyph(b, gid, ppem, nil)
	if err != nil {
		tracer().Debugf("cannot load glyph %d for %#U: %v", gid, r, err)
		return
	}
	bounds := segments.Bounds()
	xoff, yoff = bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	w = bounds.Max.X.Ceil() - xoff
	h = bounds.Max.Y.Ceil() - yoff
	if w <= 0 || h <= 0 {
		return nil, 0, 0, xoff, yoff
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	dx, dy := float32(-xoff), float32(-yoff)
	pt := func(a fixed.Point26_6) (float32, float32) {
		return float32(a.X)/64 + dx, float32(a.Y)/64 + dy
	}
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst.Pix, w, h, xoff, yoff
}

// CodepointKernAdvance returns the kerning for the pair (r1, r2) in design
// units. Kerning is taken from GPOS pair adjustments, if present, or from
// table 'kern'. Pairs without kerning yield 0.
func (p *Parser) CodepointKernAdvance(r1, r2 rune) int {
	if p.font == nil {
		return 0
	}
	b := p.buffer()
	defer p.buffers.Put(b)
	g1, err := p.font.GlyphIndex(b, r1)
	if err != nil || g1 == 0 {
		return 0
	}
	g2, err := p.font.GlyphIndex(b, r2)
	if err != nil || g2 == 0 {
		return 0
	}
	k, err := p.font.Kern(b, g1, g2, fixed.Int26_6(p.upem), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return int(k)
}

// FullName returns the full font name from table 'name'.
func (p *Parser) FullName() string {
	if p.font == nil {
		return ""
	}
	b := p.buffer()
	defer p.buffers.Put(b)
	name, err := p.font.Name(b, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (p *Parser) NumGlyphs() int {
	if p.font == nil {
		return 0
	}
	return p.font.NumGlyphs()
}

// UnitsPerEm returns the number of design units per em.
func (p *Parser) UnitsPerEm() int {
	return int(p.upem)
}
