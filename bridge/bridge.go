package bridge

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/font"
)

// FontHandle refers to a loaded font. Size is the byte size of the font
// data. The zero value signals failure.
type FontHandle struct {
	ID   uint64
	Size int
}

// IsNull is a predicate: is h the sentinel value?
func (h FontHandle) IsNull() bool {
	return h.ID == 0
}

func (h FontHandle) String() string {
	if h.IsNull() {
		return "font<null>"
	}
	return fmt.Sprintf("font<%d|%d bytes>", h.ID, h.Size)
}

// GlyphHandle refers to a rasterized glyph. Size is the byte size of the
// glyph's bitmap, which is Width × Height. XOff and YOff locate the bitmap's
// top left corner relative to the pen position, y axis pointing down.
// The zero value signals failure.
type GlyphHandle struct {
	ID            uint64
	Size          int
	Width, Height int
	XOff, YOff    int
}

// IsNull is a predicate: is h the sentinel value?
func (h GlyphHandle) IsNull() bool {
	return h.ID == 0
}

func (h GlyphHandle) String() string {
	if h.IsNull() {
		return "glyph<null>"
	}
	return fmt.Sprintf("glyph<%d|%d×%d at (%d,%d)>", h.ID, h.Width, h.Height, h.XOff, h.YOff)
}

// HandleInfo describes a live handle, for listings.
type HandleInfo struct {
	Kind string // "font" or "glyph"
	ID   uint64
	Name string // display name of the font
	Size int
}

type glyphEntry struct {
	glyph *font.Glyph
	font  string // display name of the font, for listings
}

// Bridge is a table of live font and glyph handles. It is safe for
// concurrent use.
type Bridge struct {
	sync.Mutex
	fonts  *treemap.Map // ID -> *font.Font
	glyphs *treemap.Map // ID -> glyphEntry
	nextID uint64
	opts   []font.Option
}

// New creates an empty handle table. opts are applied to every font loaded
// through the table and to every glyph rasterized from it.
func New(opts ...font.Option) *Bridge {
	return &Bridge{
		fonts:  treemap.NewWith(utils.UInt64Comparator),
		glyphs: treemap.NewWith(utils.UInt64Comparator),
		opts:   opts,
	}
}

// register must be called with b locked.
func (b *Bridge) register(m *treemap.Map, v interface{}) uint64 {
	b.nextID++
	m.Put(b.nextID, v)
	return b.nextID
}

func (b *Bridge) lookupFont(h FontHandle) *font.Font {
	if h.IsNull() {
		return nil
	}
	b.Lock()
	defer b.Unlock()
	if f, found := b.fonts.Get(h.ID); found {
		return f.(*font.Font)
	}
	return nil
}

// LoadFont loads a font file. name is used for diagnostics only.
// Failures are traced and reported as the sentinel handle.
func (b *Bridge) LoadFont(path, name string) FontHandle {
	f, err := font.LoadFont(path, name, b.opts...)
	if err != nil {
		tracer().Errorf("load_font(%s) failed with code %d: %v", name, core.Code(err), err)
		return FontHandle{}
	}
	b.Lock()
	defer b.Unlock()
	h := FontHandle{ID: b.register(b.fonts, f), Size: f.Len()}
	tracer().Debugf("load_font(%s) = %v", name, h)
	return h
}

// UnloadFont releases a font. Glyphs rasterized from it stay valid.
func (b *Bridge) UnloadFont(h FontHandle) {
	if h.IsNull() {
		return
	}
	b.Lock()
	v, found := b.fonts.Get(h.ID)
	if found {
		b.fonts.Remove(h.ID)
	}
	b.Unlock()
	if !found {
		tracer().Debugf("unload_font: %v is not a live handle", h)
		return
	}
	v.(*font.Font).Release()
}

// RasterizeGlyph renders the glyph for a code-point at pixel height px
// (ascender to descender). Failures, including glyphs without ink, are
// traced and reported as the sentinel handle.
func (b *Bridge) RasterizeGlyph(h FontHandle, codepoint int32, px float32) GlyphHandle {
	f := b.lookupFont(h)
	if f == nil {
		tracer().Errorf("rasterize_glyph: %v is not a live font handle", h)
		return GlyphHandle{}
	}
	g, err := font.Rasterize(f, rune(codepoint), px, b.opts...)
	if err != nil {
		tracer().Errorf("rasterize_glyph(%s, %#U) failed with code %d: %v",
			f.Name(), rune(codepoint), core.Code(err), err)
		return GlyphHandle{}
	}
	b.Lock()
	defer b.Unlock()
	return GlyphHandle{
		ID:     b.register(b.glyphs, glyphEntry{glyph: g, font: f.Name()}),
		Size:   g.Len(),
		Width:  g.Width,
		Height: g.Height,
		XOff:   g.XOff,
		YOff:   g.YOff,
	}
}

// UnloadGlyph releases a glyph's bitmap.
func (b *Bridge) UnloadGlyph(h GlyphHandle) {
	if h.IsNull() {
		return
	}
	b.Lock()
	v, found := b.glyphs.Get(h.ID)
	if found {
		b.glyphs.Remove(h.ID)
	}
	b.Unlock()
	if !found {
		tracer().Debugf("unload_glyph: %v is not a live handle", h)
		return
	}
	v.(glyphEntry).glyph.Release()
}

// GlyphBitmap returns the coverage bitmap of a live glyph, row major with
// one byte per pixel. The bitmap is still owned by the table and must not be
// used after UnloadGlyph. For the sentinel or unknown handles it returns nil.
func (b *Bridge) GlyphBitmap(h GlyphHandle) []byte {
	if h.IsNull() {
		return nil
	}
	b.Lock()
	defer b.Unlock()
	if v, found := b.glyphs.Get(h.ID); found {
		return v.(glyphEntry).glyph.Bitmap
	}
	return nil
}

// GetKerning returns the kerning between two code-points in font design
// units. Unknown pairs, as well as the sentinel or unknown handles, yield 0.
func (b *Bridge) GetKerning(h FontHandle, c1, c2 int32) int32 {
	f := b.lookupFont(h)
	if f == nil {
		return 0
	}
	return int32(font.Kerning(f, rune(c1), rune(c2)))
}

// LiveFonts returns the number of font handles not yet unloaded.
func (b *Bridge) LiveFonts() int {
	b.Lock()
	defer b.Unlock()
	return b.fonts.Size()
}

// LiveGlyphs returns the number of glyph handles not yet unloaded.
func (b *Bridge) LiveGlyphs() int {
	b.Lock()
	defer b.Unlock()
	return b.glyphs.Size()
}

// Handles lists all live handles, fonts first, each kind ordered by ID.
func (b *Bridge) Handles() []HandleInfo {
	b.Lock()
	defer b.Unlock()
	infos := make([]HandleInfo, 0, b.fonts.Size()+b.glyphs.Size())
	it := b.fonts.Iterator()
	for it.Next() {
		f := it.Value().(*font.Font)
		infos = append(infos, HandleInfo{Kind: "font", ID: it.Key().(uint64), Name: f.Name(), Size: f.Len()})
	}
	it = b.glyphs.Iterator()
	for it.Next() {
		e := it.Value().(glyphEntry)
		infos = append(infos, HandleInfo{Kind: "glyph", ID: it.Key().(uint64), Name: e.font, Size: e.glyph.Len()})
	}
	return infos
}

// --- Default bridge --------------------------------------------------------

var defaultBridge = New()

// Default returns the bridge used by the package-level functions.
func Default() *Bridge {
	return defaultBridge
}

// LoadFont loads a font file into the default bridge.
func LoadFont(path, name string) FontHandle {
	return defaultBridge.LoadFont(path, name)
}

// UnloadFont releases a font of the default bridge.
func UnloadFont(h FontHandle) {
	defaultBridge.UnloadFont(h)
}

// RasterizeGlyph rasterizes a glyph from a font of the default bridge.
func RasterizeGlyph(h FontHandle, codepoint int32, px float32) GlyphHandle {
	return defaultBridge.RasterizeGlyph(h, codepoint, px)
}

// UnloadGlyph releases a glyph of the default bridge.
func UnloadGlyph(h GlyphHandle) {
	defaultBridge.UnloadGlyph(h)
}

// GlyphBitmap returns the bitmap of a glyph of the default bridge.
func GlyphBitmap(h GlyphHandle) []byte {
	return defaultBridge.GlyphBitmap(h)
}

// GetKerning queries the kerning of a font of the default bridge.
func GetKerning(h FontHandle, c1, c2 int32) int32 {
	return defaultBridge.GetKerning(h, c1, c2)
}
