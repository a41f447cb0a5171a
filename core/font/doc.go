/*
Package font loads TrueType/OpenType fonts and rasterizes single glyphs.

The package is a thin boundary around a rasterization engine. It owns the
raw bytes of a font file and the engine's parser state, and hands out two
kinds of owned values:

▪︎ a *Font, created by LoadFont or ParseFont, holding the font file's bytes
together with the parser state bound to them;

▪︎ a *Glyph, created by Rasterize, holding a single-channel coverage bitmap
(one byte per pixel, row major) and its placement offsets.

Both are released explicitly by the caller. Release is idempotent and a no-op
for nil receivers. A glyph does not reference the font it was rasterized
from; fonts may be released while their glyphs are still in use.

Loading checks the first four bytes of a font file against the known SFNT
signatures before the engine sees the data. This catches non-font input, but
it is not a structural validation of the font's tables.

The default engine is package sfntraster, which builds on
golang.org/x/image/font/sfnt and golang.org/x/image/vector. Callers may
substitute their own engine with option WithEngine.

# Tracing

Diagnostics are written to a schuko tracer, selected with key 'glyphs.font'.
A different tracer may be injected per operation with option WithTracer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphs.font'
func tracer() tracing.Trace {
	return tracing.Select("glyphs.font")
}
