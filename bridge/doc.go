/*
Package bridge exposes font loading and glyph rasterization to callers which
cannot hold Go pointers, e.g. code on the other side of a foreign function
interface.

Callers see plain handle values only. A handle is an ID into a table of live
fonts or glyphs, plus the data a caller needs without another round trip (the
byte size of the owned buffer, and a glyph's dimensions and offsets).

The zero value of a handle is the sentinel for failure. Every operation
converts errors into sentinel results after tracing them; no operation
panics. Unloading the sentinel, or a handle which is unknown or has already
been unloaded, is a no-op.

Every handle obtained from LoadFont or RasterizeGlyph has to be unloaded by
the caller exactly once. Glyph handles stay valid after their font has been
unloaded. LiveFonts and LiveGlyphs report the handles not yet unloaded and
serve for finding leaks.

The package-level functions operate on a default Bridge. Clients wanting
separate tables, or font options like a custom ledger, create their own
Bridge with New.

# Tracing

Failures are traced with key 'glyphs.bridge', carrying the font's display
name and the error code.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package bridge

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphs.bridge'
func tracer() tracing.Trace {
	return tracing.Select("glyphs.bridge")
}
