/*
Package fontregistry manages a registry for loaded fonts.

Fonts are stored under a normalized name (see NormalizeFontname). The
registry owns the fonts stored in it and releases them when they are removed.
Requests for unknown fonts are answered with a fallback font, together with
an error.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphs.font'
func tracer() tracing.Trace {
	return tracing.Select("glyphs.font")
}
