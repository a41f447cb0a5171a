package font

// Kerning returns the horizontal adjustment between two consecutive
// code-points, in font design units. A negative value moves the glyphs
// closer together.
//
// There is no failure path: pairs without kerning information, as well as
// a nil or released font, yield 0.
func Kerning(f *Font, c1, c2 rune) int {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.parser == nil {
		return 0
	}
	return f.parser.CodepointKernAdvance(c1, c2)
}

// KerningAt returns the kerning between two consecutive code-points in
// pixels, for glyphs rasterized at pixel height px.
func KerningAt(f *Font, c1, c2 rune, px float32) float32 {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.parser == nil {
		return 0
	}
	k := f.parser.CodepointKernAdvance(c1, c2)
	if k == 0 {
		return 0
	}
	return float32(k) * f.parser.ScaleForPixelHeight(px)
}
