package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/uax/grapheme"
	"github.com/pterm/pterm"
)

// shades maps coverage to characters, from empty to full.
const shades = " .:-=+*#%@"

// asciiArt draws a glyph's coverage bitmap with one character per pixel.
// The last row above the baseline is marked.
func asciiArt(g *font.Glyph) string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := int(g.At(x, y)) * (len(shades) - 1) / 255
			b.WriteByte(shades[c])
		}
		if y+g.YOff == -1 { // last row above the baseline
			b.WriteString("  ← baseline")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (intp *Intp) showGlyph(r rune, px float32) error {
	f, err := intp.font()
	if err != nil {
		return err
	}
	g, err := font.Rasterize(f, r, px)
	if err != nil {
		return err
	}
	defer g.Release()
	pterm.Info.Printfln("%s at %.1f px: %d×%d pixels, offset (%d, %d)",
		describe(r), px, g.Width, g.Height, g.XOff, g.YOff)
	pterm.Println(asciiArt(g))
	return nil
}

// kernPair is the kerning between the base characters of two neighbouring
// grapheme clusters.
type kernPair struct {
	left, right string // grapheme clusters
	units       int
	px          float32
}

// kernPairs splits text into grapheme clusters and queries the kerning of
// each pair of neighbours. Only the first code-point of a cluster takes part
// in kerning; combining marks are ignored.
func kernPairs(f *font.Font, text string, px float32) []kernPair {
	gstr := grapheme.StringFromString(text)
	l := gstr.Len()
	if l < 2 {
		return nil
	}
	pairs := make([]kernPair, 0, l-1)
	for i := 0; i+1 < l; i++ {
		left, right := gstr.Nth(i), gstr.Nth(i+1)
		r1, _ := utf8.DecodeRuneInString(left)
		r2, _ := utf8.DecodeRuneInString(right)
		pairs = append(pairs, kernPair{
			left:  left,
			right: right,
			units: font.Kerning(f, r1, r2),
			px:    font.KerningAt(f, r1, r2, px),
		})
	}
	return pairs
}

func (intp *Intp) showPairs(text string) error {
	f, err := intp.font()
	if err != nil {
		return err
	}
	pairs := kernPairs(f, text, intp.px)
	if len(pairs) == 0 {
		return fmt.Errorf("need at least two characters")
	}
	data := pterm.TableData{{"Pair", "Units", "Pixels"}}
	kerned := 0
	for _, p := range pairs {
		if p.units != 0 {
			kerned++
		}
		data = append(data, []string{p.left + p.right, strconv.Itoa(p.units),
			strconv.FormatFloat(float64(p.px), 'f', 2, 32)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Info.Printfln("%d of %d pairs kerned at %.1f px", kerned, len(pairs), intp.px)
	return nil
}
