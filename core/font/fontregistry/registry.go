package fontregistry

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// FallbackKey is the key the fallback font is stored under.
const FallbackKey = "fallback"

// Registry is a type for holding loaded fonts of an application.
type Registry struct {
	sync.Mutex
	fonts map[string]*font.Font
	names *trie.Trie // normalized names, for prefix completion
	opts  []font.Option
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry. opts are used when the registry
// has to load the fallback font.
func NewRegistry(opts ...font.Option) *Registry {
	fr := &Registry{
		fonts: make(map[string]*font.Font),
		names: trie.New(),
		opts:  opts,
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
// The registry takes ownership of f.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden and
// StoreFont returns false. The caller keeps ownership of f in this case.
func (fr *Registry) StoreFont(normalizedName string, f *font.Font) bool {
	if !f.Valid() {
		tracer().Errorf("registry cannot store null font")
		return false
	}
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[normalizedName]; ok {
		tracer().Infof("registry already has a font %s", normalizedName)
		return false
	}
	tracer().Debugf("registry stores font %s as %s", f.Name(), normalizedName)
	fr.fonts[normalizedName] = f
	fr.names.Add(normalizedName, nil)
	return true
}

// Font returns the font stored under key normalizedName. The font is still
// owned by the registry.
//
// If no such font has been stored, Font will return a system-wide fallback
// font, together with an error with code core.EMISSING.
func (fr *Registry) Font(normalizedName string) (*font.Font, error) {
	tracer().Debugf("registry searches for font %s", normalizedName)
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.fonts[normalizedName]; ok {
		return f, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	//
	// store fallback font, if not present yet, and return it
	if f, ok := fr.fonts[FallbackKey]; ok {
		return f, err
	}
	f, ferr := font.LoadFallbackFont(fr.opts...)
	if ferr != nil { // embedded font is broken: no way out
		tracer().Errorf("cannot load fallback font: %v", ferr)
		return nil, ferr
	}
	tracer().Infof("font registry caches fallback font %s", f.Name())
	fr.fonts[FallbackKey] = f
	fr.names.Add(FallbackKey, nil)
	return f, err
}

// Contains is a predicate: is a font stored under key normalizedName?
func (fr *Registry) Contains(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.fonts[normalizedName]
	return ok
}

// Remove removes a font from the registry and releases it.
// It returns false if no font has been stored under key normalizedName.
func (fr *Registry) Remove(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[normalizedName]
	if !ok {
		return false
	}
	delete(fr.fonts, normalizedName)
	fr.names.Remove(normalizedName)
	f.Release()
	tracer().Debugf("registry released font %s", normalizedName)
	return true
}

// ReleaseAll removes all fonts from the registry and releases them.
func (fr *Registry) ReleaseAll() {
	fr.Lock()
	defer fr.Unlock()
	for name, f := range fr.fonts {
		f.Release()
		fr.names.Remove(name)
	}
	fr.fonts = make(map[string]*font.Font)
}

// Len returns the number of fonts in the registry.
func (fr *Registry) Len() int {
	fr.Lock()
	defer fr.Unlock()
	return len(fr.fonts)
}

// Names returns the keys of all stored fonts, sorted alphabetically.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.fonts))
	for name := range fr.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete returns the keys of all stored fonts starting with prefix,
// sorted alphabetically.
func (fr *Registry) Complete(prefix string) []string {
	if prefix == "" {
		return fr.Names()
	}
	fr.Lock()
	defer fr.Unlock()
	names := fr.names.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range fr.Names() {
		f, _ := fr.Font(k)
		tracer().Infof("font [%s] = %s (%s, %d bytes)", k, f.FullName(), f.Format(), f.Len())
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name or a font file
// name, together with a style and a weight.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		if !strings.Contains(fname, "italic") {
			fname += "-italic"
		}
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight:
		if !strings.Contains(fname, "light") {
			fname += "-light"
		}
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold:
		if !strings.Contains(fname, "bold") {
			fname += "-bold"
		}
	}
	return fname
}

// NormalizedKey guesses style and weight from a font file name and
// normalizes it.
func NormalizedKey(fontfilename string) string {
	style, weight := GuessStyleAndWeight(fontfilename)
	return NormalizeFontname(fontfilename, style, weight)
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}
