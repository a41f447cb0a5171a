package font

import (
	"bytes"

	"golang.org/x/image/font/gofont/goregular"
)

// FallbackName is the display name of the fallback font.
const FallbackName = "Go Regular"

// LoadFallbackFont returns a font to be used if everything else fails.
// Currently we use Go Regular, which is embedded into the binary.
//
// Every call creates a new font, owned by the caller and to be released
// like every other font.
func LoadFallbackFont(opts ...Option) (*Font, error) {
	return ParseFont(bytes.Clone(goregular.TTF), FallbackName, opts...)
}
