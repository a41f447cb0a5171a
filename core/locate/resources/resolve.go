package resources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/glyphbridge/core/parameters"
)

// fontExtensions are tried, in order, for font names without an extension.
var fontExtensions = []string{".ttf", ".otf", ".ttc"}

// NotFound returns an application error for a missing font.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EMISSING, "font not found: %s", name)
}

// --- Paths -----------------------------------------------------------------

// FontPath finds the file path for a font name. name may be a path, a file
// name or a file name without extension.
//
// Paths (absolute or relative to the working directory) are taken as they
// are. Other names are looked up in the fonts directory of params, then as
// system fonts. If params is nil, defaults are used.
func FontPath(name string, params *parameters.Parameters) (string, error) {
	if params == nil {
		params = parameters.Defaults()
	}
	if filepath.Base(name) != name {
		if isFile(name) {
			return name, nil
		}
		tracer().Infof("font path %s does not exist", name)
		return "", NotFound(name)
	}
	if dir := params.S(parameters.P_FONTSDIR); dir != "" {
		for _, fname := range candidates(name) {
			p := filepath.Join(dir, fname)
			if isFile(p) {
				tracer().Debugf("found font %s in fonts directory", p)
				return p, nil
			}
		}
	}
	for _, fname := range candidates(name) {
		if p, err := findfont.Find(fname); err == nil && p != "" {
			tracer().Debugf("%s is a system font at %s", name, p)
			return p, nil
		}
	}
	tracer().Infof("font %s not found", name)
	return "", NotFound(name)
}

func candidates(name string) []string {
	if filepath.Ext(name) != "" {
		return []string{name}
	}
	c := make([]string, 0, len(fontExtensions))
	for _, ext := range fontExtensions {
		c = append(c, name+ext)
	}
	return c
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SystemFonts lists the paths of all font files installed on the system.
func SystemFonts() []string {
	return findfont.List()
}

// --- Fonts -----------------------------------------------------------------

// LoadFont resolves a font name to a file and loads it. The font is owned by
// the caller.
func LoadFont(name string, params *parameters.Parameters, opts ...font.Option) (*font.Font, error) {
	path, err := FontPath(name, params)
	if err != nil {
		return nil, err
	}
	if params != nil {
		opts = append([]font.Option{font.WithParameters(params)}, opts...)
	}
	return font.LoadFont(path, name, opts...)
}

type fontPlusErr struct {
	font *font.Font
	err  error
}

// FontPromise delivers a font which is being loaded in the background.
// A promise is meant to be awaited by a single goroutine.
type FontPromise interface {
	// Font blocks until the font is loaded.
	Font() (*font.Font, error)
	// Await blocks until the font is loaded or ctx is done. In the latter
	// case, a font arriving later is released.
	Await(ctx context.Context) (*font.Font, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.Font, error)
}

func (loader fontLoader) Font() (*font.Font, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.Font, error) {
	return loader.await(ctx)
}

// ResolveFont resolves and loads a font in the background. Ownership of the
// font passes to the client as soon as the promise delivers it.
func ResolveFont(name string, params *parameters.Parameters, opts ...font.Option) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		result := fontPlusErr{}
		result.font, result.err = LoadFont(name, params, opts...)
		ch <- result
		close(ch)
	}(ch)
	var delivered *fontPlusErr
	return fontLoader{
		await: func(ctx context.Context) (*font.Font, error) {
			if delivered != nil {
				return delivered.font, delivered.err
			}
			select {
			case <-ctx.Done():
				go func() { // nobody will take the font
					if r, ok := <-ch; ok {
						r.font.Release()
					}
				}()
				delivered = &fontPlusErr{err: ctx.Err()}
				return nil, ctx.Err()
			case r := <-ch:
				delivered = &r
				return r.font, r.err
			}
		},
	}
}
