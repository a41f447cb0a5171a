package font

import (
	"io"
	"os"
	"sync"

	"github.com/npillmayer/glyphbridge/core"
	"github.com/npillmayer/schuko/tracing"
)

// Font is a loaded and parsed font. It owns the raw bytes of the font file
// and the engine's parser state, which are created and released together.
//
// A Font is read-only after creation. It is safe to rasterize glyphs and
// query kerning from multiple goroutines at the same time. Release waits for
// in-flight queries to finish.
type Font struct {
	mu     sync.RWMutex
	name   string // display name, used for diagnostics
	path   string // file path, empty for fonts parsed from memory
	sig    Signature
	data   []byte // raw font data, referenced by parser
	parser Parser
	ledger Ledger
	trace  tracing.Trace
}

// LoadFont reads a font file into memory, checks its signature and parses
// it. name is used in diagnostic messages only.
//
// The returned font is either fully initialized or nil. In the latter case
// the error carries one of the codes core.EMISSING (file cannot be opened),
// core.EALLOC (no buffer for the file's size), core.ESHORTREAD, core.EINVALID
// (unknown signature) or core.EPARSE (engine rejected the font).
func LoadFont(path, name string, opts ...Option) (*Font, error) {
	o := makeOptions(opts)
	file, err := os.Open(path)
	if err != nil {
		o.trace.Errorf("could not find font %s at %s", name, path)
		return nil, core.WrapError(err, core.EMISSING, "could not open font %s", name)
	}
	var data []byte
	info, err := file.Stat()
	if err == nil {
		data, err = readFontFile(file, info.Size(), name, o)
	} else {
		o.trace.Errorf("could not determine size of font %s", name)
		err = core.WrapError(err, core.EMISSING, "could not stat font %s", name)
	}
	file.Close()
	if err != nil {
		return nil, err
	}
	f, err := parseFont(data, name, o)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// readFontFile reads size bytes into a new buffer in one pass. The buffer is
// accounted for in o's ledger if reading succeeds.
func readFontFile(r io.Reader, size int64, name string, o *options) ([]byte, error) {
	if size == 0 {
		o.trace.Errorf("font file %s is empty", name)
		return nil, core.Error(core.EINVALID, "font file %s is empty", name)
	}
	if size < 0 || size > int64(o.maxSize) {
		o.trace.Errorf("allocation of %d bytes for %s data failed", size, name)
		return nil, core.Error(core.EALLOC, "cannot allocate %d bytes for font %s (limit is %d)",
			size, name, o.maxSize)
	}
	data := make([]byte, size)
	o.ledger.Acquire(FontBuffer, len(data))
	n, err := io.ReadFull(r, data)
	if n != len(data) {
		o.ledger.Return(FontBuffer, len(data))
		o.trace.Errorf("read of %s was unsuccessful: %d of %d bytes", name, n, size)
		return nil, core.WrapError(err, core.ESHORTREAD, "could read only %d of %d bytes of font %s",
			n, size, name)
	}
	return data, nil
}

// ParseFont creates a font from in-memory font data. Ownership of data is
// transferred to the font; clients must not modify data afterwards.
//
// Errors are the same as for LoadFont, minus the I/O related ones.
func ParseFont(data []byte, name string, opts ...Option) (*Font, error) {
	o := makeOptions(opts)
	if len(data) == 0 {
		o.trace.Errorf("font data for %s is empty", name)
		return nil, core.Error(core.EINVALID, "font data for %s is empty", name)
	}
	o.ledger.Acquire(FontBuffer, len(data))
	return parseFont(data, name, o)
}

// parseFont takes ownership of data. On error, data is returned to the
// ledger.
func parseFont(data []byte, name string, o *options) (*Font, error) {
	sig, _ := ReadSignature(data)
	if !sig.Known() {
		o.ledger.Return(FontBuffer, len(data))
		o.trace.Errorf("font file %s has invalid header %#v", name, sig)
		return nil, core.Error(core.EINVALID, "font %s has an unknown signature %#v", name, sig)
	}
	o.trace.Debugf("font %s has signature %s", name, sig)
	o.ledger.Acquire(ParserState, 1)
	parser, err := o.engine.Init(data)
	if err != nil || parser == nil {
		o.ledger.Return(ParserState, 1)
		o.ledger.Return(FontBuffer, len(data))
		o.trace.Errorf("failed to load font %s", name)
		return nil, core.WrapError(err, core.EPARSE, "engine cannot parse font %s", name)
	}
	f := &Font{
		name:   name,
		sig:    sig,
		data:   data,
		parser: parser,
		ledger: o.ledger,
		trace:  o.trace,
	}
	o.trace.Infof("loaded font %s (%s, %d bytes)", name, sig, len(data))
	return f, nil
}

// Release frees the font data together with the parser state.
// Calling Release more than once, or on a nil font, does nothing.
// Glyphs rasterized from f stay valid.
func (f *Font) Release() {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.parser == nil {
		return
	}
	if r, ok := f.parser.(releaser); ok {
		r.Release()
	}
	f.ledger.Return(ParserState, 1)
	f.ledger.Return(FontBuffer, len(f.data))
	f.trace.Debugf("released font %s", f.name)
	f.parser, f.data = nil, nil
}

// Valid is a predicate: is f loaded and not released?
func (f *Font) Valid() bool {
	if f == nil {
		return false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.parser != nil && len(f.data) > 0
}

// Name returns the display name of f.
func (f *Font) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Path returns the file path f has been loaded from. It is empty for fonts
// created by ParseFont.
func (f *Font) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Len returns the size of the font data in bytes, or 0 after release.
func (f *Font) Len() int {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.data)
}

// Signature returns the signature found at the start of the font data.
func (f *Font) Signature() Signature {
	if f == nil {
		return 0
	}
	return f.sig
}

// Format returns the name of the font's format, as identified by its
// signature.
func (f *Font) Format() string {
	return f.Signature().String()
}

// FullName returns the font's full name from its name table, if the engine
// supports name lookups. Otherwise it returns the display name.
func (f *Font) FullName() string {
	if f == nil {
		return ""
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if d, ok := f.parser.(describer); ok {
		if n := d.FullName(); n != "" {
			return n
		}
	}
	return f.name
}

// NumGlyphs returns the number of glyphs in the font, if the engine knows
// about it. Otherwise it returns 0.
func (f *Font) NumGlyphs() int {
	if f == nil {
		return 0
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if d, ok := f.parser.(describer); ok {
		return d.NumGlyphs()
	}
	return 0
}
