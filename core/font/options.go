package font

import (
	"github.com/npillmayer/glyphbridge/core/parameters"
	"github.com/npillmayer/schuko/tracing"
)

// Option configures loading of fonts and rasterization of glyphs.
type Option func(*options)

type options struct {
	engine  Engine
	trace   tracing.Trace
	ledger  Ledger
	maxSize int
}

func makeOptions(opts []Option) *options {
	o := &options{
		engine:  DefaultEngine(),
		ledger:  nopLedger{},
		maxSize: parameters.DefaultMaxFontSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.trace == nil {
		o.trace = tracer()
	}
	return o
}

// WithEngine sets the rasterization engine to parse a font with.
func WithEngine(e Engine) Option {
	return func(o *options) {
		if e != nil {
			o.engine = e
		}
	}
}

// WithTracer sets a tracer for diagnostic messages.
func WithTracer(t tracing.Trace) Option {
	return func(o *options) {
		o.trace = t
	}
}

// WithLedger sets a ledger to track buffer ownership. A font and all glyphs
// rasterized from it report to the ledger the font has been loaded with.
func WithLedger(l Ledger) Option {
	return func(o *options) {
		if l != nil {
			o.ledger = l
		}
	}
}

// WithMaxSize sets the maximum size (in bytes) of font files to load.
func WithMaxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithParameters applies loader parameters.
func WithParameters(p *parameters.Parameters) Option {
	return func(o *options) {
		if p != nil {
			WithMaxSize(p.N(parameters.P_MAXFONTSIZE))(o)
		}
	}
}
