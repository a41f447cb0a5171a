/*
Package parameters holds the settings of the font loader.

Parameters are initialized with defaults and may be overridden from an
application configuration (schuko.Configuration).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"github.com/npillmayer/schuko"
)

// LoaderParameter identifies a setting of the font loader.
type LoaderParameter int

const (
	none LoaderParameter = iota
	P_FONTSDIR
	P_MAXFONTSIZE
	P_TRACELEVEL
	P_STOPPER
)

// DefaultMaxFontSize is the largest font file (in bytes) the loader will
// allocate a buffer for, if not configured otherwise.
const DefaultMaxFontSize = 64 << 20

// configuration keys, indexed by parameter
var configKeys = [P_STOPPER]string{
	P_FONTSDIR:    "fonts-dir",
	P_MAXFONTSIZE: "max-font-size",
	P_TRACELEVEL:  "trace-level",
}

// Parameters is a set of loader settings.
type Parameters struct {
	base [P_STOPPER]interface{}
}

// Defaults returns a parameter set with default values.
func Defaults() *Parameters {
	p := &Parameters{}
	p.base[P_FONTSDIR] = "fonts"                // relative to the working directory
	p.base[P_MAXFONTSIZE] = DefaultMaxFontSize // bytes
	p.base[P_TRACELEVEL] = "Error"              // one of Debug, Info, Error
	return p
}

// FromConfig returns a parameter set with defaults, overridden by every key
// set in conf. conf may be nil.
func FromConfig(conf schuko.Configuration) *Parameters {
	p := Defaults()
	if conf == nil {
		return p
	}
	for key := P_FONTSDIR; key < P_STOPPER; key++ {
		ckey := configKeys[key]
		if !conf.IsSet(ckey) {
			continue
		}
		switch p.base[key].(type) {
		case int:
			if n := conf.GetInt(ckey); n > 0 {
				p.base[key] = n
			}
		default:
			if s := conf.GetString(ckey); s != "" {
				p.base[key] = s
			}
		}
	}
	return p
}

// Set overrides a parameter.
func (p *Parameters) Set(key LoaderParameter, value interface{}) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of loader parameters")
	}
	p.base[key] = value
}

// Get returns the value of a parameter.
func (p *Parameters) Get(key LoaderParameter) interface{} {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of loader parameters")
	}
	return p.base[key]
}

// S returns a string parameter.
func (p *Parameters) S(key LoaderParameter) string {
	return p.Get(key).(string)
}

// N returns a numeric parameter.
func (p *Parameters) N(key LoaderParameter) int {
	return p.Get(key).(int)
}

// ConfigKey returns the configuration key a parameter is read from.
func ConfigKey(key LoaderParameter) string {
	if key <= none || key >= P_STOPPER {
		return ""
	}
	return configKeys[key]
}
