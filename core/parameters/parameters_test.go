package parameters

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	assert.Equal(t, "fonts", p.S(P_FONTSDIR))
	assert.Equal(t, DefaultMaxFontSize, p.N(P_MAXFONTSIZE))
	assert.Equal(t, "Error", p.S(P_TRACELEVEL))
}

func TestFromConfig(t *testing.T) {
	conf := testconfig.Conf{
		"fonts-dir":     "/usr/share/fonts/truetype",
		"max-font-size": "1024",
	}
	p := FromConfig(conf)
	assert.Equal(t, "/usr/share/fonts/truetype", p.S(P_FONTSDIR))
	assert.Equal(t, 1024, p.N(P_MAXFONTSIZE))
	assert.Equal(t, "Error", p.S(P_TRACELEVEL), "unset key should keep its default")
}

func TestFromNilConfig(t *testing.T) {
	p := FromConfig(nil)
	assert.Equal(t, "fonts", p.S(P_FONTSDIR))
}

func TestInvalidKeyPanics(t *testing.T) {
	p := Defaults()
	assert.Panics(t, func() { p.Get(P_STOPPER) })
	assert.Equal(t, "", ConfigKey(none))
	assert.Equal(t, "max-font-size", ConfigKey(P_MAXFONTSIZE))
}
