package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownSignatures(t *testing.T) {
	for hdr, name := range map[string]string{
		"\x00\x01\x00\x00": "TrueType",
		"OTTO":             "OpenTypeCFF",
		"true":             "AppleTrueType",
		"wtcf":             "TrueTypeCollection",
	} {
		b := []byte(hdr + "rest of font")
		assert.True(t, CheckSignature(b), "expected %q to be accepted", hdr)
		sig, ok := ReadSignature(b)
		assert.True(t, ok)
		assert.Equal(t, name, sig.String())
	}
}

func TestRejectedSignatures(t *testing.T) {
	for _, b := range [][]byte{
		nil,
		{},
		{0x00, 0x01, 0x00},
		{0xDE, 0xAD, 0xBE, 0xEF},
		[]byte("ttcf"),
		[]byte("%PDF-1.7"),
		{0x00, 0x00, 0x01, 0x00},
	} {
		assert.False(t, CheckSignature(b), "expected % x to be rejected", b)
	}
}

func TestSignatureFormatting(t *testing.T) {
	sig := Signature(0xDEADBEEF)
	assert.Equal(t, "Unknown", sig.String())
	assert.Equal(t, "0xDEADBEEF", sig.GoString())
	assert.False(t, sig.Known())
}
