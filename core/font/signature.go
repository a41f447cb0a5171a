package font

import (
	"encoding/binary"
	"fmt"
)

// Signature is the 4-byte tag at the start of a font file, read big-endian.
type Signature uint32

// Signatures recognized by the loader.
const (
	TrueType      Signature = 0x00010000 // TrueType outlines
	OpenTypeCFF   Signature = 0x4F54544F // 'OTTO', OpenType with CFF outlines
	AppleTrueType Signature = 0x74727565 // 'true', legacy Mac TrueType
	Collection    Signature = 0x77746366 // 'wtcf', font collection
)

// ReadSignature interprets the first four bytes of b as a signature.
// It returns false if b holds less than four bytes.
func ReadSignature(b []byte) (Signature, bool) {
	if len(b) < 4 {
		return 0, false
	}
	return Signature(binary.BigEndian.Uint32(b[:4])), true
}

// CheckSignature is a predicate: does b start with a known font signature?
//
// Nothing beyond the first four bytes is inspected. Table consistency,
// checksums or structural soundness of a font are not validated; a buffer
// passing this check may still be malformed.
func CheckSignature(b []byte) bool {
	sig, ok := ReadSignature(b)
	return ok && sig.Known()
}

// Known is a predicate: is sig one of the recognized signatures?
func (sig Signature) Known() bool {
	switch sig {
	case TrueType, OpenTypeCFF, AppleTrueType, Collection:
		return true
	}
	return false
}

func (sig Signature) String() string {
	switch sig {
	case TrueType:
		return "TrueType"
	case OpenTypeCFF:
		return "OpenTypeCFF"
	case AppleTrueType:
		return "AppleTrueType"
	case Collection:
		return "TrueTypeCollection"
	}
	return "Unknown"
}

// GoString prints the signature as a hex number.
func (sig Signature) GoString() string {
	return fmt.Sprintf("0x%08X", uint32(sig))
}
