package core

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfNil(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
}

func TestWrapErrorKeepsChain(t *testing.T) {
	err := WrapError(fs.ErrNotExist, EMISSING, "could not find font %s", "Go Regular")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "could not find font Go Regular", UserMessage(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "expected wrapped error to be found in chain")
	assert.Contains(t, err.Error(), "[122]")
}

func TestErrorWithoutCause(t *testing.T) {
	err := Error(ERASTER, "glyph %q has size zero", 'A')
	assert.Equal(t, ERASTER, Code(err))
	assert.Equal(t, `glyph 'A' has size zero`, UserMessage(err))
}

func TestForeignErrorIsInternal(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, EINTERNAL, Code(err))
	assert.Equal(t, "internal error", UserMessage(err))
}

func TestErrorWithCodeWrapsNil(t *testing.T) {
	err := ErrorWithCode(nil, ESHORTREAD)
	assert.Equal(t, ESHORTREAD, Code(err))
	assert.Equal(t, "short read", UserMessage(err))
}
