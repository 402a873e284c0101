package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EMISSING, "no font %q", "x")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, `no font "x"`, UserMessage(err))
	assert.Equal(t, `[122] no font "x": not found`, err.Error())
}

func TestWrappedErrors(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("loading: %w", WrapError(cause, EFONTLOAD, "cannot load"))
	assert.Equal(t, EFONTLOAD, Code(err))
	assert.Equal(t, "cannot load", UserMessage(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "internal error", UserMessage(errors.New("plain")))
}
