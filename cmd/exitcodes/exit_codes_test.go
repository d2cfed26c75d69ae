package exitcodes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestGetInnerErrorAndExitCode ensures exit codes are unwrapped from errors reaching main.
func TestGetInnerErrorAndExitCode(t *testing.T) {
	err, code := GetInnerErrorAndExitCode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ExitCodeSuccess, code)

	plain := errors.New("plain")
	err, code = GetInnerErrorAndExitCode(plain)
	assert.Equal(t, plain, err)
	assert.Equal(t, ExitCodeGeneralError, code)

	sentinel := errors.New("sentinel")
	wrapped := NewErrorWithExitCode(errors.Wrap(sentinel, "context"), ExitCodeBuildConfigError)
	assert.True(t, errors.Is(wrapped, sentinel))
	err, code = GetInnerErrorAndExitCode(wrapped)
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, ExitCodeBuildConfigError, code)
	assert.True(t, IsLogged(code))
	assert.False(t, IsLogged(ExitCodeGeneralError))

	// Context added above the exit code does not hide it
	err, code = GetInnerErrorAndExitCode(errors.Wrap(wrapped, "generate"))
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, ExitCodeBuildConfigError, code)
}
