package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorize(t *testing.T) {
	previous := enabled
	t.Cleanup(func() { enabled = previous })

	enabled = true
	assert.True(t, Enabled())
	assert.Equal(t, "\x1b[1mapp\x1b[0m", Bold("app"))
	assert.Equal(t, "\x1b[1m\x1b[31merr\x1b[0m\x1b[0m", RedBold("err"))

	DisableColor()
	assert.False(t, Enabled())
	assert.Equal(t, "app", Bold("app"))
	assert.Equal(t, "42", GreenBold(42))
	assert.Equal(t, "x", Reset("x"))
}
