// Released under an MIT license. See LICENSE.

package typename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type named struct{}

func (named) Name() string {
	return "named"
}

type plain struct{}

type registered struct{}

func TestOf(t *testing.T) {
	assert.Equal(t, "empty", Of(nil))
	assert.Equal(t, "string", Of(""))
	assert.Equal(t, "integer", Of(int64(1)))
	assert.Equal(t, "number", Of(1.5))
	assert.Equal(t, "boolean", Of(true))
	assert.Equal(t, "named", Of(named{}))
	assert.Equal(t, "typename.plain", Of(plain{}))
}

func TestRegister(t *testing.T) {
	Register(registered{}, "thing")

	assert.Equal(t, "thing", Of(registered{}))
	assert.Equal(t, "typename.plain", Of(plain{}))
}
