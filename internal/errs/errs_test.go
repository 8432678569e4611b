// Released under an MIT license. See LICENSE.

package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := Errorf(TypeError, "expected %s", "a number")
	assert.Equal(t, "TypeError: expected a number", err.Error())

	nested := Nest(InvalidSyntax, New(BadIdentifier, "duplicate parameter 'x'"), "malformed parameter tree")
	assert.Equal(t,
		"InvalidSyntax: malformed parameter tree: BadIdentifier: duplicate parameter 'x'",
		nested.Error())
}

func TestKindOf(t *testing.T) {
	nested := Nest(InvalidSyntax, New(BadIdentifier, "x"), "y")

	assert.Equal(t, InvalidSyntax, KindOf(nested))
	assert.Equal(t, ArityMismatch, KindOf(fmt.Errorf("wrapped: %w", New(ArityMismatch, ""))))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestIs(t *testing.T) {
	nested := Nest(InvalidSyntax, New(BadIdentifier, "x"), "y")

	assert.ErrorIs(t, nested, ErrInvalidSyntax)
	assert.ErrorIs(t, nested, ErrBadIdentifier)
	assert.NotErrorIs(t, nested, ErrTypeError)
	assert.ErrorIs(t, nested, New(BadIdentifier, "x"))
	assert.NotErrorIs(t, nested, New(BadIdentifier, "z"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "InvalidReference", InvalidReference.String())
	assert.Equal(t, "Error", Kind(-1).String())
	assert.Equal(t, "Error", Kind(100).String())
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 operand", Count(1, "operand", "s"))
	assert.Equal(t, "0 operands", Count(0, "operand", "s"))
	assert.Equal(t, "3 operands", Count(3, "operand", "s"))
}
