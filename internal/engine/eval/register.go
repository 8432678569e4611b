// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// RegisterForm binds name in e to a native operative.
func RegisterForm(e *env.T, name string, h Handler) error {
	return e.Define(term.Symbol(name), term.NewAtom(&Form{name, h}))
}

// RegisterStrict binds name in e to a native applicative. The handler sees
// evaluated operands.
func RegisterStrict(e *env.T, name string, h Handler) error {
	return e.Define(term.Symbol(name), term.NewAtom(Wrap(&Form{name, h})))
}
