// Released under an MIT license. See LICENSE.

// Package validate checks the operands passed to native combiners.
package validate

import (
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Variadic returns the first max operands in t and the rest. At least min
// operands must be present.
func Variadic(t *term.T, min, max int) ([]*term.T, []*term.T, error) {
	actual := t.Children

	if len(actual) < min {
		return nil, nil, errs.Errorf(errs.ArityMismatch,
			"expected %s, passed %d", errs.Count(min, "operand", "s"), len(actual))
	}

	if len(actual) < max {
		max = len(actual)
	}

	return actual[:max], actual[max:], nil
}

// Fixed returns the operands in t. There must be at least min and at most
// max of them.
func Fixed(t *term.T, min, max int) ([]*term.T, error) {
	expected, rest, err := Variadic(t, min, max)
	if err != nil {
		return nil, err
	}

	if len(rest) != 0 {
		return nil, errs.Errorf(errs.ArityMismatch,
			"expected %s, passed %d", errs.Count(max, "operand", "s"), len(t.Children))
	}

	return expected, nil
}

// Exactly returns the n operands in t.
func Exactly(t *term.T, n int) ([]*term.T, error) {
	return Fixed(t, n, n)
}
