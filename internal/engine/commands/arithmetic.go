// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Numbers are integers until an operation needs a fraction.
type operation struct {
	ints   func(a, b int64) (interface{}, error)
	floats func(a, b float64) float64
}

var (
	addition = operation{ //nolint:gochecknoglobals
		func(a, b int64) (interface{}, error) { return a + b, nil },
		func(a, b float64) float64 { return a + b },
	}
	division = operation{ //nolint:gochecknoglobals
		func(a, b int64) (interface{}, error) {
			if b == 0 {
				return nil, errs.New(errs.TypeError, "division by zero")
			}

			if a%b != 0 {
				return float64(a) / float64(b), nil
			}

			return a / b, nil
		},
		func(a, b float64) float64 { return a / b },
	}
	multiplication = operation{ //nolint:gochecknoglobals
		func(a, b int64) (interface{}, error) { return a * b, nil },
		func(a, b float64) float64 { return a * b },
	}
	subtraction = operation{ //nolint:gochecknoglobals
		func(a, b int64) (interface{}, error) { return a - b, nil },
		func(a, b float64) float64 { return a - b },
	}
)

func add(t *term.T, _ *task.T) (task.Status, error) {
	return fold(t, int64(0), t.Children, addition)
}

func div(t *term.T, _ *task.T) (task.Status, error) {
	v, rest, err := validate.Variadic(t, 1, 1)
	if err != nil {
		return task.Partial, err
	}

	if len(rest) == 0 {
		return fold(t, int64(1), v, division)
	}

	n, err := number(v[0])
	if err != nil {
		return task.Partial, err
	}

	return fold(t, n, rest, division)
}

func mul(t *term.T, _ *task.T) (task.Status, error) {
	return fold(t, int64(1), t.Children, multiplication)
}

func sub(t *term.T, _ *task.T) (task.Status, error) {
	v, rest, err := validate.Variadic(t, 1, 1)
	if err != nil {
		return task.Partial, err
	}

	if len(rest) == 0 {
		return fold(t, int64(0), v, subtraction)
	}

	n, err := number(v[0])
	if err != nil {
		return task.Partial, err
	}

	return fold(t, n, rest, subtraction)
}

func (o operation) apply(a, b interface{}) (interface{}, error) {
	x, xok := a.(int64)
	y, yok := b.(int64)

	if xok && yok {
		return o.ints(x, y)
	}

	return o.floats(float(a), float(b)), nil
}

func float(v interface{}) float64 {
	if i, ok := v.(int64); ok {
		return float64(i)
	}

	f, _ := v.(float64)

	return f
}

func fold(t *term.T, acc interface{}, xs []*term.T, o operation) (task.Status, error) {
	for _, x := range xs {
		n, err := number(x)
		if err != nil {
			return task.Partial, err
		}

		acc, err = o.apply(acc, n)
		if err != nil {
			return task.Partial, err
		}
	}

	return result(t, acc)
}

func number(x *term.T) (interface{}, error) {
	v, err := value(x)
	if err != nil {
		return nil, err
	}

	switch n := v.Value.(type) {
	case int64, float64:
		if v.IsLeaf() {
			return n, nil
		}
	}

	return nil, errs.Errorf(errs.TypeError, "expected a number, found %s", describe(v))
}
