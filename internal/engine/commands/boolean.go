// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Type predicates look through references.
func is(p func(*term.T) bool) eval.Handler {
	return func(t *term.T, _ *task.T) (task.Status, error) {
		v, err := validate.Exactly(t, 1)
		if err != nil {
			return task.Partial, err
		}

		x, err := value(v[0])
		if err != nil {
			return task.Partial, err
		}

		return result(t, p(x))
	}
}

func isApplicative(x *term.T) bool {
	_, ok := x.Value.(*eval.Applicative)

	return ok && x.IsLeaf()
}

func isBoolean(x *term.T) bool {
	_, ok := x.Value.(bool)

	return ok && x.IsLeaf()
}

func isCombiner(x *term.T) bool {
	return eval.IsCombiner(x.Value) && x.IsLeaf()
}

func isEnvironment(x *term.T) bool {
	return env.IsHandle(x.Value) && x.IsLeaf()
}

func isInteger(x *term.T) bool {
	_, ok := x.Value.(int64)

	return ok && x.IsLeaf()
}

func isList(x *term.T) bool {
	return x.IsList()
}

func isNull(x *term.T) bool {
	return x.IsEmpty()
}

func isOperative(x *term.T) bool {
	return isCombiner(x) && !isApplicative(x)
}

// Unlike the other predicates this one looks at its operand itself.
func isReference(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	return result(t, ref.Is(v[0].Value))
}
