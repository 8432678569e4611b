// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/bind"
	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func and(t *term.T, c *task.T) (task.Status, error) {
	return junction(t, c, false)
}

func or(t *term.T, c *task.T) (task.Status, error) {
	return junction(t, c, true)
}

// Operands are evaluated until one has the truth value stop. The last
// operand is evaluated in tail position.
func junction(t *term.T, c *task.T, stop bool) (task.Status, error) {
	xs := t.Children
	if len(xs) == 0 {
		return result(t, !stop)
	}

	i := 0

	var step eval.Action

	step = func(t *term.T, c *task.T) (task.Status, error) {
		if i > 0 {
			b, err := truthy(xs[i-1])
			if err != nil {
				return task.Partial, err
			}

			if b == stop {
				return result(t, stop)
			}
		}

		if i == len(xs)-1 {
			return eval.Tail(t, xs[i], c)
		}

		i++

		return then(t, xs[i-1], c, step)
	}

	return step(t, c)
}

func cond(t *term.T, c *task.T) (task.Status, error) {
	clauses := t.Children
	for _, cl := range clauses {
		if !cl.IsBranch() {
			return task.Partial, errs.New(errs.InvalidSyntax, "$cond clause must be a non-empty list")
		}
	}

	i := 0

	var step eval.Action

	step = func(t *term.T, c *task.T) (task.Status, error) {
		if i > 0 {
			cl := clauses[i-1]

			b, err := truthy(cl.Children[0])
			if err != nil {
				return task.Partial, err
			}

			if b {
				return eval.Sequence(t, cl.Children[1:], c)
			}
		}

		if i == len(clauses) {
			return inert(t)
		}

		i++

		return then(t, clauses[i-1].Children[0], c, step)
	}

	return step(t, c)
}

func conditional(t *term.T, c *task.T) (task.Status, error) {
	v, err := validate.Fixed(t, 2, 3)
	if err != nil {
		return task.Partial, err
	}

	return then(t, v[0], c, func(t *term.T, c *task.T) (task.Status, error) {
		b, err := truthy(v[0])
		if err != nil {
			return task.Partial, err
		}

		if b {
			return eval.Tail(t, v[1], c)
		}

		if len(v) == 3 {
			return eval.Tail(t, v[2], c)
		}

		return inert(t)
	})
}

func def(t *term.T, c *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 2)
	if err != nil {
		return task.Partial, err
	}

	formals, x := v[0], v[1]

	return then(t, x, c, func(t *term.T, c *task.T) (task.Status, error) {
		return define(t, c.Env(), formals, x, c)
	})
}

func set(t *term.T, c *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 3)
	if err != nil {
		return task.Partial, err
	}

	target, formals, x := v[0], v[1], v[2]

	c.PushOp(eval.Action(func(t *term.T, c *task.T) (task.Status, error) {
		e, err := environment(target)
		if err != nil {
			return task.Partial, err
		}

		return define(t, e, formals, x, c)
	}).Bind(t))
	c.PushOp(eval.Reducer(x))
	c.PushOp(eval.Reducer(target))

	return task.Partial, nil
}

func define(t *term.T, e *env.T, formals, x *term.T, c *task.T) (task.Status, error) {
	eval.Temporary(x)

	if k, ok := formals.Value.(term.Symbol); ok && formals.IsLeaf() {
		if v, err := ref.Referent(x); err == nil {
			_, name := bind.Split(k)
			eval.Label(v.Value, string(name))
		}
	}

	if err := bind.Bind(e, formals, x, c.Env().Weaken()); err != nil {
		return task.Partial, err
	}

	return inert(t)
}

func let(t *term.T, c *task.T) (task.Status, error) {
	v, _, err := validate.Variadic(t, 1, 1)
	if err != nil {
		return task.Partial, err
	}

	if !v[0].IsList() {
		return task.Partial, errs.New(errs.InvalidSyntax, "$let expects a list of bindings")
	}

	body := t.Children[1:]

	names := term.NewBranch()
	inits := term.NewBranch()

	for _, b := range v[0].Children {
		if len(b.Children) != 2 || b.Value != nil {
			return task.Partial, errs.Errorf(errs.InvalidSyntax,
				"$let binding must be a list of a name and an expression, found %s", b)
		}

		names.Children = append(names.Children, b.Children[0])
		inits.Children = append(inits.Children, b.Children[1])
	}

	if err := bind.Check(names); err != nil {
		return task.Partial, errs.Nest(errs.InvalidSyntax, err, "malformed $let bindings")
	}

	eval.EvalOperands(inits, c, func(operands *term.T, c *task.T) (task.Status, error) {
		frame := env.New(c.Env().Weaken())

		if err := bind.BindWellFormed(frame, names, operands, c.Env().Weaken()); err != nil {
			frame.Hold()
			frame.Drop()

			return task.Partial, err
		}

		c.SetupTail(t, term.Symbol("$let"), frame, true)

		return eval.Sequence(t, body, c)
	})

	return task.Partial, nil
}

func sequence(t *term.T, c *task.T) (task.Status, error) {
	return eval.Sequence(t, t.Children, c)
}

func not(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	b, err := truthy(v[0])
	if err != nil {
		return task.Partial, err
	}

	return result(t, !b)
}

// Everything but #f is true.
func truthy(x *term.T) (bool, error) {
	v, err := value(x)
	if err != nil {
		return false, err
	}

	b, ok := v.Value.(bool)

	return !ok || b || v.IsBranch(), nil
}
