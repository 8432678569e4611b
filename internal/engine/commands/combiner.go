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

// The $vau and $lambda families. A $lambda has no environment parameter and
// is wrapped. The /e variants take their static environment as their first
// operand. The % variants forward references instead of lifting them.
func closure(lambda, explicit, lift bool) eval.Handler {
	n := 2
	if lambda {
		n = 1
	}

	if explicit {
		n++
	}

	build := func(t *term.T, static interface{}, v []*term.T) (task.Status, error) {
		cl, err := newClosure(static, v, lambda, lift)
		if err != nil {
			return task.Partial, err
		}

		if lambda {
			return result(t, eval.Wrap(cl))
		}

		return result(t, cl)
	}

	return func(t *term.T, c *task.T) (task.Status, error) {
		if _, _, err := validate.Variadic(t, n, n); err != nil {
			return task.Partial, err
		}

		v := t.Children

		if !explicit {
			return build(t, c.Env().Weaken(), v)
		}

		return then(t, v[0], c, func(t *term.T, c *task.T) (task.Status, error) {
			static, err := staticEnvironment(v[0])
			if err != nil {
				return task.Partial, err
			}

			return build(t, static, v[1:])
		})
	}
}

// The $defl! and $defv! forms bind a new closure to a name in the current
// environment.
func defineClosure(lambda bool) eval.Handler {
	n := 3
	if lambda {
		n = 2
	}

	return func(t *term.T, c *task.T) (task.Status, error) {
		if _, _, err := validate.Variadic(t, n, n); err != nil {
			return task.Partial, err
		}

		k, ok := t.Children[0].Value.(term.Symbol)
		if !ok || !t.Children[0].IsLeaf() {
			return task.Partial, errs.Errorf(errs.InvalidSyntax,
				"expected a name to define, found %s", describe(t.Children[0]))
		}

		cl, err := newClosure(c.Env().Weaken(), t.Children[1:], lambda, true)
		if err != nil {
			return task.Partial, err
		}

		cl.Label = string(k)

		var v interface{} = cl
		if lambda {
			v = eval.Wrap(cl)
		}

		if err := c.Env().Define(k, term.NewAtom(v)); err != nil {
			return task.Partial, err
		}

		return inert(t)
	}
}

// Operands are the parameter tree, the environment parameter (for
// operatives) and the body.
func newClosure(static interface{}, v []*term.T, lambda, lift bool) (*eval.Closure, error) {
	formals := v[0]
	if err := bind.Check(formals); err != nil {
		return nil, errs.Nest(errs.InvalidSyntax, err, "malformed parameter tree")
	}

	body := v[1:]

	var eformal term.Symbol

	if !lambda {
		e := v[1]
		body = v[2:]

		switch k := e.Value.(type) {
		case term.Special:
			if k != term.Ignore || !e.IsLeaf() {
				return nil, errs.Errorf(errs.InvalidSyntax, "expected an environment parameter, found %s", e)
			}
		case term.Symbol:
			if sigil, _ := bind.Split(k); sigil != bind.None || !e.IsLeaf() {
				return nil, errs.Errorf(errs.InvalidSyntax, "expected an environment parameter, found %s", e)
			}

			eformal = k
		default:
			return nil, errs.Errorf(errs.InvalidSyntax, "expected an environment parameter, found %s", e)
		}
	}

	return eval.NewClosure(static, formals, eformal, body, lift), nil
}

// A static environment supplied as an owning handle is kept owned.
func staticEnvironment(x *term.T) (interface{}, error) {
	v, err := value(x)
	if err != nil {
		return nil, err
	}

	switch h := v.Value.(type) {
	case env.Ref:
		if _, err := h.Get(); err != nil {
			return nil, err
		}

		return h, nil
	case env.Shared:
		return h, nil
	}

	return nil, errs.Errorf(errs.TypeError, "expected an environment, found %s", describe(v))
}

func wrap(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	c, err := take(v[0])
	if err != nil {
		return task.Partial, err
	}

	cb, ok := c.(eval.Combiner)
	if !ok {
		return task.Partial, errs.Errorf(errs.TypeError, "expected a combiner, found %s", describe(v[0]))
	}

	return result(t, eval.Wrap(cb))
}

func unwrap(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	c, err := take(v[0])
	if err != nil {
		return task.Partial, err
	}

	u, err := eval.Unwrap(c)
	if err != nil {
		return task.Partial, err
	}

	return result(t, u)
}

// The eval applicative reduces its first operand in the environment named
// by its second. The eval% variant forwards a resulting reference.
//
// The reduction joins any tail call chain already running in t, so a loop
// that recurs through eval runs in constant space.
func evaluate(lift bool) eval.Handler {
	self := &eval.Form{Label: "eval"}
	if !lift {
		self.Label = "eval%"
	}

	return func(t *term.T, c *task.T) (task.Status, error) {
		v, err := validate.Exactly(t, 2)
		if err != nil {
			return task.Partial, err
		}

		e, err := environment(v[1])
		if err != nil {
			return task.Partial, err
		}

		x := v[0]
		if r, ok := ref.To(x.Value); ok {
			d, err := r.Deref()
			if err != nil {
				return task.Partial, err
			}

			x = d.Copy()
		}

		c.SetupTail(t, self, e, lift)

		return eval.Tail(t, x, c)
	}
}

// The one-shot continuation passed by call/1cc.
type continuation struct {
	k *task.Continuation
}

func (k *continuation) Combine(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	return task.Partial, k.k.Invoke(v[0])
}

func (k *continuation) Name() string {
	return "continuation"
}

func (k *continuation) String() string {
	if !k.k.Valid() {
		return "#[continuation expired]"
	}

	return "#[continuation]"
}

func callWithOneShot(t *term.T, c *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	f := v[0]

	k := c.Capture(t)

	t.Children = []*term.T{f, term.NewAtom(eval.Wrap(&continuation{k}))}

	return eval.Combine(t, c)
}
