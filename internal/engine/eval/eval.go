// Released under an MIT license. See LICENSE.

// Package eval reduces unilang terms.
//
// A term is reduced in place. A symbol is replaced by a reference to its
// binding, a combination is replaced by the result of combining its operator
// with its operands, and anything else evaluates to itself. Every step that
// needs another term reduced first pushes the work onto the task and returns.
package eval

import (
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
	"github.com/michaelmacinnis/unilang/internal/typename"
)

// Action is a continuation that works on a term.
type Action func(t *term.T, c *task.T) (task.Status, error)

// Bind returns an operation that calls a with t.
func (a Action) Bind(t *term.T) task.Op {
	return &bound{a, t}
}

type bound struct {
	a Action
	t *term.T
}

func (b *bound) Name() string {
	return "continue"
}

func (b *bound) Perform(c *task.T) (task.Status, error) {
	return b.a(b.t, c)
}

// ReduceOnce performs a single reduction step on t.
func ReduceOnce(t *term.T, c *task.T) (task.Status, error) {
	if t.IsBranch() {
		c.PushOp(&combination{t})
		c.PushOp(Reducer(t.Children[0]))

		return task.Partial, nil
	}

	k, ok := t.Value.(term.Symbol)
	if !ok {
		return task.Neutral, nil
	}

	if v, ok := term.ParseLiteral(string(k)); ok {
		t.SetValue(v)

		return task.Retrying, nil
	}

	b, owner, err := env.Lookup(c.Env(), k)
	if err != nil {
		return task.Partial, err
	}

	if r, ok := ref.To(b.Value); ok {
		// A reference to a reference collapses.
		d, _ := r.Dup().(*ref.T)
		t.SetValue(d.With(b.Tags & term.Nonmodifying))
	} else {
		t.SetValue(ref.New(b, term.Unqualified, owner.Weaken()))
	}

	t.Tags = term.Unqualified

	return task.Clean, nil
}

// Reduce reduces t until it no longer asks to be retried.
func Reduce(t *term.T, c *task.T) (task.Status, error) {
	for {
		s, err := ReduceOnce(t, c)
		if err != nil || s != task.Retrying {
			return s, err
		}
	}
}

// Reducer returns an operation that reduces t.
func Reducer(t *term.T) task.Op {
	return &reduction{t}
}

type reduction struct {
	t *term.T
}

func (r *reduction) Name() string {
	return "reduce"
}

func (r *reduction) Perform(c *task.T) (task.Status, error) {
	c.Next = r.t

	return Reduce(r.t, c)
}

type combination struct {
	t *term.T
}

func (o *combination) Name() string {
	return "combine"
}

func (o *combination) Perform(c *task.T) (task.Status, error) {
	c.Next = o.t

	return Combine(o.t, c)
}

// Combine combines the reduced operator at the front of t with the rest of
// t's children.
func Combine(t *term.T, c *task.T) (task.Status, error) {
	op := t.Children[0]

	v, err := ref.Referent(op)
	if err != nil {
		return task.Partial, err
	}

	cb, ok := v.Value.(Combiner)
	if !ok || !v.IsLeaf() {
		return task.Partial, errs.Errorf(errs.ListReductionFailure,
			"expected a combiner in operator position, found %s", describe(v))
	}

	if ref.Is(op.Value) {
		t.Value = op.Value
	} else {
		t.Value = cb
	}

	t.Children = t.Children[1:]

	return cb.Combine(t, c)
}

// EvalOperands reduces each of t's children, left to right, and then
// performs then on t. Results that are not references are marked as
// temporaries.
func EvalOperands(t *term.T, c *task.T, then Action) {
	c.PushOp(&operands{t: t, then: then})
}

type operands struct {
	i    int
	t    *term.T
	then Action
}

func (o *operands) Name() string {
	return "operands"
}

func (o *operands) Perform(c *task.T) (task.Status, error) {
	if o.i > 0 {
		Temporary(o.t.Children[o.i-1])
	}

	if o.i == len(o.t.Children) {
		return o.then(o.t, c)
	}

	c.PushOp(o)
	c.PushOp(Reducer(o.t.Children[o.i]))

	o.i++

	return task.Partial, nil
}

// Temporary marks x as an in-flight operand unless it holds a reference.
func Temporary(x *term.T) {
	if !ref.Is(x.Value) {
		x.Tags |= term.Temporary
	}
}

// Sequence reduces each term in body in order. The last is reduced in t's
// place. An empty body leaves #inert in t.
func Sequence(t *term.T, body []*term.T, c *task.T) (task.Status, error) {
	n := len(body)
	if n == 0 {
		t.SetValue(term.Inert)
		t.Tags = term.Unqualified

		return task.Clean, nil
	}

	last := body[n-1]
	c.PushOp(Action(func(t *term.T, c *task.T) (task.Status, error) {
		return Tail(t, last, c)
	}).Bind(t))

	for i := n - 2; i >= 0; i-- {
		c.PushOp(Reducer(body[i]))
	}

	return task.Partial, nil
}

// Tail moves x into t and reduces it there.
func Tail(t, x *term.T, c *task.T) (task.Status, error) {
	t.MoveFrom(x)

	return Reduce(t, c)
}

// Evaluate reduces t in e until no work remains.
func Evaluate(t *term.T, e *env.T, c *task.T) (task.Status, error) {
	restore := c.EnvironmentGuard(e)
	defer restore()

	return c.RewriteGuarded(Reducer(t))
}

func describe(t interface{}) string {
	switch v := t.(type) {
	case *term.T:
		if v.IsBranch() {
			return "a list"
		}

		if v.IsEmpty() {
			return "an empty list"
		}

		return describe(v.Value)
	case term.Symbol:
		return "symbol '" + string(v) + "'"
	}

	return typename.Of(t) + " " + term.Literal(t)
}
