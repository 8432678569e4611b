// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
	"github.com/michaelmacinnis/unilang/internal/typename"
)

func asConst(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	r, ok := ref.To(v[0].Value)
	if !ok {
		return task.Partial, errs.Errorf(errs.ValueCategoryMismatch,
			"expected a reference, found %s", describe(v[0]))
	}

	return result(t, r.With(term.Nonmodifying))
}

func forward(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	r, ok := ref.To(v[0].Value)
	if !ok || !r.Modifiable() {
		t.MoveFrom(v[0])

		return task.Neutral, nil
	}

	return result(t, r.With(term.Unique))
}

func move(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	x := v[0]

	if r, ok := ref.To(x.Value); ok {
		if !r.Modifiable() {
			return task.Partial, errs.New(errs.TypeError,
				"cannot move from a nonmodifiable reference")
		}

		x, err = r.Deref()
		if err != nil {
			return task.Partial, err
		}
	}

	t.MoveFrom(x)
	t.Tags = t.Tags.Value()

	return task.Clean, nil
}

// Helpers.

func describe(x *term.T) string {
	v, err := ref.Referent(x)
	if err != nil {
		return "an expired reference"
	}

	switch {
	case v.IsBranch():
		return "a list"
	case v.IsEmpty():
		return "an empty list"
	}

	return typename.Of(v.Value) + " " + term.Literal(v.Value)
}

// The environment named by x.
func environment(x *term.T) (*env.T, error) {
	v, err := ref.Referent(x)
	if err != nil {
		return nil, err
	}

	if !v.IsLeaf() {
		return nil, errs.Errorf(errs.TypeError, "expected an environment, found %s", describe(v))
	}

	e, err := env.Of(v.Value)
	if errs.KindOf(err) == errs.TypeError {
		return nil, errs.Errorf(errs.TypeError, "expected an environment, found %s", describe(v))
	} else if err != nil {
		return nil, err
	}

	return e, nil
}

func inert(t *term.T) (task.Status, error) {
	return result(t, term.Inert)
}

// The value of x, stripped of its in-flight status. A reference is replaced
// by the value it refers to.
func own(x *term.T) (*term.T, error) {
	if err := task.Lift(x, nil); err != nil {
		return nil, err
	}

	x.Tags = x.Tags.Value()

	return x, nil
}

func result(t *term.T, v interface{}) (task.Status, error) {
	t.SetValue(v)
	t.Tags = term.Unqualified

	return task.Clean, nil
}

func resultList(t *term.T, children []*term.T) (task.Status, error) {
	t.Value, t.Children, t.Tags = nil, children, term.Unqualified

	return task.Retained, nil
}

// The value held by x. A value reached through a reference is duplicated.
func take(x *term.T) (interface{}, error) {
	r, ok := ref.To(x.Value)
	if !ok {
		return x.Value, nil
	}

	v, err := r.Deref()
	if err != nil {
		return nil, err
	}

	if d, ok := v.Value.(term.Duplicator); ok {
		return d.Dup(), nil
	}

	return v.Value, nil
}

func value(x *term.T) (*term.T, error) {
	return ref.Referent(x)
}

// Evaluate x and then call a.
func then(t, x *term.T, c *task.T, a eval.Action) (task.Status, error) {
	c.PushOp(a.Bind(t))
	c.PushOp(eval.Reducer(x))

	return task.Partial, nil
}
