// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func cons(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 2)
	if err != nil {
		return task.Partial, err
	}

	car, err := own(v[0])
	if err != nil {
		return task.Partial, err
	}

	cdr, err := elements(v[1])
	if err != nil {
		return task.Partial, err
	}

	return resultList(t, append([]*term.T{car}, cdr...))
}

// A reference to a list evaluates to a reference to its first element.
func first(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	l, err := nonempty(v[0])
	if err != nil {
		return task.Partial, err
	}

	if r, ok := ref.To(v[0].Value); ok {
		return result(t, ref.New(l.Children[0], r.Tags&^term.Unique, r.Env))
	}

	t.MoveFrom(l.Children[0])
	t.Tags = t.Tags.Value()

	return task.Clean, nil
}

func list(t *term.T, _ *task.T) (task.Status, error) {
	children := make([]*term.T, len(t.Children))

	for i, x := range t.Children {
		v, err := own(x)
		if err != nil {
			return task.Partial, err
		}

		children[i] = v
	}

	return resultList(t, children)
}

func rest(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	if _, err := nonempty(v[0]); err != nil {
		return task.Partial, err
	}

	l, err := elements(v[0])
	if err != nil {
		return task.Partial, err
	}

	return resultList(t, l[1:])
}

// The elements of the list x, copied if x is a reference.
func elements(x *term.T) ([]*term.T, error) {
	l, err := value(x)
	if err != nil {
		return nil, err
	}

	if !l.IsList() {
		return nil, errs.Errorf(errs.ListTypeError, "expected a list, found %s", describe(l))
	}

	if !ref.Is(x.Value) {
		return l.Children, nil
	}

	c := l.Copy()

	return c.Children, nil
}

func nonempty(x *term.T) (*term.T, error) {
	l, err := value(x)
	if err != nil {
		return nil, err
	}

	if !l.IsBranch() || l.Value != nil {
		return nil, errs.Errorf(errs.ListTypeError, "expected a non-empty list, found %s", describe(l))
	}

	return l, nil
}
