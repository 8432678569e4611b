// Released under an MIT license. See LICENSE.

package commands

import (
	"io"
	"strings"

	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func display(t *term.T, c *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	x, err := value(v[0])
	if err != nil {
		return task.Partial, err
	}

	if _, err := io.WriteString(c.Output, term.Display(x)); err != nil {
		return task.Partial, err
	}

	return inert(t)
}

func isString(x *term.T) bool {
	_, ok := x.Value.(string)

	return ok && x.IsLeaf()
}

func newline(t *term.T, c *task.T) (task.Status, error) {
	if _, err := validate.Exactly(t, 0); err != nil {
		return task.Partial, err
	}

	if _, err := io.WriteString(c.Output, "\n"); err != nil {
		return task.Partial, err
	}

	return inert(t)
}

func raiseInvalidSyntax(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 1)
	if err != nil {
		return task.Partial, err
	}

	s, err := str(v[0])
	if err != nil {
		return task.Partial, err
	}

	return task.Partial, errs.New(errs.InvalidSyntax, s)
}

func stringAppend(t *term.T, _ *task.T) (task.Status, error) {
	var b strings.Builder

	for _, x := range t.Children {
		s, err := str(x)
		if err != nil {
			return task.Partial, err
		}

		b.WriteString(s)
	}

	return result(t, b.String())
}

func str(x *term.T) (string, error) {
	v, err := value(x)
	if err != nil {
		return "", err
	}

	s, ok := v.Value.(string)
	if !ok || !v.IsLeaf() {
		return "", errs.Errorf(errs.TypeError, "expected a string, found %s", describe(v))
	}

	return s, nil
}
