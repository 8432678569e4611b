// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func compare(ok func(int) bool) eval.Handler {
	return func(t *term.T, _ *task.T) (task.Status, error) {
		if _, _, err := validate.Variadic(t, 2, 2); err != nil {
			return task.Partial, err
		}

		prev, err := number(t.Children[0])
		if err != nil {
			return task.Partial, err
		}

		for _, x := range t.Children[1:] {
			curr, err := number(x)
			if err != nil {
				return task.Partial, err
			}

			if !ok(cmp(prev, curr)) {
				return result(t, false)
			}

			prev = curr
		}

		return result(t, true)
	}
}

func cmp(a, b interface{}) int {
	x, xok := a.(int64)
	y, yok := b.(int64)

	if !xok || !yok {
		f, g := float(a), float(b)

		switch {
		case f < g:
			return -1
		case f > g:
			return 1
		}

		return 0
	}

	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}

	return 0
}

// Lists are eq? only if they are the same list.
func eq(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 2)
	if err != nil {
		return task.Partial, err
	}

	a, err := value(v[0])
	if err != nil {
		return task.Partial, err
	}

	b, err := value(v[1])
	if err != nil {
		return task.Partial, err
	}

	if a == b {
		return result(t, true)
	}

	if a.IsBranch() || b.IsBranch() {
		return result(t, false)
	}

	return result(t, a.Value == b.Value)
}

func eqv(t *term.T, _ *task.T) (task.Status, error) {
	v, err := validate.Exactly(t, 2)
	if err != nil {
		return task.Partial, err
	}

	a, err := value(v[0])
	if err != nil {
		return task.Partial, err
	}

	b, err := value(v[1])
	if err != nil {
		return task.Partial, err
	}

	return result(t, equal(a, b))
}

func equal(a, b *term.T) bool {
	type pair struct{ a, b *term.T }

	pending := []pair{{a, b}}
	for len(pending) != 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if p.a.Value != p.b.Value || len(p.a.Children) != len(p.b.Children) {
			return false
		}

		for i := range p.a.Children {
			pending = append(pending, pair{p.a.Children[i], p.b.Children[i]})
		}
	}

	return true
}
