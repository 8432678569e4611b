// Released under an MIT license. See LICENSE.

// Package bind matches parameter trees against operand trees.
//
// A parameter tree is a symbol, #ignore, the empty list or a list of
// parameter trees. The last element of a list may be a symbol starting with
// a dot, which binds the remaining operands as a list. A lone dot ignores
// them. A symbol may start with a sigil:
//
//	&name   bind a reference to a modifiable operand
//	%name   bind a reference if the operand is one, otherwise its value
//	@name   bind a reference to an operand that must be a reference
//
// Without a sigil the operand's value is bound. Temporaries are moved and
// anything else is copied.
package bind

import (
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Sigils.
const (
	None      = 0
	Reference = '&'
	Forward   = '%'
	Object    = '@'
)

type job struct {
	p, a *term.T

	// If set, a is an element of a list reached through this reference.
	via *ref.T

	// If set, a is a list already built for a rest parameter.
	built bool
}

// Bind checks the parameter tree p and then binds it against a in e.
// Operands that are not references but must be bound as references are
// owned by owner.
func Bind(e *env.T, p, a *term.T, owner env.Ref) error {
	if err := Check(p); err != nil {
		return errs.Nest(errs.InvalidSyntax, err, "malformed parameter tree")
	}

	return BindWellFormed(e, p, a, owner)
}

// BindWellFormed binds the parameter tree p, which must already have been
// checked, against a in e.
func BindWellFormed(e *env.T, p, a *term.T, owner env.Ref) error {
	pending := []job{{p: p, a: a}}

	for len(pending) != 0 {
		j := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		var err error

		switch {
		case j.p.IsBranch():
			pending, err = list(e, j, pending)
		case j.p.IsEmpty():
			err = empty(j)
		default:
			err = leaf(e, j, owner)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Split returns the sigil and name of the parameter symbol s.
func Split(s term.Symbol) (byte, term.Symbol) {
	if len(s) > 1 {
		switch s[0] {
		case Reference, Forward, Object:
			return s[0], s[1:]
		}
	}

	return None, s
}

func empty(j job) error {
	v, _, err := operand(j)
	if err != nil {
		return err
	}

	if !v.IsEmpty() {
		return errs.Errorf(errs.ArityMismatch, "expected no operands, got %s", v)
	}

	return nil
}

func leaf(e *env.T, j job, owner env.Ref) error {
	s, ok := j.p.Value.(term.Symbol)
	if !ok {
		// #ignore.
		return nil
	}

	sigil, name := Split(s)

	v, r, err := operand(j)
	if err != nil {
		return err
	}

	var x *term.T

	switch sigil {
	case None:
		x = &term.T{}

		switch {
		case r == nil && j.a.IsBranch() && !j.built:
			// A whole operand list bound to one name.
			if x, err = remainder(None, j.a.Children, nil); err != nil {
				return err
			}

			j.a.Children, j.a.Tags = nil, term.Unqualified
		case r == nil:
			x.MoveFrom(j.a)
			x.Tags = x.Tags.Value()
		case r.Movable():
			x.MoveFrom(v)
			x.Tags = x.Tags.Value()
		default:
			x = v.Copy()
			x.Tags = term.Unqualified
		}
	case Reference:
		if r == nil {
			if j.a.Tags.Has(term.Temporary) {
				return errs.Errorf(errs.InvalidReference,
					"cannot bind a temporary to '%s'", s)
			}

			r = ref.New(j.a, term.Unqualified, owner)
		}

		if !r.Modifiable() {
			return errs.Errorf(errs.TypeError,
				"cannot bind a nonmodifiable reference to '%s'", s)
		}

		x = term.NewAtom(r.Dup())
	case Forward:
		if r == nil {
			x = &term.T{}
			x.MoveFrom(j.a)
			x.Tags = x.Tags.Value()
		} else {
			x = term.NewAtom(r.Dup())
		}
	case Object:
		if r == nil {
			return errs.Errorf(errs.InvalidReference,
				"expected a reference to bind to '%s'", s)
		}

		x = term.NewAtom(r.Dup())
	}

	return e.Define(name, x)
}

func list(e *env.T, j job, pending []job) ([]job, error) {
	v, r, err := operand(j)
	if err != nil {
		return pending, err
	}

	if !v.IsList() {
		return pending, errs.Errorf(errs.ListTypeError,
			"expected a list of operands, got %s", v)
	}

	ps := j.p.Children
	n := len(ps)

	rest, ok := restName(ps[n-1])
	if ok {
		n--
	}

	m := len(v.Children)

	switch {
	case ok && m < n:
		return pending, errs.Errorf(errs.ArityMismatch,
			"expected at least %s, got %d", errs.Count(n, "operand", "s"), m)
	case !ok && m != n:
		return pending, errs.Errorf(errs.ArityMismatch,
			"expected %s, got %d", errs.Count(n, "operand", "s"), m)
	}

	if ok && rest != "" {
		sigil, name := Split(rest)

		l, err := remainder(sigil, v.Children[n:], r)
		if err != nil {
			return pending, err
		}

		// The list is new so it is always bound by value.
		pending = append(pending, job{p: term.NewAtom(name), a: l, built: true})
	}

	for i := n - 1; i >= 0; i-- {
		pending = append(pending, job{p: ps[i], a: v.Children[i], via: r})
	}

	return pending, nil
}

// operand returns the term holding j's operand and, if the operand is
// reached through a reference, that reference.
func operand(j job) (*term.T, *ref.T, error) {
	if r, ok := ref.To(j.a.Value); ok && j.a.IsLeaf() {
		v, err := r.Deref()

		return v, r, err
	}

	if j.via != nil {
		return j.a, ref.New(j.a, j.via.Tags, j.via.Env), nil
	}

	return j.a, nil, nil
}

// remainder builds the list bound to a rest parameter. Without a sigil the
// elements are values: references are replaced by copies of their referents.
// With a sigil, elements reached through a reference are referred to and any
// other element is kept as it is.
func remainder(sigil byte, elems []*term.T, via *ref.T) (*term.T, error) {
	l := term.NewBranch()

	for _, c := range elems {
		var (
			r  *ref.T
			ok bool
		)

		if via != nil {
			r = ref.New(c, via.Tags, via.Env)
		} else if r, ok = ref.To(c.Value); !ok || !c.IsLeaf() {
			c.Tags = c.Tags.Value()
			l.Children = append(l.Children, c)

			continue
		}

		if sigil != None {
			l.Children = append(l.Children, term.NewAtom(r.Dup()))

			continue
		}

		v, err := r.Deref()
		if err != nil {
			return nil, err
		}

		x := v.Copy()
		x.Tags = term.Unqualified

		l.Children = append(l.Children, x)
	}

	return l, nil
}

// restName returns the name bound by the trailing parameter p, if p is a
// rest parameter. The name is empty for a lone dot.
func restName(p *term.T) (term.Symbol, bool) {
	s, ok := p.Value.(term.Symbol)
	if !ok || !p.IsLeaf() || len(s) == 0 || s[0] != '.' {
		return "", false
	}

	return s[1:], true
}
