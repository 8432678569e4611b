// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/michaelmacinnis/unilang/internal/engine/bind"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Closure is an operative created by one of the $vau forms.
type Closure struct {
	Label string

	body    []*term.T
	eformal term.Symbol
	formals *term.T
	lift    bool
	shared  bool
	static  interface{}
}

// NewClosure creates an operative with the parameter tree formals, the
// environment parameter eformal (empty to ignore the dynamic environment)
// and body. The static environment is either weak (env.Ref) or owned
// (env.Shared). If lift is true, a result that is a reference is replaced by
// the value it refers to when the call's frame is released.
//
// The parameter tree must already have been checked.
func NewClosure(
	static interface{}, formals *term.T, eformal term.Symbol, body []*term.T, lift bool,
) *Closure {
	return &Closure{
		body:    body,
		eformal: eformal,
		formals: formals,
		lift:    lift,
		static:  static,
	}
}

// Combine binds the operands in a new frame and evaluates the body there in
// tail position.
func (cl *Closure) Combine(t *term.T, c *task.T) (task.Status, error) {
	if r, ok := cl.static.(env.Ref); ok && r.Expired() {
		return task.Partial, errs.Errorf(errs.InvalidReference,
			"static environment of %s has expired", cl.String())
	}

	frame := env.New(cl.static)

	if cl.eformal != "" {
		err := frame.Define(cl.eformal, term.NewAtom(c.Env().Weaken()))
		if err != nil {
			discard(frame)

			return task.Partial, err
		}
	}

	operands := term.NewBranch(t.Children...)

	err := bind.BindWellFormed(frame, cl.formals, operands, c.Env().Weaken())
	if err != nil {
		discard(frame)

		return task.Partial, err
	}

	body := cl.body
	if t.Value == interface{}(cl) && !cl.shared {
		// A temporary operator is not used again. Its body can be consumed.
		cl.body = nil
	} else {
		body = make([]*term.T, len(cl.body))
		for i, x := range cl.body {
			body[i] = x.Copy()
		}
	}

	c.SetupTail(t, cl, frame, cl.lift)

	return Sequence(t, body, c)
}

// Dup marks cl as shared. Copies of a closure share its body.
func (cl *Closure) Dup() interface{} {
	cl.shared = true

	return cl
}

// Name returns the type name for cl.
func (cl *Closure) Name() string {
	return "operative"
}

// Release unregisters a stored copy of cl's static environment handle.
func (cl *Closure) Release() {
	if o, ok := cl.static.(term.Owner); ok {
		o.Release()
	}
}

// Retain registers a stored copy of cl's static environment handle.
func (cl *Closure) Retain() {
	if o, ok := cl.static.(term.Owner); ok {
		o.Retain()
	}
}

// String returns the written representation of cl.
func (cl *Closure) String() string {
	if cl.Label == "" {
		return "#[closure]"
	}

	return "#[closure " + cl.Label + "]"
}

// Label names the closure c wraps, if it has no name yet.
func Label(v interface{}, name string) {
	for {
		switch c := v.(type) {
		case *Applicative:
			v = c.Underlying

			continue
		case *Closure:
			if c.Label == "" {
				c.Label = name
			}
		}

		return
	}
}

// A frame that was never made active is released by holding and dropping it.
func discard(frame *env.T) {
	frame.Hold()
	frame.Drop()
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implementsClosure() { //nolint:deadcode,unused
	var cl Closure

	_ = Combiner(&cl)
	_ = term.Owner(&cl)
	_ = term.Duplicator(&cl)
}
