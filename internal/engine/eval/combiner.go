// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Combiner is implemented by every value that can appear in operator position.
//
// When Combine is called the term's children are the operands and its value
// is the operator: either the combiner itself, if the operator was a
// temporary, or the reference the combiner was reached through.
type Combiner interface {
	Combine(t *term.T, c *task.T) (task.Status, error)
}

// Handler is the function behind a native operative. It receives the
// unevaluated operands as t's children and leaves its result in t.
type Handler func(t *term.T, c *task.T) (task.Status, error)

// Form is a native operative.
type Form struct {
	Label   string
	Handler Handler
}

// Combine calls the form's handler.
func (f *Form) Combine(t *term.T, c *task.T) (task.Status, error) {
	return f.Handler(t, c)
}

// Name returns the type name for f.
func (f *Form) Name() string {
	return "operative"
}

// String returns the written representation of f.
func (f *Form) String() string {
	return "#[operative " + f.Label + "]"
}

// Applicative evaluates its operands and passes the results to the
// underlying combiner.
type Applicative struct {
	Underlying Combiner
}

// Wrap returns an applicative that evaluates operands before calling c.
func Wrap(c Combiner) *Applicative {
	return &Applicative{c}
}

// Unwrap returns the combiner underlying v or an error if v is not an
// applicative.
func Unwrap(v interface{}) (Combiner, error) {
	a, ok := v.(*Applicative)
	if !ok {
		return nil, errs.Errorf(errs.ParameterMismatch, "expected an applicative, found %s", describe(v))
	}

	return a.Underlying, nil
}

// Combine evaluates the operands in t and then combines them with the
// underlying combiner.
func (a *Applicative) Combine(t *term.T, c *task.T) (task.Status, error) {
	EvalOperands(t, c, Action(func(t *term.T, c *task.T) (task.Status, error) {
		if t.Value == interface{}(a) {
			t.Value = a.Underlying
		}

		return a.Underlying.Combine(t, c)
	}))

	return task.Partial, nil
}

// Dup returns a copy of a. The underlying combiner is told it was copied.
func (a *Applicative) Dup() interface{} {
	u := a.Underlying
	if d, ok := u.(term.Duplicator); ok {
		u, _ = d.Dup().(Combiner)
	}

	return &Applicative{u}
}

// Name returns the type name for a.
func (a *Applicative) Name() string {
	return "applicative"
}

// Release forwards to the underlying combiner.
func (a *Applicative) Release() {
	if o, ok := a.Underlying.(term.Owner); ok {
		o.Release()
	}
}

// Retain forwards to the underlying combiner.
func (a *Applicative) Retain() {
	if o, ok := a.Underlying.(term.Owner); ok {
		o.Retain()
	}
}

// String returns the written representation of a.
func (a *Applicative) String() string {
	return "#[applicative " + term.Literal(a.Underlying) + "]"
}

// IsCombiner returns true if v can be combined.
func IsCombiner(v interface{}) bool {
	_, ok := v.(Combiner)

	return ok
}

// A compiler-checked list of interfaces these types satisfy. Never called.
func implements() { //nolint:deadcode,unused
	var a Applicative

	_ = Combiner(&a)
	_ = term.Owner(&a)
	_ = term.Duplicator(&a)
	_ = Combiner(&Form{})
}
