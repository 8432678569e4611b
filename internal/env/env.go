// Released under an MIT license. See LICENSE.

// Package env provides unilang's first-class environment type.
//
// Environments are reachable three ways: by an owning handle (Shared), by a
// weak handle (Ref) or through the parent slot of another environment. An
// environment expires when its last owner lets go. A weak handle to an
// expired environment can still be held but not followed.
package env

import (
	"sort"

	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

const name = "environment"

// T (env) maps symbols to bound terms and names the environments searched
// when a symbol is not bound locally.
type T struct {
	Frozen bool

	anchor   *Anchor
	bindings map[term.Symbol]*term.T
	expired  bool
	parent   interface{}
	strong   int
}

type env = T

// New creates a new env with the parent p. The parent is retained. It must be
// nil, a Ref, a Shared or a list of these; use Checked for unverified parents.
func New(p interface{}) *env {
	e := &env{
		anchor:   &Anchor{count: 1},
		bindings: map[term.Symbol]*term.T{},
		parent:   p,
	}

	retainParent(p)

	return e
}

// Checked creates a new env after verifying that p is a valid parent.
func Checked(p interface{}) (*env, error) {
	if err := CheckParent(p); err != nil {
		return nil, err
	}

	return New(p), nil
}

// CheckParent returns an error if p is not a valid parent value.
func CheckParent(p interface{}) error {
	pending := []interface{}{p}
	for len(pending) != 0 {
		v := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		switch v := v.(type) {
		case nil, Ref, Shared:
		case []interface{}:
			pending = append(pending, v...)
		default:
			return errs.Errorf(errs.TypeError,
				"expected an environment or a list of environments as parent")
		}
	}

	return nil
}

// Anchor returns e's anchor.
func (e *env) Anchor() *Anchor {
	return e.anchor
}

// Define associates the symbol k with the term v, replacing any existing
// binding. The env takes ownership of v.
func (e *env) Define(k term.Symbol, v *term.T) error {
	if e.Frozen {
		return frozen(k)
	}

	e.define(k, v)

	return nil
}

// DefineChecked associates k with v only if k is not already bound locally.
func (e *env) DefineChecked(k term.Symbol, v *term.T) error {
	if e.Frozen {
		return frozen(k)
	}

	if _, ok := e.bindings[k]; ok {
		return errs.Errorf(errs.BadIdentifier, "duplicate definition of '%s'", k)
	}

	e.define(k, v)

	return nil
}

// Expired returns true if e has been released by its last owner.
func (e *env) Expired() bool {
	return e.expired
}

// Hold registers a new owner of e.
func (e *env) Hold() *env {
	e.strong++

	return e
}

// Drop unregisters an owner of e. The env expires when its last owner drops it.
func (e *env) Drop() {
	e.strong--
	if e.strong == 0 {
		reap(e)
	}
}

// IsOrphan returns true if no weak handle to e is stored anywhere.
func (e *env) IsOrphan() bool {
	return e.anchor.count == 1
}

// Collectable returns true if e has exactly one owner and is an orphan.
func (e *env) Collectable() bool {
	return e.strong == 1 && e.IsOrphan()
}

// Len returns the number of local bindings.
func (e *env) Len() int {
	return len(e.bindings)
}

// LookupName returns the local binding for k, if any. Parents are not searched.
func (e *env) LookupName(k term.Symbol) (*term.T, bool) {
	v, ok := e.bindings[k]

	return v, ok
}

// Name returns the type name for the env e.
func (e *env) Name() string {
	return name
}

// Names returns the locally bound symbols in order.
func (e *env) Names() []term.Symbol {
	ns := make([]term.Symbol, 0, len(e.bindings))
	for k := range e.bindings {
		ns = append(ns, k)
	}

	sort.Slice(ns, func(i, j int) bool { return ns[i] < ns[j] })

	return ns
}

// Owners returns the number of registered owners of e.
func (e *env) Owners() int {
	return e.strong
}

// Parent returns e's parent value.
func (e *env) Parent() interface{} {
	return e.parent
}

// Remove deletes the local binding for k.
func (e *env) Remove(k term.Symbol) (bool, error) {
	if e.Frozen {
		return false, frozen(k)
	}

	v, ok := e.bindings[k]
	if ok {
		delete(e.bindings, k)
		term.Release(v)
	}

	return ok, nil
}

// Share returns an owning handle to e. The handle registers as an owner only
// once it is stored.
func (e *env) Share() Shared {
	return Shared{e}
}

// String returns the written representation of e.
func (e *env) String() string {
	return "#[environment]"
}

// Weaken returns a weak handle to e.
func (e *env) Weaken() Ref {
	return Ref{anchor: e.anchor, env: e}
}

func (e *env) define(k term.Symbol, v *term.T) {
	term.Retain(v)

	if old, ok := e.bindings[k]; ok {
		term.Release(old)
	}

	e.bindings[k] = v
}

func frozen(k term.Symbol) error {
	return errs.Errorf(errs.TypeError, "cannot modify frozen environment (binding '%s')", k)
}

// reap expires e and releases everything it holds. Environments whose last
// owner was e are reaped in the same loop rather than recursively.
func reap(e *env) {
	pending := []*env{e}

	drop := func(v interface{}) {
		switch h := handle(v).(type) {
		case Ref:
			h.anchor.count--
		case Shared:
			h.env.strong--
			if h.env.strong == 0 {
				pending = append(pending, h.env)
			}
		case term.Owner:
			h.Release()
		}
	}

	for len(pending) != 0 {
		e := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if e.expired {
			continue
		}

		e.expired = true

		for _, t := range e.bindings {
			term.Walk(t, func(c *term.T) {
				drop(c.Value)
			})
		}

		e.bindings = nil

		eachParent(e.parent, drop)
		e.parent = nil
	}
}

func retainParent(p interface{}) {
	eachParent(p, func(v interface{}) {
		switch v := v.(type) {
		case Ref:
			v.Retain()
		case Shared:
			v.Retain()
		}
	})
}

func eachParent(p interface{}, fn func(interface{})) {
	pending := []interface{}{p}
	for len(pending) != 0 {
		v := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if l, ok := v.([]interface{}); ok {
			pending = append(pending, l...)

			continue
		}

		if v != nil {
			fn(v)
		}
	}
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var r Ref
	var s Shared

	_ = term.Owner(r)
	_ = term.Owner(s)
	_ = term.Duplicator(s)
}
