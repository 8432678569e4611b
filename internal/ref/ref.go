// Released under an MIT license. See LICENSE.

// Package ref provides unilang's reference type.
//
// A reference names another term's storage. It carries its own tags, which
// may further restrict what can be done through it, and a weak handle to the
// environment that owns the referent so that a dangling reference can be
// detected instead of followed.
package ref

import (
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

const name = "reference"

// T (ref) is a reference to a term owned by an environment.
type T struct {
	Target *term.T
	Tags   term.Tags
	Env    env.Ref
}

type ref = T

// New creates a reference to target, owned by the environment e, with tags
// propagated from target.
func New(target *term.T, tags term.Tags, e env.Ref) *ref {
	return &ref{
		Target: target,
		Tags:   tags.Propagate(target.Tags),
		Env:    e,
	}
}

// Deref returns the referent or an InvalidReference error if its owner has
// expired.
func (r *ref) Deref() (*term.T, error) {
	if r.Env.Expired() {
		return nil, errs.New(errs.InvalidReference, "reference to a term in an expired environment")
	}

	return r.Target, nil
}

// Dup returns a copy of r. The copy is never unique.
func (r *ref) Dup() interface{} {
	c := *r
	c.Tags &^= term.Unique

	return &c
}

// Handle returns the weak handle to the referent's owner.
func (r *ref) Handle() interface{} {
	return r.Env
}

// Modifiable returns true if the referent may be modified through r.
func (r *ref) Modifiable() bool {
	return !r.Tags.Has(term.Nonmodifying)
}

// Movable returns true if the referent may be moved from through r.
func (r *ref) Movable() bool {
	return r.Tags.Has(term.Unique) && r.Modifiable()
}

// Name returns the type name for r.
func (r *ref) Name() string {
	return name
}

// Release unregisters a stored copy of r.
func (r *ref) Release() {
	r.Env.Release()
}

// Retain registers a stored copy of r.
func (r *ref) Retain() {
	r.Env.Retain()
}

// String returns the written representation of r's referent.
func (r *ref) String() string {
	t, err := r.Deref()
	if err != nil {
		return "#[reference expired]"
	}

	return t.String()
}

// With returns a copy of r with the tags t added.
func (r *ref) With(t term.Tags) *ref {
	c := *r
	c.Tags |= t

	return &c
}

// Is returns true if v is a reference.
func Is(v interface{}) bool {
	_, ok := v.(*ref)

	return ok
}

// To returns v as a reference, if it is one.
func To(v interface{}) (*ref, bool) {
	r, ok := v.(*ref)

	return r, ok
}

// Referent returns t's referent if t holds a reference, or t itself.
func Referent(t *term.T) (*term.T, error) {
	r, ok := t.Value.(*ref)
	if !ok {
		return t, nil
	}

	return r.Deref()
}

// Tags returns the effective tags of t: its own or those of the reference it
// holds.
func Tags(t *term.T) term.Tags {
	if r, ok := t.Value.(*ref); ok {
		return r.Tags
	}

	return t.Tags
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t ref

	_ = term.Owner(&t)
	_ = term.Duplicator(&t)
	_ = env.Holder(&t)
}
