// Released under an MIT license. See LICENSE.

package env

import (
	"strings"

	"github.com/michaelmacinnis/unilang/internal/errs"
)

// Anchor counts the weak handles to an environment that are stored somewhere.
// The environment's own reference is the first count.
type Anchor struct {
	count int
}

// Count returns the number of stored weak handles, plus one.
func (a *Anchor) Count() int {
	return a.count
}

// Holder is implemented by values that contain an environment handle.
type Holder interface {
	Handle() interface{}
}

// Ref is a weak handle to an environment.
type Ref struct {
	anchor *Anchor
	env    *env
}

// Equal returns true if r and o refer to the same environment.
func (r Ref) Equal(o Ref) bool {
	return r.env == o.env
}

// Expired returns true if the environment r refers to has expired.
func (r Ref) Expired() bool {
	return r.env == nil || r.env.expired
}

// Get returns the environment r refers to or an error if it has expired.
func (r Ref) Get() (*env, error) {
	if r.Expired() {
		return nil, errs.New(errs.InvalidReference, "environment has expired")
	}

	return r.env, nil
}

// Name returns the type name for r.
func (r Ref) Name() string {
	return name
}

// Release unregisters a stored copy of r.
func (r Ref) Release() {
	if r.anchor != nil {
		r.anchor.count--
	}
}

// Retain registers a stored copy of r.
func (r Ref) Retain() {
	if r.anchor != nil {
		r.anchor.count++
	}
}

// String returns the written representation of r.
func (r Ref) String() string {
	if r.Expired() {
		return "#[environment expired]"
	}

	return "#[environment]"
}

// Unsafe returns the environment r refers to without checking for expiry.
func (r Ref) Unsafe() *env {
	return r.env
}

// Shared is an owning handle to an environment.
type Shared struct {
	env *env
}

// Dup is called when a Shared handle is copied. Copies are not tracked so
// the environment is pinned for as long as the garbage collector keeps it.
func (s Shared) Dup() interface{} {
	s.env.Hold()

	return s
}

// Equal returns true if s and o refer to the same environment.
func (s Shared) Equal(o Shared) bool {
	return s.env == o.env
}

// Get returns the environment s owns.
func (s Shared) Get() *env {
	return s.env
}

// Name returns the type name for s.
func (s Shared) Name() string {
	return name
}

// Release unregisters a stored copy of s.
func (s Shared) Release() {
	s.env.Drop()
}

// Retain registers a stored copy of s.
func (s Shared) Retain() {
	s.env.Hold()
}

// String returns the written representation of s.
func (s Shared) String() string {
	return "#[environment]"
}

// Of returns the environment held by the handle v, which may be a Ref,
// a Shared or a Holder of either.
func Of(v interface{}) (*env, error) {
	switch h := handle(v).(type) {
	case Ref:
		return h.Get()
	case Shared:
		return h.env, nil
	case *env:
		return h, nil
	}

	return nil, errs.New(errs.TypeError, "expected an environment")
}

// IsHandle returns true if v is an environment handle.
func IsHandle(v interface{}) bool {
	switch v.(type) {
	case Ref, Shared:
		return true
	}

	return false
}

func handle(v interface{}) interface{} {
	if h, ok := v.(Holder); ok {
		return h.Handle()
	}

	return v
}

func reserved(k string) bool {
	return strings.HasPrefix(k, "__")
}
