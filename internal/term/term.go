// Released under an MIT license. See LICENSE.

// Package term provides the node type for unilang programs and data.
//
// A term is either an atom, holding a single value, or a branch, holding an
// ordered sequence of child terms. While a combiner is being applied a term
// may transiently hold both a value and children.
package term

// T (term) is an S-expression node with a tag set.
type T struct {
	Value    interface{}
	Children []*T
	Tags     Tags
}

type term = T

// Symbol is an identifier.
type Symbol string

// Special is the type of the literals #inert and #ignore.
type Special string

// Special literals.
const (
	Inert  Special = "#inert"
	Ignore Special = "#ignore"
)

// Duplicator is implemented by values that must be told when they are copied.
type Duplicator interface {
	Dup() interface{}
}

// Owner is implemented by values that keep environments alive while stored.
// Retain is called when a value is stored in an environment. Release is
// called when it is removed or the environment holding it expires.
type Owner interface {
	Retain()
	Release()
}

// NewAtom creates a leaf term holding v.
func NewAtom(v interface{}) *term {
	return &term{Value: v}
}

// NewBranch creates a list term with the children c.
func NewBranch(c ...*term) *term {
	return &term{Children: c}
}

// NewList creates a list of atoms holding each value in vs.
func NewList(vs ...interface{}) *term {
	t := &term{Children: make([]*term, 0, len(vs))}
	for _, v := range vs {
		t.Children = append(t.Children, NewAtom(v))
	}

	return t
}

// IsAtom returns true if t is a leaf with a value.
func (t *term) IsAtom() bool {
	return len(t.Children) == 0 && t.Value != nil
}

// IsBranch returns true if t has children.
func (t *term) IsBranch() bool {
	return len(t.Children) != 0
}

// IsEmpty returns true if t is the empty list.
func (t *term) IsEmpty() bool {
	return len(t.Children) == 0 && t.Value == nil
}

// IsLeaf returns true if t has no children.
func (t *term) IsLeaf() bool {
	return len(t.Children) == 0
}

// IsList returns true if t has no value. The empty list is a list.
func (t *term) IsList() bool {
	return t.Value == nil
}

// Clear empties t. Children are detached level by level so that very deep
// terms do not recurse.
func (t *term) Clear() {
	pending := t.Children
	for len(pending) != 0 {
		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		pending = append(pending, c.Children...)
		c.Children = nil
	}

	t.Value = nil
	t.Children = nil
}

// Copy returns a deep copy of t.
func (t *term) Copy() *term {
	type job struct{ src, dst *term }

	root := &term{}
	pending := []job{{t, root}}

	for len(pending) != 0 {
		j := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		j.dst.Tags = j.src.Tags
		j.dst.Value = copyValue(j.src.Value)

		if len(j.src.Children) == 0 {
			continue
		}

		j.dst.Children = make([]*term, len(j.src.Children))
		for i, c := range j.src.Children {
			d := &term{}
			j.dst.Children[i] = d
			pending = append(pending, job{c, d})
		}
	}

	return root
}

// MoveFrom moves the content of o into t leaving o empty.
func (t *term) MoveFrom(o *term) {
	if t == o {
		return
	}

	t.Value, t.Children, t.Tags = o.Value, o.Children, o.Tags
	o.Value, o.Children, o.Tags = nil, nil, Unqualified
}

// SetValue replaces t's content with the atom v.
func (t *term) SetValue(v interface{}) {
	t.Value = v
	t.Children = nil
}

// Walk calls fn for t and every descendant of t, without recursion.
func Walk(t *term, fn func(*term)) {
	pending := []*term{t}
	for len(pending) != 0 {
		c := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		fn(c)

		for i := len(c.Children) - 1; i >= 0; i-- {
			pending = append(pending, c.Children[i])
		}
	}
}

// Retain calls Retain on every Owner value in t.
func Retain(t *term) {
	Walk(t, func(c *term) {
		if o, ok := c.Value.(Owner); ok {
			o.Retain()
		}
	})
}

// Release calls Release on every Owner value in t.
func Release(t *term) {
	Walk(t, func(c *term) {
		if o, ok := c.Value.(Owner); ok {
			o.Release()
		}
	})
}

func copyValue(v interface{}) interface{} {
	if d, ok := v.(Duplicator); ok {
		return d.Dup()
	}

	return v
}
