// Released under an MIT license. See LICENSE.

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

type counter struct {
	n int
}

func (c *counter) Retain() {
	c.n++
}

func (c *counter) Release() {
	c.n--
}

func define(t *testing.T, e *T, k term.Symbol, v interface{}) {
	t.Helper()

	require.NoError(t, e.Define(k, term.NewAtom(v)))
}

func lookup(t *testing.T, e *T, k term.Symbol) interface{} {
	t.Helper()

	v, _, err := Lookup(e, k)
	require.NoError(t, err)

	return v.Value
}

func TestLookup(t *testing.T) {
	g := New(nil).Hold()
	define(t, g, "a", int64(1))
	define(t, g, "b", int64(2))

	e := New(g.Weaken()).Hold()
	define(t, e, "b", int64(3))

	assert.Equal(t, int64(1), lookup(t, e, "a"))
	assert.Equal(t, int64(3), lookup(t, e, "b"))
	assert.Equal(t, int64(2), lookup(t, g, "b"))

	_, found, err := Lookup(e, "a")
	require.NoError(t, err)
	assert.Same(t, g, found)

	_, _, err = Lookup(e, "c")
	assert.Equal(t, errs.BadIdentifier, errs.KindOf(err))

	v, found, err := Resolve(e, "c")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.Nil(t, found)
}

func TestParentOrder(t *testing.T) {
	root := New(nil)
	define(t, root, "x", "root")

	left := New(root.Share())

	right := New(nil)
	define(t, right, "x", "right")
	define(t, right, "y", "right")

	e := New([]interface{}{left.Share(), right.Share()}).Hold()

	// The first parent's ancestors are searched before the second parent.
	assert.Equal(t, "root", lookup(t, e, "x"))
	assert.Equal(t, "right", lookup(t, e, "y"))

	assert.Equal(t, 1, left.Owners())
	assert.Equal(t, 1, right.Owners())
}

func TestSharedAncestor(t *testing.T) {
	root := New(nil).Hold()
	define(t, root, "z", int64(9))

	a := New(root.Weaken())
	b := New(root.Weaken())

	e := New([]interface{}{a.Share(), b.Share()}).Hold()

	assert.Equal(t, int64(9), lookup(t, e, "z"))

	_, _, err := Lookup(e, "missing")
	assert.Equal(t, errs.BadIdentifier, errs.KindOf(err))
}

func TestExpiredParent(t *testing.T) {
	p := New(nil).Hold()
	define(t, p, "x", int64(1))

	e := New(p.Weaken()).Hold()
	define(t, e, "y", int64(2))

	p.Drop()
	assert.True(t, p.Expired())

	assert.Equal(t, int64(2), lookup(t, e, "y"))

	_, _, err := Lookup(e, "x")
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))

	_, _, err = Lookup(e, "__reserved")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved name")
}

func TestCyclicParents(t *testing.T) {
	a := New(nil).Hold()
	b := New(a.Weaken()).Hold()

	a.parent = b.Weaken()

	_, _, err := Lookup(a, "x")
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))
	assert.Contains(t, err.Error(), "cyclic")
}

func TestCheckParent(t *testing.T) {
	_, err := Checked(int64(1))
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	_, err = Checked([]interface{}{New(nil).Share(), []interface{}{"x"}})
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	p := New(nil).Hold()

	e, err := Checked([]interface{}{p.Weaken(), nil})
	require.NoError(t, err)
	assert.NotNil(t, e)
	assert.Equal(t, 2, p.Anchor().Count())
}

func TestFrozen(t *testing.T) {
	e := New(nil)
	define(t, e, "x", int64(1))

	e.Frozen = true

	err := e.Define("x", term.NewAtom(int64(2)))
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	err = e.DefineChecked("y", term.NewAtom(int64(2)))
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	_, err = e.Remove("x")
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	assert.Equal(t, int64(1), lookup(t, e, "x"))
}

func TestDefineChecked(t *testing.T) {
	e := New(nil)

	require.NoError(t, e.DefineChecked("x", term.NewAtom(int64(1))))

	err := e.DefineChecked("x", term.NewAtom(int64(2)))
	assert.Equal(t, errs.BadIdentifier, errs.KindOf(err))
}

func TestOwnership(t *testing.T) {
	c := &counter{}

	e := New(nil).Hold()
	define(t, e, "a", c)
	define(t, e, "b", c)
	assert.Equal(t, 2, c.n)

	// Replacing a binding releases the old value.
	define(t, e, "b", int64(0))
	assert.Equal(t, 1, c.n)

	ok, err := e.Remove("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, c.n)

	define(t, e, "a", c)
	e.Drop()

	assert.True(t, e.Expired())
	assert.Equal(t, 0, c.n)
}

func TestWeakHandles(t *testing.T) {
	e := New(nil).Hold()
	assert.True(t, e.IsOrphan())
	assert.True(t, e.Collectable())

	holder := New(nil).Hold()
	define(t, holder, "e", e.Weaken())

	assert.False(t, e.IsOrphan())
	assert.False(t, e.Collectable())
	assert.Equal(t, 2, e.Anchor().Count())

	holder.Drop()
	assert.True(t, e.IsOrphan())

	r := e.Weaken()
	got, err := r.Get()
	require.NoError(t, err)
	assert.Same(t, e, got)

	e.Drop()

	assert.True(t, r.Expired())
	assert.Equal(t, "#[environment expired]", r.String())

	_, err = r.Get()
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))

	_, err = Of(r)
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))
}

func TestSharedHandles(t *testing.T) {
	e := New(nil)
	s := e.Share()

	assert.Equal(t, 0, e.Owners())

	d, ok := s.Dup().(Shared)
	require.True(t, ok)
	assert.True(t, d.Equal(s))
	assert.Equal(t, 1, e.Owners())

	got, err := Of(d)
	require.NoError(t, err)
	assert.Same(t, e, got)

	_, err = Of(int64(1))
	assert.Equal(t, errs.TypeError, errs.KindOf(err))

	assert.True(t, IsHandle(s))
	assert.True(t, IsHandle(e.Weaken()))
	assert.False(t, IsHandle(e))

	d.Release()
	assert.True(t, e.Expired())
}

func TestReapChain(t *testing.T) {
	const n = 100000

	root := New(nil)

	var last *T

	p := root
	for i := 0; i < n; i++ {
		last = New(p.Share())
		p = last
	}

	last.Hold()
	last.Drop()

	assert.True(t, last.Expired())
	assert.True(t, root.Expired())
}

func TestCompress(t *testing.T) {
	g := New(nil).Hold()
	define(t, g, "x", int64(1))

	m1 := New(g.Share())
	m2 := New(m1.Share())

	pinned := New(m2.Share())
	define(t, g, "pinned", pinned.Weaken())

	root := New(pinned.Share()).Hold()

	// pinned has a stored weak handle so it stays. The empty environments
	// between it and g are collapsed.
	assert.Equal(t, 2, Compress(root))

	assert.True(t, m1.Expired())
	assert.True(t, m2.Expired())
	assert.False(t, pinned.Expired())

	s, ok := pinned.Parent().(Shared)
	require.True(t, ok)
	assert.Same(t, g, s.Get())
	assert.Equal(t, 2, g.Owners())

	assert.Equal(t, int64(1), lookup(t, root, "x"))

	// Nothing left to do.
	assert.Equal(t, 0, Compress(root))
}

func TestCompressKeepsWeakLinks(t *testing.T) {
	g := New(nil).Hold()
	empty := New(g.Share()).Hold()

	root := New(empty.Weaken()).Hold()

	assert.Equal(t, 0, Compress(root))
	assert.False(t, empty.Expired())
}

func TestNames(t *testing.T) {
	e := New(nil)
	define(t, e, "b", int64(1))
	define(t, e, "a", int64(2))

	assert.Equal(t, []term.Symbol{"a", "b"}, e.Names())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, "#[environment]", e.String())
	assert.Equal(t, "environment", e.Name())
}
