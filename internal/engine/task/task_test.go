// Released under an MIT license. See LICENSE.

package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func setup() (*T, *env.T) {
	root := env.New(nil)

	return New(root), root
}

func record(log *[]string, s string) Action {
	return func(t *T) (Status, error) {
		*log = append(*log, s)

		return Clean, nil
	}
}

func TestRewriteOrder(t *testing.T) {
	c, _ := setup()

	var log []string

	_, err := c.Rewrite(Action(func(c *T) (Status, error) {
		c.PushOp(record(&log, "second"))
		c.PushOp(record(&log, "first"))

		return Partial, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, log)
	assert.Equal(t, Clean, c.LastStatus)
	assert.Equal(t, 0, c.Depth())
}

func TestRewriteGuardedPreservesPending(t *testing.T) {
	c, _ := setup()

	var log []string

	c.PushOp(record(&log, "outer"))

	_, err := c.RewriteGuarded(record(&log, "inner"))
	require.NoError(t, err)

	assert.Equal(t, []string{"inner"}, log)
	assert.Equal(t, 1, c.Depth())

	_, err = c.Rewrite(record(&log, "again"))
	require.NoError(t, err)

	assert.Equal(t, []string{"inner", "again", "outer"}, log)
}

func TestPanicBecomesTypeError(t *testing.T) {
	c, _ := setup()

	_, err := c.RewriteGuarded(Action(func(*T) (Status, error) {
		var m map[string]int
		m["x"] = 1

		return Clean, nil
	}))
	require.Error(t, err)

	assert.Equal(t, errs.TypeError, errs.KindOf(err))
	assert.Contains(t, err.Error(), "mismatched representation")
}

func TestErrorUnwindsAndRestores(t *testing.T) {
	c, root := setup()

	frame := env.New(root.Weaken())

	var frames []Frame

	c.HandleException = func(err error, fs []Frame) error {
		frames = fs

		return err
	}

	boom := errs.New(errs.BadIdentifier, "boom")

	_, err := c.RewriteGuarded(Action(func(c *T) (Status, error) {
		c.SetupTail(&term.T{}, "f", frame, false)
		c.PushOp(Action(func(*T) (Status, error) {
			return Partial, boom
		}))

		return Partial, nil
	}))

	assert.ErrorIs(t, err, boom)
	assert.Same(t, root, c.Env())
	assert.True(t, frame.Expired())
	assert.Equal(t, []Frame{{"f"}}, frames)
}

func TestRestoreCondensing(t *testing.T) {
	c, root := setup()

	a := env.New(nil)
	b := env.New(nil)

	c.PushRestore(c.SwitchEnvironment(a))
	c.PushRestore(c.SwitchEnvironment(b))

	assert.Equal(t, 1, c.Depth())
	assert.Same(t, b, c.Env())
	assert.True(t, a.Expired())

	_, err := c.Rewrite(Action(func(*T) (Status, error) {
		return Neutral, nil
	}))
	require.NoError(t, err)

	assert.Same(t, root, c.Env())
	assert.True(t, b.Expired())
	assert.False(t, root.Expired())
}

func TestEnvironmentGuard(t *testing.T) {
	c, root := setup()

	e := env.New(nil)
	e.Hold()

	restore := c.EnvironmentGuard(e)
	assert.Same(t, e, c.Env())
	assert.Equal(t, 2, e.Owners())

	restore()
	assert.Same(t, root, c.Env())
	assert.Equal(t, 1, e.Owners())
}

func TestTailCallsAreBounded(t *testing.T) {
	const n = 100000

	c, root := setup()

	x := &term.T{}
	i := 0

	var frames []*env.T

	var loop Action

	loop = func(c *T) (Status, error) {
		if i == n {
			x.SetValue(int64(i))

			return Clean, nil
		}

		i++

		frame := env.New(root.Weaken())
		require.NoError(t, frame.Define("n", term.NewAtom(int64(i))))

		if i%10000 == 0 {
			frames = append(frames, frame)
		}

		c.SetupTail(x, "loop", frame, true)
		c.PushOp(loop)

		return Partial, nil
	}

	_, err := c.Rewrite(loop)
	require.NoError(t, err)

	assert.Equal(t, int64(n), x.Value)
	assert.LessOrEqual(t, c.Stats.MaxDepth, 3)
	assert.LessOrEqual(t, c.Stats.MaxRecords, DefaultCompressThreshold)
	assert.Greater(t, c.Stats.Pruned, 0)

	assert.Same(t, root, c.Env())
	assert.True(t, root.IsOrphan())

	for _, f := range frames {
		assert.True(t, f.Expired())
	}
}

func TestTailChainHoldsFrameOnce(t *testing.T) {
	const n = 10000

	c, root := setup()

	outer := env.New(root.Weaken()).Hold()

	x := &term.T{}
	i := 0

	var loop Action

	loop = func(c *T) (Status, error) {
		if i == n {
			return Clean, nil
		}

		i++

		// Alternate between a new frame and the same outer environment.
		frame := outer
		if i%2 == 1 {
			frame = env.New(root.Weaken())
		}

		c.SetupTail(x, "loop", frame, false)
		c.PushOp(loop)

		return Partial, nil
	}

	_, err := c.Rewrite(loop)
	require.NoError(t, err)

	assert.LessOrEqual(t, c.Stats.MaxDepth, 3)
	assert.LessOrEqual(t, c.Stats.MaxRecords, DefaultCompressThreshold)
	assert.Greater(t, c.Stats.Pruned, 0)

	assert.Same(t, root, c.Env())
	assert.False(t, outer.Expired())
	assert.Equal(t, 1, outer.Owners())
}

func TestStepClearsTailOnError(t *testing.T) {
	c, _ := setup()
	c.CompressThreshold = 1

	x := &term.T{}

	c.SetupTail(x, "a", env.New(nil), false)

	_, err := c.Step(Action(func(c *T) (Status, error) {
		c.SetupTail(x, "b", env.New(nil), false)

		return Partial, errors.New("failed")
	}))
	require.Error(t, err)

	_, err = c.Step(Action(func(c *T) (Status, error) {
		return Clean, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, 0, c.Stats.Pruned)
	assert.Len(t, c.Front().(*TCOAction).Records(), 1)
}

func TestReferencedFramesAreKept(t *testing.T) {
	c, root := setup()

	x := &term.T{}

	first := env.New(root.Weaken())
	require.NoError(t, first.Define("v", term.NewAtom(int64(1))))

	v, _ := first.LookupName("v")

	count := 0

	var loop Action

	loop = func(c *T) (Status, error) {
		if count == 3*DefaultCompressThreshold {
			return Clean, nil
		}

		count++

		assert.False(t, first.Expired())

		frame := first
		if count > 1 {
			frame = env.New(root.Weaken())

			r := ref.New(v, term.Unqualified, first.Weaken())
			require.NoError(t, frame.Define("r", term.NewAtom(r)))
		}

		c.SetupTail(x, "loop", frame, false)
		c.PushOp(loop)

		return Partial, nil
	}

	_, err := c.Rewrite(loop)
	require.NoError(t, err)

	// Every later frame stored a reference into the first, so it could not
	// be pruned while the chain ran. It is released when the chain ends.
	assert.True(t, first.Expired())
	assert.Same(t, root, c.Env())
}

func TestLift(t *testing.T) {
	dying := env.New(nil)
	dying.Hold()

	require.NoError(t, dying.Define("v", term.NewList(int64(1), int64(2))))
	v, _ := dying.LookupName("v")

	x := term.NewAtom(ref.New(v, term.Unqualified, dying.Weaken()))
	require.NoError(t, Lift(x, dying))

	assert.Equal(t, "(1 2)", x.String())
	assert.True(t, v.IsEmpty())

	kept := env.New(nil)
	require.NoError(t, kept.Define("w", term.NewList(int64(3))))
	w, _ := kept.LookupName("w")

	y := term.NewAtom(ref.New(w, term.Unqualified, kept.Weaken()))
	require.NoError(t, Lift(y, dying))

	assert.Equal(t, "(3)", y.String())
	assert.Equal(t, "(3)", w.String())
}

func TestContinuationIsOneShot(t *testing.T) {
	c, _ := setup()

	target := &term.T{}

	var (
		k       *Continuation
		skipped bool
	)

	_, err := c.Rewrite(Action(func(c *T) (Status, error) {
		k = c.Capture(target)

		c.PushOp(Action(func(*T) (Status, error) {
			skipped = true

			return Clean, nil
		}))

		c.PushOp(Action(func(*T) (Status, error) {
			return Partial, k.Invoke(term.NewAtom(int64(7)))
		}))

		return Partial, nil
	}))
	require.NoError(t, err)

	assert.False(t, skipped)
	assert.Equal(t, int64(7), target.Value)

	err = k.Invoke(term.NewAtom(int64(8)))
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))
	assert.Equal(t, int64(7), target.Value)
}

func TestContinuationAfterExtent(t *testing.T) {
	c, _ := setup()

	var k *Continuation

	_, err := c.Rewrite(Action(func(c *T) (Status, error) {
		k = c.Capture(&term.T{})

		return Partial, nil
	}))
	require.NoError(t, err)

	assert.False(t, k.Valid())

	err = k.Invoke(term.NewAtom(int64(1)))
	assert.Equal(t, errs.InvalidReference, errs.KindOf(err))
}

func TestContinuationEscapesNestedRewrite(t *testing.T) {
	c, _ := setup()

	target := &term.T{}

	var inner []string

	_, err := c.Rewrite(Action(func(c *T) (Status, error) {
		k := c.Capture(target)

		c.PushOp(Action(func(c *T) (Status, error) {
			return c.RewriteGuarded(Action(func(c *T) (Status, error) {
				c.PushOp(record(&inner, "discarded"))

				return Partial, k.Invoke(term.NewAtom("escaped"))
			}))
		}))

		return Partial, nil
	}))
	require.NoError(t, err)

	assert.Empty(t, inner)
	assert.Equal(t, "escaped", target.Value)
}

func TestEscapeIsNotAnException(t *testing.T) {
	c, _ := setup()

	called := false
	c.HandleException = func(err error, _ []Frame) error {
		called = true

		return err
	}

	k := &Continuation{node: &stack{}}

	_, err := c.RewriteGuarded(Action(func(*T) (Status, error) {
		return Partial, k.Invoke(term.NewAtom(int64(1)))
	}))

	var x *escape

	assert.True(t, errors.As(err, &x))
	assert.False(t, called)
}

func TestCheckReducible(t *testing.T) {
	assert.True(t, CheckReducible(Partial))
	assert.True(t, CheckReducible(Retrying))
	assert.False(t, CheckReducible(Neutral))
	assert.False(t, CheckReducible(Clean))
	assert.False(t, CheckReducible(Retained))
	assert.Equal(t, "retrying", Retrying.String())
}
