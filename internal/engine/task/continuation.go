// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Continuation is a one-shot continuation captured by call/1cc.
//
// It names a point in the continuation sequence. Invoking it discards every
// operation pushed since the capture and delivers a value to Target. It may
// be invoked once, and only while the capture point is still pending.
type Continuation struct {
	Target *term.T

	done bool
	node *stack
	used bool
}

// Capture records the current point in the sequence. Values delivered to
// the returned continuation are moved into target.
func (t *T) Capture(target *term.T) *Continuation {
	k := &Continuation{Target: target}

	t.PushOp(&marker{k})
	k.node = t.current

	return k
}

// Invoke delivers v to k's capture point.
//
// The returned error is non-nil. It is either an InvalidReference error, if
// k has already been used or its extent has ended, or a value that the
// trampoline owning the capture point uses to unwind to it.
func (k *Continuation) Invoke(v *term.T) error {
	if k.used {
		return errs.New(errs.InvalidReference, "one-shot continuation invoked more than once")
	}

	if k.done {
		return errs.New(errs.InvalidReference, "continuation invoked after its extent ended")
	}

	k.used = true

	// The value may refer into frames about to be unwound.
	if err := Lift(v, nil); err != nil {
		return err
	}

	value := &term.T{}
	value.MoveFrom(v)

	return &escape{k, value}
}

// Name returns the type name for k.
func (k *Continuation) Name() string {
	return "continuation"
}

// Valid returns true if k can still be invoked.
func (k *Continuation) Valid() bool {
	return !k.used && !k.done
}

type escape struct {
	k     *Continuation
	value *term.T
}

func (e *escape) Error() string {
	return "continuation invoked outside of its extent"
}

// The marker ends a continuation's extent when it is reached.
type marker struct {
	k *Continuation
}

func (m *marker) Name() string {
	return "capture"
}

func (m *marker) Perform(t *T) (Status, error) {
	m.k.done = true

	return t.LastStatus, nil
}

func (m *marker) Unwind(t *T) {
	m.k.done = true
}
