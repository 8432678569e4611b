// Released under an MIT license. See LICENSE.

// Package task provides the machinery used to evaluate unilang terms.
//
// A task (T) is a context: the active environment and a sequence of pending
// operations. The trampoline pops the operation at the front of the sequence
// and performs it. An operation that needs something done first pushes it
// and returns. Nothing in evaluation recurses on the Go stack.
package task

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/errs"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// DefaultCompressThreshold is the number of frame records a tail call chain
// may accumulate before they are pruned.
const DefaultCompressThreshold = 16

// Stats records high-water marks for a task.
type Stats struct {
	Collapsed  int // Environments removed from parent chains.
	MaxDepth   int // Deepest continuation sequence.
	MaxRecords int // Most frame records held by one tail call chain.
	Pruned     int // Frame records released early.
	Steps      int // Operations performed.
}

// T (task) is a single thread of evaluation.
type T struct {
	// CompressThreshold is the number of frame records that triggers pruning.
	CompressThreshold int

	// HandleException, if set, is called when an error unwinds the current
	// sequence. It receives the frames that were discarded, innermost first,
	// and returns the error to propagate.
	HandleException func(err error, frames []Frame) error

	LastStatus Status
	Log        *slog.Logger
	Next       *term.T
	Output     io.Writer
	Stats      Stats

	current *stack
	env     *env.T
	stacked []*stack
	tail    Op
}

// New creates a new task evaluating in the environment e.
func New(e *env.T) *T {
	return &T{
		CompressThreshold: DefaultCompressThreshold,
		Output:            os.Stdout,
		current:           done,
		env:               e.Hold(),
	}
}

// Env returns the active environment.
func (t *T) Env() *env.T {
	return t.env
}

// Guard moves the current sequence aside so that a nested rewrite sees an
// empty sequence. The returned function puts it back.
func (t *T) Guard() func() {
	t.stacked = append(t.stacked, t.current)
	t.current = done

	return func() {
		n := len(t.stacked) - 1
		t.current = t.stacked[n]
		t.stacked = t.stacked[:n]
	}
}

// Rewrite pushes op and performs operations until the sequence is empty.
// The status of the last operation performed is returned.
//
// When an operation fails the remaining operations are unwound, releasing
// what they hold, and the error is returned.
func (t *T) Rewrite(op Op) (Status, error) {
	t.PushOp(op)

	for t.current != done {
		s, err := t.Step(t.PopOp())
		if err != nil {
			var x *escape
			if errors.As(err, &x) && t.contains(x.k.node) {
				t.unwind(x.k.node)
				x.k.Target.MoveFrom(x.value)
				t.LastStatus = Clean

				continue
			}

			frames := t.unwind(done)

			if t.HandleException != nil && x == nil {
				err = t.HandleException(err, frames)
			}

			return s, err
		}

		t.LastStatus = s
	}

	return t.LastStatus, nil
}

// RewriteGuarded performs op to completion without disturbing the operations
// already pending.
func (t *T) RewriteGuarded(op Op) (Status, error) {
	restore := t.Guard()
	defer restore()

	return t.Rewrite(op)
}

// Step performs a single operation.
func (t *T) Step(op Op) (s Status, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		s = Partial
		err = errs.Nest(errs.TypeError, fmt.Errorf("%v", r), "mismatched representation")
	}()

	t.Stats.Steps++

	if t.Log != nil {
		t.trace(op)
	}

	s, err = op.Perform(t)
	if err != nil {
		t.tail = nil

		return s, err
	}

	if tail := t.tail; tail != nil {
		t.tail = nil

		_, err = tail.Perform(t)
	}

	return s, err
}

// UnwindCurrent discards every pending operation and returns the frames
// that were discarded, innermost first.
func (t *T) UnwindCurrent() []Frame {
	return t.unwind(done)
}

func (t *T) trace(op Op) {
	next := "<nil>"
	if t.Next != nil {
		next = t.Next.String()
	}

	t.Log.Debug("step",
		slog.String("op", opString(op)),
		slog.Int("depth", t.current.depth),
		slog.String("next", next),
	)
}

func (t *T) unwind(to *stack) []Frame {
	var frames []Frame

	for t.current != to && t.current != done {
		op := t.PopOp()

		if a, ok := op.(*TCOAction); ok {
			frames = append(frames, a.frames()...)
		}

		if u, ok := op.(Unwinder); ok {
			u.Unwind(t)
		}
	}

	return frames
}
