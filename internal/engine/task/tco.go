// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/ref"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Frame describes a combiner call for backtraces.
type Frame struct {
	Combiner interface{}
}

// Record is a combiner call that a tail call replaced. The record holds the
// environment the call ran in until the record is pruned or the chain ends.
type Record struct {
	Combiner interface{}
	Env      *env.T
}

// TCOAction finishes a chain of tail calls evaluated in the same term.
//
// When performed it lifts the result if any call in the chain asked for
// it, releases the active call frame and every recorded frame, and makes
// the environment that was active before the chain started active again.
type TCOAction struct {
	Term *term.T

	combiner interface{}
	lift     bool
	records  []Record
	saved    *env.T
}

// Name returns the name of the operation.
func (a *TCOAction) Name() string {
	return "tco"
}

// Perform completes the tail call chain.
func (a *TCOAction) Perform(t *T) (Status, error) {
	var err error

	if a.lift {
		err = Lift(a.Term, t.env)
	}

	a.release(t)

	return t.LastStatus, err
}

// Records returns the frame records currently held.
func (a *TCOAction) Records() []Record {
	return a.records
}

// Unwind releases everything a holds without lifting.
func (a *TCOAction) Unwind(t *T) {
	a.release(t)
}

func (a *TCOAction) frames() []Frame {
	fs := []Frame{{a.combiner}}

	for i := len(a.records) - 1; i >= 0; i-- {
		fs = append(fs, Frame{a.records[i].Combiner})
	}

	return fs
}

// An environment already held by a record needs no second record.
func (a *TCOAction) holds(e *env.T) bool {
	for _, r := range a.records {
		if r.Env == e {
			return true
		}
	}

	return false
}

// prune releases records whose environments nothing else needs. Releasing
// one may orphan another so passes repeat until nothing changes.
func (a *TCOAction) prune() int {
	n := 0

	for {
		removed := 0

		for i := len(a.records) - 1; i >= 0; i-- {
			r := a.records[i]
			if !r.Env.Collectable() {
				continue
			}

			r.Env.Drop()

			a.records = append(a.records[:i], a.records[i+1:]...)
			removed++
		}

		if removed == 0 {
			return n
		}

		n += removed
	}
}

func (a *TCOAction) release(t *T) {
	t.RestoreEnvironment(a.saved)
	a.saved = nil

	for i := len(a.records) - 1; i >= 0; i-- {
		a.records[i].Env.Drop()
	}

	a.records = nil
}

// The compressor runs after the operation that set up a tail call.
type compressor struct {
	a *TCOAction
}

func (c compressor) Name() string {
	return "compress"
}

func (c compressor) Perform(t *T) (Status, error) {
	t.Stats.Pruned += c.a.prune()
	t.Stats.Collapsed += env.Compress(t.env)

	return t.LastStatus, nil
}

// SetupTail makes frame the active environment for a call of combiner
// evaluated in the term x.
//
// If the operation at the front of the sequence is already finishing a tail
// call chain in x, the chain is extended: the active frame is recorded, unless
// a record already holds it, and the existing action is reused, so the
// sequence does not grow. Otherwise a
// new TCOAction is pushed. If lift is true the chain's result is lifted.
func (t *T) SetupTail(x *term.T, combiner interface{}, frame *env.T, lift bool) {
	if a, ok := t.current.op.(*TCOAction); ok && a.Term == x {
		if a.holds(t.env) {
			t.env.Drop()
		} else {
			a.records = append(a.records, Record{a.combiner, t.env})
		}

		a.combiner = combiner
		a.lift = a.lift || lift

		t.env = frame.Hold()

		if n := len(a.records); n > t.Stats.MaxRecords {
			t.Stats.MaxRecords = n
		}

		if len(a.records) >= t.CompressThreshold {
			t.tail = compressor{a}
		}

		return
	}

	t.PushOp(&TCOAction{
		Term:     x,
		combiner: combiner,
		lift:     lift,
		saved:    t.env,
	})

	t.env = frame.Hold()
}

// Lift replaces a reference held by x with the value it refers to. The
// referent is moved if the reference allows it or if it is owned by dying,
// an environment about to be released by its last owner. Otherwise it is
// copied.
func Lift(x *term.T, dying *env.T) error {
	r, ok := ref.To(x.Value)
	if !ok {
		return nil
	}

	v, err := r.Deref()
	if err != nil {
		return err
	}

	owned := dying != nil && r.Env.Unsafe() == dying && dying.Owners() == 1

	if r.Movable() || (owned && r.Modifiable()) {
		x.MoveFrom(v)
	} else {
		x.MoveFrom(v.Copy())
	}

	x.Tags = term.Unqualified

	return nil
}
