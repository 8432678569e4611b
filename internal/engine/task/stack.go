// Released under an MIT license. See LICENSE.

package task

// The stack type is a context's sequence of pending continuations. The front
// of the sequence is the top of the stack.
type stack struct {
	*stack
	depth int
	op    Op
}

//nolint:gochecknoglobals
var (
	done = &stack{}
)

func init() { //nolint:gochecknoinits
	done.stack = done
}

// Depth returns the number of pending continuations.
func (t *T) Depth() int {
	return t.current.depth
}

// Front returns the operation at the front of the current sequence or nil if
// the sequence is empty.
func (t *T) Front() Op {
	return t.current.op
}

// PopOp removes the operation at the front of the current sequence.
func (t *T) PopOp() Op {
	s := t.current
	t.current = s.stack

	return s.op
}

// PushOp pushes a new operation onto the front of the current sequence.
func (t *T) PushOp(op Op) {
	current := toRestore(op)
	previous := toRestore(t.current.op)

	if current != nil && previous != nil {
		// Condense restore operations. The earlier restore wins.
		current.env.Drop()

		return
	}

	t.current = &stack{t.current, t.current.depth + 1, op}

	if t.current.depth > t.Stats.MaxDepth {
		t.Stats.MaxDepth = t.current.depth
	}
}

// PushAction pushes the action a onto the front of the current sequence.
func (t *T) PushAction(a func(*T) (Status, error)) {
	t.PushOp(Action(a))
}

func (t *T) contains(s *stack) bool {
	for p := t.current; p != done; p = p.stack {
		if p == s {
			return true
		}
	}

	return false
}
