// Released under an MIT license. See LICENSE.

package task

import (
	"github.com/michaelmacinnis/unilang/internal/env"
)

// The restore operation makes a saved environment active again.
type restore struct {
	env *env.T
}

func (r *restore) Name() string {
	return "restore"
}

func (r *restore) Perform(t *T) (Status, error) {
	t.RestoreEnvironment(r.env)

	return t.LastStatus, nil
}

func (r *restore) Unwind(t *T) {
	t.RestoreEnvironment(r.env)
}

func toRestore(op Op) *restore {
	r, _ := op.(*restore)

	return r
}

// EnvironmentGuard makes e active and returns a function that makes the
// previously active environment active again.
func (t *T) EnvironmentGuard(e *env.T) func() {
	saved := t.SwitchEnvironment(e)

	return func() {
		t.RestoreEnvironment(saved)
	}
}

// PushRestore pushes an operation that makes saved active again. The task's
// hold on saved moves to the operation.
func (t *T) PushRestore(saved *env.T) {
	t.PushOp(&restore{saved})
}

// RestoreEnvironment releases the active environment and makes saved active.
// The hold on saved moves back to the task.
func (t *T) RestoreEnvironment(saved *env.T) {
	current := t.env
	t.env = saved

	current.Drop()
}

// SwitchEnvironment makes e active and returns the previously active
// environment. The task's hold on the previous environment moves to the
// caller, who must restore it or drop it.
func (t *T) SwitchEnvironment(e *env.T) *env.T {
	saved := t.env
	t.env = e.Hold()

	return saved
}
