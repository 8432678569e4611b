// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/unilang/internal/common/validate"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/term"
)

func getCurrentEnvironment(t *term.T, c *task.T) (task.Status, error) {
	if _, err := validate.Exactly(t, 0); err != nil {
		return task.Partial, err
	}

	return result(t, c.Env().Weaken())
}

func lockCurrentEnvironment(t *term.T, c *task.T) (task.Status, error) {
	if _, err := validate.Exactly(t, 0); err != nil {
		return task.Partial, err
	}

	return result(t, c.Env().Share())
}

// The new environment's parents are searched in the order given.
func makeEnvironment(t *term.T, _ *task.T) (task.Status, error) {
	parents := make([]interface{}, 0, len(t.Children))

	for _, x := range t.Children {
		if _, err := environment(x); err != nil {
			return task.Partial, err
		}

		v, err := value(x)
		if err != nil {
			return task.Partial, err
		}

		parents = append(parents, v.Value)
	}

	var p interface{}

	switch len(parents) {
	case 0:
	case 1:
		p = parents[0]
	default:
		p = parents
	}

	e, err := env.Checked(p)
	if err != nil {
		return task.Partial, err
	}

	return result(t, e.Share())
}
