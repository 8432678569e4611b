// Released under an MIT license. See LICENSE.

package task

import (
	"reflect"
	"runtime"
	"strings"
)

// Op represents a single step of a task.
type Op interface {
	Name() string
	Perform(*T) (Status, error)
}

// Unwinder is implemented by operations that must release what they hold
// when they are discarded without being performed.
type Unwinder interface {
	Unwind(*T)
}

// Action is the simplest operation: a function.
type Action func(*T) (Status, error)

// Name returns the name of the function behind the action a.
func (a Action) Name() string {
	return funcName(a)
}

// Perform calls a.
func (a Action) Perform(t *T) (Status, error) {
	return a(t)
}

func opString(o Op) string {
	if o == nil {
		return "<nil>"
	}

	return o.Name()
}

// Get the function i's name. Useful for debugging.
func funcName(i interface{}) string {
	n := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()

	a := strings.Split(n, ".")

	l := len(a)
	if l == 0 {
		return n
	}

	return a[l-1]
}
