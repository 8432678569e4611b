// Released under an MIT license. See LICENSE.

// Package typename maps Go types to the names used in diagnostics.
//
// The table is shared by every interpreter in the process. It is only
// consulted when formatting errors and backtraces.
package typename

import (
	"fmt"
	"reflect"
	"sync"
)

//nolint:gochecknoglobals
var (
	mu    sync.Mutex
	once  sync.Once
	names map[reflect.Type]string
)

// Namer is implemented by values that know their own diagnostic name.
type Namer interface {
	Name() string
}

// Register associates name with the dynamic type of v.
func Register(v interface{}, name string) {
	once.Do(initialize)

	mu.Lock()
	defer mu.Unlock()

	names[reflect.TypeOf(v)] = name
}

// Of returns the diagnostic name for the value v.
func Of(v interface{}) string {
	if v == nil {
		return "empty"
	}

	if n, ok := v.(Namer); ok {
		return n.Name()
	}

	once.Do(initialize)

	mu.Lock()
	defer mu.Unlock()

	if s, ok := names[reflect.TypeOf(v)]; ok {
		return s
	}

	return fmt.Sprintf("%T", v)
}

func initialize() {
	names = map[reflect.Type]string{
		reflect.TypeOf(""):         "string",
		reflect.TypeOf(int64(0)):   "integer",
		reflect.TypeOf(float64(0)): "number",
		reflect.TypeOf(false):      "boolean",
	}
}
