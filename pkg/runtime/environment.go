package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUndefinedVariable is returned when a name has no binding.
var ErrUndefinedVariable = errors.New("undefined variable")

// Environment holds the bindings of a program run. There is a single global
// scope. The zero value is an empty environment ready to use.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts a binding, replacing any previous value for name.
func (e *Environment) Define(name string, value Value) {
	if e.values == nil {
		e.values = make(map[string]Value)
	}
	e.values[name] = value
}

// Assign updates an existing binding.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; !ok {
		return fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
	}
	e.values[name] = value
	return nil
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w '%s'", ErrUndefinedVariable, name)
}

// Lookup is Get without the error.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len is the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Clone returns an independent copy of the environment.
func (e *Environment) Clone() *Environment {
	return &Environment{values: e.Snapshot()}
}
