package eval

import "slices"

// Environment holds the variable bindings for one session. A name maps
// to at most one value; rebinding overwrites.
type Environment struct {
	values map[string]float64
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]float64)}
}

func (e *Environment) Bind(name string, value float64) {
	e.values[name] = value
}

func (e *Environment) Lookup(name string) (float64, bool) {
	val, ok := e.values[name]
	return val, ok
}

// Clear drops every binding, returning the environment to its
// session-start state.
func (e *Environment) Clear() {
	e.values = make(map[string]float64)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
