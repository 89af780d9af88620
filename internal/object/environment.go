package object

import (
	"log/slog"
	"sort"
)

type Environment struct {
	store map[string]Object
	outer *Environment
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a scope whose lookups fall back to outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	slog.Debug("------ new env ------")
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get resolves name in the innermost scope that binds it.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		return e.outer.Get(name)
	}
	return obj, ok
}

// Set always binds in e itself, shadowing any outer binding of the same name.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

func (e *Environment) Outer() *Environment {
	return e.outer
}

// Names lists every name visible from e, sorted and without duplicates.
func (e *Environment) Names() []string {
	seen := map[string]struct{}{}
	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
