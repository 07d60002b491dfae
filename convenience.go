// File: lixenwraith/settings/convenience.go
package settings

import (
	"errors"
	"fmt"
)

// New builds a registry over the process environment with a single call.
// This is the recommended way to declare settings for most host runtimes.
func New(envPrefix string, decls ...Declaration) (*Registry, error) {
	return NewBuilder().
		WithEnvPrefix(envPrefix).
		WithDeclarations(decls...).
		Build()
}

// MustNew is like New but panics on error
func MustNew(envPrefix string, decls ...Declaration) *Registry {
	r, err := New(envPrefix, decls...)
	if err != nil {
		panic(fmt.Sprintf("settings initialization failed: %v", err))
	}
	return r
}

// Required returns a validator that resolves the named settings and fails if any
// is undeclared or malformed
func Required(names ...string) ValidatorFunc {
	return func(r *Registry) error {
		var missing []error
		for _, name := range names {
			if _, err := r.Get(name); err != nil {
				missing = append(missing, err)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("required settings unavailable: %w", errors.Join(missing...))
		}
		return nil
	}
}

// ResolveAllValidator resolves every setting at build time, turning any
// malformed environment value into a build error
func ResolveAllValidator() ValidatorFunc {
	return func(r *Registry) error {
		return r.ResolveAll()
	}
}
