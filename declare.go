// FILE: lixenwraith/settings/declare.go
package settings

import (
	"fmt"
	"strings"
)

// Declaration is one row of a registry's declaration table. Def[T] is the only
// implementation; a table mixes Def values of different types.
type Declaration interface {
	declName() string
	instantiate(prefix string, env *environment) (entry, error)
}

// Def describes a setting. It is a plain value, so the same table can be
// instantiated any number of times, each producing independently resolving settings.
type Def[T any] struct {
	// Name identifies the setting within a registry (e.g. "min_cpu_chunk")
	Name string

	// EnvVar overrides the derived PREFIX_NAME environment variable
	EnvVar string

	// Kind selects Mutable (default) or EnvOnly behavior
	Kind Kind

	// Default is used when no override or environment value is present
	Default T

	// TestDefault, when non-nil, replaces Default while test mode is active
	TestDefault *T

	// Convert maps raw environment strings to T. Nil means ConvertIdentity.
	Convert ConvertFunc[T]

	// Help is free-form documentation, never used during resolution
	Help string
}

func (d Def[T]) declName() string {
	return d.Name
}

func (d Def[T]) instantiate(prefix string, env *environment) (entry, error) {
	if err := validateName(d.Name); err != nil {
		return nil, err
	}
	if d.Kind != Mutable && d.Kind != EnvOnly {
		return nil, fmt.Errorf("setting %q: unknown kind %v", d.Name, d.Kind)
	}

	s := &Setting[T]{
		name:    d.Name,
		envVar:  d.EnvVar,
		help:    cleanHelp(d.Help),
		kind:    d.Kind,
		def:     d.Default,
		convert: d.Convert,
		env:     env,
	}
	if s.envVar == "" {
		s.envVar = envVarName(prefix, d.Name)
	}
	if s.convert == nil {
		s.convert = ConvertIdentity[T]
	}
	if d.TestDefault != nil {
		s.testDef, s.hasTestDef = *d.TestDefault, true
	}
	return s, nil
}

// Ptr returns a pointer to v, for filling Def.TestDefault inline
func Ptr[T any](v T) *T {
	return &v
}

// cleanHelp strips the indentation of multi-line help text while keeping
// blank-line paragraph breaks.
func cleanHelp(help string) string {
	lines := strings.Split(strings.TrimSpace(help), "\n")
	var b strings.Builder
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			blank = true
			continue
		}
		if b.Len() > 0 {
			if blank {
				b.WriteString("\n\n")
			} else {
				b.WriteByte(' ')
			}
		}
		blank = false
		b.WriteString(line)
	}
	return b.String()
}
