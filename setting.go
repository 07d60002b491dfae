// FILE: lixenwraith/settings/setting.go
package settings

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Kind distinguishes settings that accept in-process overrides from read-only ones
type Kind int

const (
	// Mutable settings resolve override > environment > default
	Mutable Kind = iota
	// EnvOnly settings resolve environment > default and reject overrides
	EnvOnly
)

func (k Kind) String() string {
	switch k {
	case Mutable:
		return "mutable"
	case EnvOnly:
		return "env_only"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets encoders write the kind by name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Source records where a resolved value came from
type Source string

const (
	// SourceNone marks a setting that has not resolved yet
	SourceNone Source = ""
	// SourceOverride represents an in-process override
	SourceOverride Source = "override"
	// SourceEnv represents a value converted from the environment
	SourceEnv Source = "env"
	// SourceTestDefault represents the test-mode default
	SourceTestDefault Source = "test_default"
	// SourceDefault represents the declared default
	SourceDefault Source = "default"
)

// environment is shared by every setting of one registry
type environment struct {
	lookup   LookupFunc
	testMode func() (bool, error)
	logger   zerolog.Logger
}

// Setting is a single named, typed configuration value. It resolves lazily on
// first access and keeps that value for its lifetime.
type Setting[T any] struct {
	name       string
	envVar     string
	help       string
	kind       Kind
	def        T
	testDef    T
	hasTestDef bool
	convert    ConvertFunc[T]
	env        *environment

	done atomic.Bool // set once value/source/err are final
	mu   sync.Mutex  // guards override and the resolve transition

	override    T
	hasOverride bool

	value  T
	source Source
	err    error
}

// Name returns the setting's identifier
func (s *Setting[T]) Name() string { return s.name }

// EnvVar returns the environment variable consulted during resolution
func (s *Setting[T]) EnvVar() string { return s.envVar }

// Kind returns whether the setting accepts overrides
func (s *Setting[T]) Kind() Kind { return s.kind }

// Default returns the declared default
func (s *Setting[T]) Default() T { return s.def }

// TestDefault returns the test-mode default and whether one was declared
func (s *Setting[T]) TestDefault() (T, bool) { return s.testDef, s.hasTestDef }

// Help returns the descriptive text
func (s *Setting[T]) Help() string { return s.help }

// Value resolves the setting on first call and returns the cached result afterwards.
// Resolution order: override (mutable only), non-empty environment variable,
// test default (when test mode is on and one is declared), default.
// A malformed environment value is returned as a *ConfigError and is cached like
// any other outcome.
func (s *Setting[T]) Value() (T, error) {
	if s.done.Load() {
		return s.value, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.done.Load() {
		s.value, s.source, s.err = s.resolve()
		s.done.Store(true)
		s.logResolution()
	}
	return s.value, s.err
}

// resolve walks the priority chain. Caller holds s.mu.
func (s *Setting[T]) resolve() (T, Source, error) {
	var zero T

	if s.kind == Mutable && s.hasOverride {
		return s.override, SourceOverride, nil
	}

	if s.envVar != "" && s.env.lookup != nil {
		// An empty variable counts as unset
		if raw, ok := s.env.lookup(s.envVar); ok && raw != "" {
			v, err := s.convert(raw)
			if err != nil {
				return zero, SourceEnv, &ConfigError{
					Name:   s.name,
					EnvVar: s.envVar,
					Raw:    raw,
					Source: SourceEnv,
					Err:    err,
				}
			}
			return v, SourceEnv, nil
		}
	}

	if s.hasTestDef && s.env.testMode != nil {
		testing, err := s.env.testMode()
		if err != nil {
			return zero, SourceNone, fmt.Errorf("setting %q: test mode unavailable: %w", s.name, err)
		}
		if testing {
			return s.testDef, SourceTestDefault, nil
		}
	}

	return s.def, SourceDefault, nil
}

func (s *Setting[T]) logResolution() {
	if s.err != nil {
		s.env.logger.Warn().
			Err(s.err).
			Str("setting", s.name).
			Str("env", s.envVar).
			Msg("setting resolution failed")
		return
	}
	s.env.logger.Debug().
		Str("setting", s.name).
		Str("env", s.envVar).
		Str("source", string(s.source)).
		Interface("value", s.value).
		Msg("setting resolved")
}

// Resolved reports whether the setting has already resolved
func (s *Setting[T]) Resolved() bool {
	return s.done.Load()
}

// Source reports where the resolved value came from, or SourceNone before resolution
func (s *Setting[T]) Source() Source {
	if !s.done.Load() {
		return SourceNone
	}
	return s.source
}

// SetOverride installs an in-process value with priority over the environment.
// It fails with ErrImmutableSetting on env-only settings and after resolution.
func (s *Setting[T]) SetOverride(v T) error {
	if err := s.checkMutable(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done.Load() {
		return fmt.Errorf("%w: %q has already resolved", ErrImmutableSetting, s.name)
	}
	s.override, s.hasOverride = v, true
	return nil
}

// ClearOverride drops a pending override. Same restrictions as SetOverride.
func (s *Setting[T]) ClearOverride() error {
	if err := s.checkMutable(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done.Load() {
		return fmt.Errorf("%w: %q has already resolved", ErrImmutableSetting, s.name)
	}
	var zero T
	s.override, s.hasOverride = zero, false
	return nil
}

func (s *Setting[T]) checkMutable() error {
	if s.kind == EnvOnly {
		if s.envVar != "" {
			return fmt.Errorf("%w: %q is read-only, set %s instead", ErrImmutableSetting, s.name, s.envVar)
		}
		return fmt.Errorf("%w: %q is read-only", ErrImmutableSetting, s.name)
	}
	return nil
}

// Convert runs the setting's converter on raw without touching the cache
func (s *Setting[T]) Convert(raw any) (T, error) {
	return s.convert(raw)
}

// Info returns the setting's metadata without resolving it
func (s *Setting[T]) Info() Info {
	info := Info{
		Name:           s.name,
		EnvVar:         s.envVar,
		Kind:           s.kind,
		Type:           s.Type().String(),
		Default:        s.def,
		HasTestDefault: s.hasTestDef,
		Help:           s.help,
	}
	if s.hasTestDef {
		info.TestDefault = s.testDef
	}
	return info
}

// Type returns the setting's value type
func (s *Setting[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (s *Setting[T]) valueAny() (any, error) {
	v, err := s.Value()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// setAny installs an override from an untyped value. Values already of type T
// are used as-is, anything else goes through the converter.
func (s *Setting[T]) setAny(raw any) error {
	if v, ok := raw.(T); ok {
		return s.SetOverride(v)
	}
	if err := s.checkMutable(); err != nil {
		return err
	}

	v, err := s.convert(raw)
	if err != nil {
		return &ConfigError{
			Name:   s.name,
			EnvVar: s.envVar,
			Raw:    fmt.Sprint(raw),
			Source: SourceOverride,
			Err:    err,
		}
	}
	return s.SetOverride(v)
}

// entry is the type-erased view the registry holds
type entry interface {
	Name() string
	EnvVar() string
	Kind() Kind
	Info() Info
	Resolved() bool
	Source() Source
	valueAny() (any, error)
	setAny(raw any) error
}

// Info describes a declared setting for documentation and introspection
type Info struct {
	Name           string
	EnvVar         string
	Kind           Kind
	Type           string
	Default        any
	TestDefault    any
	HasTestDefault bool
	Help           string
}
