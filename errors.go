// FILE: lixenwraith/settings/errors.go
package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is returned when a converter cannot interpret a raw input
	ErrInvalidValue = errors.New("invalid value")

	// ErrImmutableSetting is returned when an override is attempted on an env-only
	// setting, or on any setting that has already resolved
	ErrImmutableSetting = errors.New("immutable setting")

	// ErrUnknownSetting is returned when a name is not declared in the registry
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrTypeMismatch is returned when typed access disagrees with the declared type
	ErrTypeMismatch = errors.New("setting type mismatch")

	// ErrDuplicateSetting is returned when two declarations share a name
	ErrDuplicateSetting = errors.New("duplicate setting")

	// ErrInvalidName is returned for empty or malformed setting names
	ErrInvalidName = errors.New("invalid setting name")

	// ErrDotenv is returned when a dotenv file cannot be read or parsed
	ErrDotenv = errors.New("dotenv source failed")
)

// ConfigError reports a raw value that could not be converted for a setting.
// It unwraps to the converter error, which in turn wraps ErrInvalidValue.
type ConfigError struct {
	Name   string
	EnvVar string
	Raw    string
	Source Source
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == SourceEnv && e.EnvVar != "" {
		return fmt.Sprintf("setting %q: cannot convert %s=%q: %v", e.Name, e.EnvVar, e.Raw, e.Err)
	}
	return fmt.Sprintf("setting %q: cannot convert %s value %q: %v", e.Name, e.Source, e.Raw, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// invalidValue builds a converter error wrapping ErrInvalidValue
func invalidValue(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}
