// File: lixenwraith/settings/type.go
package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// String retrieves a setting as a string.
// Attempts conversion from common types if the declared type isn't string.
func (r *Registry) String(name string) (string, error) {
	val, err := r.Get(name)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: cannot convert %T to string for setting %q", ErrTypeMismatch, val, name)
	}
}

// Bool retrieves a setting as a bool using ConvertBool's rules
func (r *Registry) Bool(name string) (bool, error) {
	val, err := r.Get(name)
	if err != nil {
		return false, err
	}
	b, err := ConvertBool(val)
	if err != nil {
		return false, fmt.Errorf("setting %q: %w", name, err)
	}
	return b, nil
}

// Int retrieves a setting as an int using ConvertInt's rules
func (r *Registry) Int(name string) (int, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	i, err := ConvertInt(val)
	if err != nil {
		return 0, fmt.Errorf("setting %q: %w", name, err)
	}
	return i, nil
}

// Int64 retrieves a setting as an int64 using ConvertInt64's rules
func (r *Registry) Int64(name string) (int64, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	i, err := ConvertInt64(val)
	if err != nil {
		return 0, fmt.Errorf("setting %q: %w", name, err)
	}
	return i, nil
}

// Float64 retrieves a setting as a float64 using ConvertFloat's rules
func (r *Registry) Float64(name string) (float64, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	f, err := ConvertFloat(val)
	if err != nil {
		return 0, fmt.Errorf("setting %q: %w", name, err)
	}
	return f, nil
}

// Duration retrieves a setting as a time.Duration using ConvertDuration's rules
func (r *Registry) Duration(name string) (time.Duration, error) {
	val, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	d, err := ConvertDuration(val)
	if err != nil {
		return 0, fmt.Errorf("setting %q: %w", name, err)
	}
	return d, nil
}

// StringSlice retrieves a setting as a []string using ConvertStringSlice's rules
func (r *Registry) StringSlice(name string) ([]string, error) {
	val, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	s, err := ConvertStringSlice(val)
	if err != nil {
		return nil, fmt.Errorf("setting %q: %w", name, err)
	}
	return s, nil
}
