// FILE: lixenwraith/settings/convert.go
package settings

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// ConvertFunc maps a raw input (typically an environment string) to a typed value.
// Converters must be pure. Failures wrap ErrInvalidValue.
type ConvertFunc[T any] func(raw any) (T, error)

// ConvertIdentity passes values through unchanged when they already have type T.
// It is the converter used when a declaration leaves Convert nil.
func ConvertIdentity[T any](raw any) (T, error) {
	if v, ok := raw.(T); ok {
		return v, nil
	}
	var zero T
	return zero, invalidValue("expected %T, got %T", zero, raw)
}

// ConvertBool interprets booleans, the strings 1/true/yes/on and 0/false/no/off
// (case-insensitive), and the integers 0 and 1.
func ConvertBool(raw any) (bool, error) {
	if raw == nil {
		return false, invalidValue("nil is not a boolean")
	}

	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		switch strings.ToLower(strings.TrimSpace(v.String())) {
		case "1", "true", "yes", "on":
			return true, nil
		case "0", "false", "no", "off":
			return false, nil
		}
		return false, invalidValue("cannot interpret %q as a boolean", v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Int() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, invalidValue("integer %d is not 0 or 1", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v.Uint() {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, invalidValue("integer %d is not 0 or 1", v.Uint())
	}

	return false, invalidValue("cannot convert %T to bool", raw)
}

// ConvertInt interprets integers and decimal strings as int.
func ConvertInt(raw any) (int, error) {
	i, err := ConvertInt64(raw)
	if err != nil {
		return 0, err
	}
	if i < math.MinInt || i > math.MaxInt {
		return 0, invalidValue("%d overflows int", i)
	}
	return int(i), nil
}

// ConvertInt64 interprets integers, integral floats and decimal strings as int64.
func ConvertInt64(raw any) (int64, error) {
	if raw == nil {
		return 0, invalidValue("nil is not an integer")
	}

	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, invalidValue("unsigned integer %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, invalidValue("float %v is not an integer", f)
		}
		return int64(f), nil
	case reflect.String:
		s := strings.TrimSpace(v.String())
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, invalidValue("cannot parse %q as a decimal integer", v.String())
		}
		return i, nil
	}

	return 0, invalidValue("cannot convert %T to integer", raw)
}

// ConvertFloat interprets numbers and numeric strings as float64.
func ConvertFloat(raw any) (float64, error) {
	if raw == nil {
		return 0, invalidValue("nil is not a number")
	}

	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, invalidValue("cannot parse %q as a number", v.String())
		}
		return f, nil
	}

	return 0, invalidValue("cannot convert %T to float64", raw)
}

// ConvertString accepts strings, byte slices and fmt.Stringer values.
func ConvertString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", invalidValue("cannot convert %T to string", raw)
}

// ConvertStringSlice splits comma-separated strings, trimming each element and
// dropping empty ones. String slices pass through.
func ConvertStringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, invalidValue("element %d is %T, not string", i, elem)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, invalidValue("cannot convert %T to []string", raw)
}

// ConvertDuration parses Go duration strings, extended with day and week units
// ("1d12h", "2w").
func ConvertDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := str2duration.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return 0, invalidValue("cannot parse %q as a duration", v)
		}
		return d, nil
	}
	return 0, invalidValue("cannot convert %T to duration", raw)
}
