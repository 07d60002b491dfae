// FILE: lixenwraith/settings/decode.go
package settings

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ScanTagName is the struct tag Scan maps setting names with
const ScanTagName = "setting"

// Scan resolves every setting and decodes the values under basePath into target.
// Dotted names ("report.dump_csv") become nested sections. Fields are matched
// by the `setting` struct tag.
func (r *Registry) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	snapshot, err := r.Snapshot()
	if err != nil {
		return err
	}

	nestedMap := make(map[string]any)
	for _, name := range r.order {
		setNestedValue(nestedMap, name, snapshot[name])
	}

	sectionData := navigateToPath(nestedMap, basePath)
	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("path %q refers to non-section value (type %T)", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          ScanTagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// ConvertDecode returns a converter backed by weakly typed decoding. It covers
// types without a dedicated converter: sized numbers, slices, net.IP, url.URL,
// time.Duration and structs decoded from maps.
func ConvertDecode[T any]() ConvertFunc[T] {
	return func(raw any) (T, error) {
		var out T
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &out,
			TagName:          ScanTagName,
			WeaklyTypedInput: true,
			DecodeHook:       decodeHook(),
		})
		if err != nil {
			return out, fmt.Errorf("decoder creation failed: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			var zero T
			return zero, invalidValue("cannot decode %T into %T: %v", raw, zero, err)
		}
		return out, nil
	}
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),
		stringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	)
}

// stringToSliceHookFunc splits a string into trimmed, non-empty elements for any
// slice target except byte slices. Weak decoding then converts each element.
func stringToSliceHookFunc(sep string) mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice || t.Elem().Kind() == reflect.Uint8 {
			return data, nil
		}

		parts := strings.Split(reflect.ValueOf(data).String(), sep)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
