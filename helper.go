// File: lixenwraith/settings/helper.go
package settings

import (
	"fmt"
	"strings"
)

// validateName checks a setting name. Names are dot-separated segments of
// ASCII letters, digits, underscores and dashes, e.g. "min_cpu_chunk" or "report.dump_csv".
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	for _, segment := range strings.Split(name, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("%w: invalid segment %q in %q", ErrInvalidName, segment, name)
		}
	}
	return nil
}

// isValidKeySegment checks if a single name segment is a valid bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// envVarName derives the conventional environment variable for a setting:
// PREFIX_NAME with dots and dashes mapped to underscores, uppercased.
func envVarName(prefix, name string) string {
	env := strings.NewReplacer(".", "_", "-", "_").Replace(name)
	env = strings.ToUpper(env)
	if prefix == "" {
		return env
	}
	prefix = strings.ToUpper(strings.TrimSuffix(prefix, "_"))
	return prefix + "_" + env
}

// flagName maps a setting name to its command-line flag ("min_cpu_chunk" -> "min-cpu-chunk")
func flagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// navigateToPath traverses nested map to reach the specified path
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range strings.Split(path, ".") {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}
