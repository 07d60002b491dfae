// FILE: lixenwraith/settings/env.go
package settings

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

// LookupFunc reads one environment variable. It has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// OSLookup reads the process environment
func OSLookup() LookupFunc {
	return os.LookupEnv
}

// MapLookup serves variables from a fixed map, mostly for tests and embedding
func MapLookup(vars map[string]string) LookupFunc {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := copied[key]
		return v, ok
	}
}

// ChainLookup consults each lookup in order and returns the first non-empty value.
// An empty value falls through to the next lookup, matching how resolution
// treats empty variables as unset.
func ChainLookup(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		found := false
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			v, ok := lookup(key)
			if ok && v != "" {
				return v, true
			}
			found = found || ok
		}
		return "", found
	}
}

// DotenvLookup reads one or more dotenv files into a lookup. When the same key
// appears in several files, the later file wins. Files are read once, here.
func DotenvLookup(paths ...string) (LookupFunc, error) {
	vars, err := readDotenv(paths...)
	if err != nil {
		return nil, err
	}
	return MapLookup(vars), nil
}

func readDotenv(paths ...string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: file %q not found", ErrDotenv, path)
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrDotenv, path, err)
		}
		if err := mergo.Merge(&merged, vars, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("%w: merging %s: %w", ErrDotenv, path, err)
		}
	}
	return merged, nil
}
