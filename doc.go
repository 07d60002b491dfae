// File: lixenwraith/settings/doc.go

// Package settings provides typed, lazily resolved runtime settings for host
// processes. Each setting is declared once in a table, reads one environment
// variable, and caches its value on first access for the process lifetime.
//
// Features:
//   - Generic Setting[T] with pluggable converters (bool, int, float, string,
//     string slices, durations, mapstructure-backed decoding)
//   - Mutable settings accepting in-process overrides, and env-only settings
//   - Test mode selecting alternate defaults
//   - Resolve-once semantics safe for concurrent first access
//   - Dotenv files and discovery layered below the process environment
//   - pflag integration, struct scanning and TOML/YAML/JSON export
//
// Quick Start:
//
//	reg, err := settings.New("ARRAYRT",
//	    settings.Def[bool]{
//	        Name:    "warn",
//	        Convert: settings.ConvertBool,
//	        Help:    "Turn on warnings.",
//	    },
//	    settings.Def[int]{
//	        Name:        "min_cpu_chunk",
//	        Kind:        settings.EnvOnly,
//	        Default:     1024,
//	        TestDefault: settings.Ptr(2),
//	        Convert:     settings.ConvertInt,
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunk, err := settings.Value[int](reg, "min_cpu_chunk") // reads ARRAYRT_MIN_CPU_CHUNK
//
// Precedence (highest to lowest):
//  1. Override installed with Set or SetOverride (mutable settings only)
//  2. Environment variable, when set and non-empty
//  3. Test default, when declared and the test setting is on
//  4. Default
//
// Thread Safety:
// All operations are safe for concurrent use. The first access to a setting
// runs its resolution exactly once, and every caller observes the same value
// or error afterwards. Overrides are rejected once a setting has resolved.
package settings
