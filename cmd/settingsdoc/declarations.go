package main

import (
	"github.com/lixenwraith/settings"
)

// envPrefix is the prefix of every variable the demo runtime reads
const envPrefix = "ARRAYRT"

const testModeHelp = `
	Enable test mode. In test mode every array is handed to the distributed
	runtime, and the host fallback for small arrays is turned off.
`

// declarations is the settings table of an array-computing runtime
func declarations() []settings.Declaration {
	return []settings.Declaration{
		settings.Def[bool]{
			Name:    "preload_libs",
			Default: false,
			Convert: settings.ConvertBool,
			Help: `
				Preload and initialize handles of every accelerator library used
				by the runtime.
			`,
		},
		settings.Def[bool]{
			Name:    "warn",
			Default: false,
			Convert: settings.ConvertBool,
			Help:    "Turn on warnings.",
		},
		settings.Def[bool]{
			Name:    "report_coverage",
			Default: false,
			Convert: settings.ConvertBool,
			Help:    "Print the share of API calls that ran accelerated.",
		},
		settings.Def[bool]{
			Name:    "report_dump_callstack",
			Default: false,
			Convert: settings.ConvertBool,
			Help:    "Include call stacks in the coverage report.",
		},
		settings.Def[string]{
			Name:    "report_dump_csv",
			Convert: settings.ConvertString,
			Help:    "Save the coverage report to this CSV file.",
		},
		settings.Def[bool]{
			Name:    "fast_math",
			Kind:    settings.EnvOnly,
			Default: false,
			Convert: settings.ConvertBool,
			Help: `
				Allow floating-point execution modes that may violate strict IEEE
				semantics, such as reduced-precision tensor cores for single
				precision matrix products.

				Read-only, set through the environment.
			`,
		},
		settings.Def[int]{
			Name:        "min_gpu_chunk",
			Kind:        settings.EnvOnly,
			Default:     1 << 16,
			TestDefault: settings.Ptr(2),
			Convert:     settings.ConvertInt,
			Help: `
				Arrays smaller than this stay on the host instead of being
				offloaded to GPUs.

				Read-only, set through the environment.
			`,
		},
		settings.Def[int]{
			Name:        "min_cpu_chunk",
			Kind:        settings.EnvOnly,
			Default:     1 << 10,
			TestDefault: settings.Ptr(2),
			Convert:     settings.ConvertInt,
			Help: `
				Arrays smaller than this stay on the host instead of using the
				native CPU kernels.

				Read-only, set through the environment.
			`,
		},
		settings.Def[int]{
			Name:        "min_omp_chunk",
			Kind:        settings.EnvOnly,
			Default:     1 << 13,
			TestDefault: settings.Ptr(2),
			Convert:     settings.ConvertInt,
			Help: `
				Arrays smaller than this stay on the host instead of using the
				OpenMP kernels.

				Read-only, set through the environment.
			`,
		},
	}
}
