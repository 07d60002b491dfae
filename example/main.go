// FILE: lixenwraith/settings/example/main.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/lixenwraith/settings"
	"github.com/lixenwraith/settings/internal/logging"
)

// RuntimeOptions is filled from the registry with Scan
type RuntimeOptions struct {
	Warn        bool   `setting:"warn"`
	MinCPUChunk int    `setting:"min_cpu_chunk"`
	CSVReport   string `setting:"report_dump_csv"`
}

var table = []settings.Declaration{
	settings.Def[bool]{Name: "warn", Convert: settings.ConvertBool, Help: "Turn on warnings."},
	settings.Def[string]{Name: "report_dump_csv", Convert: settings.ConvertString},
	settings.Def[int]{
		Name:        "min_cpu_chunk",
		Kind:        settings.EnvOnly,
		Default:     1024,
		TestDefault: settings.Ptr(2),
		Convert:     settings.ConvertInt,
	},
}

func main() {
	logger, err := logging.Stderr("debug")
	if err != nil {
		log.Fatal(err)
	}

	// =========================================================================
	// PART 1: Environment and overrides
	// =========================================================================
	if err := os.Setenv("DEMO_MIN_CPU_CHUNK", "4096"); err != nil {
		log.Fatalf("setenv: %v", err)
	}
	defer func() {
		if err := os.Unsetenv("DEMO_MIN_CPU_CHUNK"); err != nil {
			log.Printf("unsetenv: %v", err)
		}
	}()

	reg, err := settings.NewBuilder().
		WithEnvPrefix("DEMO").
		WithDeclarations(table...).
		WithLogger(logger).
		Build()
	if err != nil {
		log.Fatalf("build: %v", err)
	}

	if err := reg.Set("warn", "yes"); err != nil {
		log.Fatalf("set warn: %v", err)
	}
	if err := reg.Set("min_cpu_chunk", 8); !errors.Is(err, settings.ErrImmutableSetting) {
		log.Fatalf("expected env-only rejection, got %v", err)
	}

	var opts RuntimeOptions
	if err := reg.Scan("", &opts); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("options: %+v\n", opts)

	// =========================================================================
	// PART 2: Test mode on a fresh registry
	// =========================================================================
	if err := os.Unsetenv("DEMO_MIN_CPU_CHUNK"); err != nil {
		log.Fatalf("unsetenv: %v", err)
	}
	fresh := reg.Fresh()
	if err := fresh.Set(settings.TestModeName, true); err != nil {
		log.Fatalf("enable test mode: %v", err)
	}

	// Concurrent first access resolves once
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = settings.Value[int](fresh, "min_cpu_chunk")
		}()
	}
	wg.Wait()

	chunk, _ := settings.Value[int](fresh, "min_cpu_chunk")
	fmt.Printf("min_cpu_chunk in test mode: %d\n", chunk)

	fmt.Print(fresh.Debug())
}
