// File: lixenwraith/settings/builder.go
package settings

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ValidatorFunc inspects a freshly built Registry and returns an error to reject it.
// Validators may resolve settings; resolved values stay cached in the returned registry.
type ValidatorFunc func(r *Registry) error

// Builder provides a fluent interface for building registries
type Builder struct {
	prefix       string
	decls        []Declaration
	lookup       LookupFunc
	dotenv       []string
	discovery    *DotenvDiscoveryOptions
	logger       zerolog.Logger
	testModeHelp string
	validators   []ValidatorFunc
	err          error
}

// NewBuilder creates a new registry builder reading the process environment
func NewBuilder() *Builder {
	return &Builder{
		lookup:     OSLookup(),
		logger:     zerolog.Nop(),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithEnvPrefix sets the prefix of derived environment variable names ("APP" -> APP_NAME)
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// WithDeclarations appends rows to the declaration table
func (b *Builder) WithDeclarations(decls ...Declaration) *Builder {
	b.decls = append(b.decls, decls...)
	return b
}

// WithLookup replaces the process environment as the variable source
func (b *Builder) WithLookup(lookup LookupFunc) *Builder {
	if lookup == nil {
		b.err = errors.Join(b.err, errors.New("lookup function cannot be nil"))
		return b
	}
	b.lookup = lookup
	return b
}

// WithDotenv adds dotenv files consulted after the primary lookup.
// Later files take precedence over earlier ones.
func (b *Builder) WithDotenv(paths ...string) *Builder {
	b.dotenv = append(b.dotenv, paths...)
	return b
}

// WithDotenvDiscovery searches for a dotenv file at build time. Files given to
// WithDotenv take precedence over a discovered one.
func (b *Builder) WithDotenvDiscovery(opts DotenvDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithLogger sets the logger receiving resolution events
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithTestModeHelp replaces the help text of the built-in test-mode setting
func (b *Builder) WithTestModeHelp(help string) *Builder {
	b.testModeHelp = help
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Registry with all specified options
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	lookup, err := b.environment()
	if err != nil {
		return nil, err
	}

	r, err := newRegistry(registryConfig{
		prefix:       b.prefix,
		decls:        append([]Declaration(nil), b.decls...),
		lookup:       lookup,
		logger:       b.logger,
		testModeHelp: b.testModeHelp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	for _, validator := range b.validators {
		if err := validator(r); err != nil {
			return nil, fmt.Errorf("registry validation failed: %w", err)
		}
	}

	return r, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings build failed: %v", err))
	}
	return r
}

// environment composes the primary lookup with any dotenv files.
// The primary lookup always wins over file contents.
func (b *Builder) environment() (LookupFunc, error) {
	paths := append([]string(nil), b.dotenv...)
	if b.discovery != nil {
		if found := DiscoverDotenv(*b.discovery, b.lookup); found != "" {
			paths = append([]string{found}, paths...)
		}
	}
	if len(paths) == 0 {
		return b.lookup, nil
	}

	fileLookup, err := DotenvLookup(paths...)
	if err != nil {
		return nil, err
	}
	b.logger.Debug().Strs("files", paths).Msg("dotenv files loaded")
	return ChainLookup(b.lookup, fileLookup), nil
}
