// FILE: lixenwraith/settings/registry.go
package settings

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
)

// TestModeName is the name of the setting every registry declares first.
// Its value selects TestDefault over Default for settings that declare one.
const TestModeName = "test"

const defaultTestModeHelp = `
	Enable test mode. Settings that declare a test default use it instead of
	their regular default while test mode is on.
`

// registryConfig holds everything needed to (re)build a registry
type registryConfig struct {
	prefix       string
	decls        []Declaration
	lookup       LookupFunc
	logger       zerolog.Logger
	testModeHelp string
}

// Registry is an ordered, fixed collection of settings built from a declaration table.
// Membership never changes after construction. All methods are safe for concurrent use.
type Registry struct {
	cfg      registryConfig
	order    []string
	entries  map[string]entry
	testMode *Setting[bool]
}

// newRegistry instantiates every declaration in a single pass. The test-mode
// setting is always declared first.
func newRegistry(cfg registryConfig) (*Registry, error) {
	if cfg.lookup == nil {
		cfg.lookup = OSLookup()
	}
	if cfg.testModeHelp == "" {
		cfg.testModeHelp = defaultTestModeHelp
	}

	r := &Registry{
		cfg:     cfg,
		order:   make([]string, 0, len(cfg.decls)+1),
		entries: make(map[string]entry, len(cfg.decls)+1),
	}

	env := &environment{
		lookup: cfg.lookup,
		logger: cfg.logger.With().Str("component", "settings").Logger(),
	}

	testDecl := Def[bool]{
		Name:    TestModeName,
		Kind:    Mutable,
		Default: false,
		Convert: ConvertBool,
		Help:    cfg.testModeHelp,
	}

	var errs []error
	for _, decl := range append([]Declaration{testDecl}, cfg.decls...) {
		if decl == nil {
			errs = append(errs, fmt.Errorf("%w: nil declaration", ErrInvalidName))
			continue
		}
		name := decl.declName()
		if _, exists := r.entries[name]; exists {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateSetting, name))
			continue
		}
		e, err := decl.instantiate(cfg.prefix, env)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if other, ok := r.nestingConflict(name); ok {
			errs = append(errs, fmt.Errorf("%w: %q and %q overlap as a value and a section", ErrDuplicateSetting, other, name))
			continue
		}
		r.entries[name] = e
		r.order = append(r.order, name)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r.testMode = r.entries[TestModeName].(*Setting[bool])
	env.testMode = r.testMode.Value

	return r, nil
}

// nestingConflict finds a declared name that is a dotted prefix of name, or has
// name as its dotted prefix ("report" and "report.csv")
func (r *Registry) nestingConflict(name string) (string, bool) {
	for i := range len(name) {
		if name[i] == '.' {
			if _, ok := r.entries[name[:i]]; ok {
				return name[:i], true
			}
		}
	}
	for _, other := range r.order {
		if strings.HasPrefix(other, name+".") {
			return other, true
		}
	}
	return "", false
}

// Fresh builds a new registry from the same declarations and options.
// None of its settings are resolved, and overrides are not carried over.
func (r *Registry) Fresh() *Registry {
	fresh, err := newRegistry(r.cfg)
	if err != nil {
		// The same table already built once
		panic(fmt.Sprintf("settings: rebuilding registry: %v", err))
	}
	return fresh
}

// Prefix returns the environment variable prefix
func (r *Registry) Prefix() string {
	return r.cfg.prefix
}

// Get resolves (if needed) and returns the value of the named setting.
func (r *Registry) Get(name string) (any, error) {
	e, err := r.entry(name)
	if err != nil {
		return nil, err
	}
	return e.valueAny()
}

// Set installs an override on a mutable setting. Values of the declared type
// are used directly; other values (e.g. strings from a command line) go through
// the setting's converter.
func (r *Registry) Set(name string, value any) error {
	e, err := r.entry(name)
	if err != nil {
		return err
	}
	return e.setAny(value)
}

// TestMode resolves and returns the process-wide test-mode flag
func (r *Registry) TestMode() (bool, error) {
	return r.testMode.Value()
}

// Has reports whether name is declared
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of declared settings, including the test-mode setting
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns setting names in declaration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Settings returns metadata for every declared setting in declaration order.
// It never triggers resolution.
func (r *Registry) Settings() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.entries[name].Info())
	}
	return infos
}

// All iterates setting metadata in declaration order without resolving anything
func (r *Registry) All() iter.Seq[Info] {
	return func(yield func(Info) bool) {
		for _, name := range r.order {
			if !yield(r.entries[name].Info()) {
				return
			}
		}
	}
}

// ResolveAll resolves every setting and returns all failures joined.
// Hosts call it at startup to fail fast on malformed environment values.
func (r *Registry) ResolveAll() error {
	var errs []error
	for _, name := range r.order {
		if _, err := r.entries[name].valueAny(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot resolves every setting and returns name -> value
func (r *Registry) Snapshot() (map[string]any, error) {
	if err := r.ResolveAll(); err != nil {
		return nil, err
	}
	snapshot := make(map[string]any, len(r.order))
	for _, name := range r.order {
		v, _ := r.entries[name].valueAny()
		snapshot[name] = v
	}
	return snapshot, nil
}

// Debug returns a formatted listing of every setting and its state.
// Unresolved settings are shown as such; Debug never resolves.
func (r *Registry) Debug() string {
	var b strings.Builder
	b.WriteString("Settings Debug Info:\n")
	fmt.Fprintf(&b, "Prefix: %s\n", r.cfg.prefix)

	for _, name := range r.order {
		e := r.entries[name]
		info := e.Info()
		fmt.Fprintf(&b, "  %s (%s, %s):\n", name, info.Type, info.Kind)
		fmt.Fprintf(&b, "    Env: %s\n", info.EnvVar)
		fmt.Fprintf(&b, "    Default: %v\n", info.Default)
		if info.HasTestDefault {
			fmt.Fprintf(&b, "    TestDefault: %v\n", info.TestDefault)
		}
		if !e.Resolved() {
			b.WriteString("    Current: (unresolved)\n")
			continue
		}
		v, err := e.valueAny()
		if err != nil {
			fmt.Fprintf(&b, "    Error: %v\n", err)
			continue
		}
		fmt.Fprintf(&b, "    Current: %v (%s)\n", v, e.Source())
	}

	return b.String()
}

func (r *Registry) entry(name string) (entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, name)
	}
	return e, nil
}

// Value returns the typed value of the named setting.
func Value[T any](r *Registry, name string) (T, error) {
	s, err := Lookup[T](r, name)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.Value()
}

// Lookup returns the typed setting declared under name, e.g. to install an override.
func Lookup[T any](r *Registry, name string) (*Setting[T], error) {
	e, err := r.entry(name)
	if err != nil {
		return nil, err
	}
	s, ok := e.(*Setting[T])
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not %s", ErrTypeMismatch, name, e.Info().Type, reflect.TypeFor[T]())
	}
	return s, nil
}
