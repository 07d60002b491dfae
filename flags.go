// FILE: lixenwraith/settings/flags.go
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// flagAnnotation marks pflag flags generated for a setting and records its name
const flagAnnotation = "settings.name"

// FlagSet returns a new pflag set with one flag per mutable setting.
// Env-only settings get no flag.
func (r *Registry) FlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	r.AddFlags(fs)
	return fs
}

// AddFlags adds a string flag for every mutable setting to fs. Flag names use
// dashes ("min_cpu_chunk" -> --min-cpu-chunk). Flags already present in fs are
// left alone. Boolean settings accept a bare --flag as true.
func (r *Registry) AddFlags(fs *pflag.FlagSet) {
	for _, name := range r.order {
		e := r.entries[name]
		if e.Kind() != Mutable {
			continue
		}

		fname := flagName(name)
		if fs.Lookup(fname) != nil {
			continue
		}

		info := e.Info()
		usage := firstLine(info.Help)
		if usage == "" {
			usage = name
		}
		usage = fmt.Sprintf("%s (env %s)", usage, info.EnvVar)

		fs.String(fname, flagDefault(info.Default), usage)
		f := fs.Lookup(fname)
		f.Annotations = map[string][]string{flagAnnotation: {name}}
		if info.Type == "bool" {
			f.NoOptDefVal = "true"
		}
	}
}

// BindFlags installs an override for every setting flag that was set on the
// command line. Flags not generated by AddFlags are ignored, so a flag set can
// be shared with other options. Must run before the settings resolve.
func (r *Registry) BindFlags(fs *pflag.FlagSet) error {
	var errs []error

	fs.Visit(func(f *pflag.Flag) {
		names, ok := f.Annotations[flagAnnotation]
		if !ok || len(names) == 0 {
			return
		}
		if err := r.Set(names[0], f.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", f.Name, err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("failed to bind %d flags: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

// flagDefault renders a default so that passing it back as a flag value
// converts to the same value
func flagDefault(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(val, ",")
	}
	return fmt.Sprint(exportValue(v))
}

func firstLine(help string) string {
	line, _, _ := strings.Cut(help, "\n")
	if i := strings.Index(line, ". "); i >= 0 {
		line = line[:i+1]
	}
	return strings.TrimSpace(line)
}
