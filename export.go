// FILE: lixenwraith/settings/export.go
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Export
type Format string

const (
	FormatText Format = "text"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ExportOptions controls what Export writes
type ExportOptions struct {
	Format Format

	// Resolve adds each setting's resolved value and source. Every setting is
	// resolved first, and any resolution failure aborts the export.
	Resolve bool
}

type exportEntry struct {
	Name        string `toml:"name" yaml:"name" json:"name"`
	EnvVar      string `toml:"env_var" yaml:"env_var" json:"env_var"`
	Kind        string `toml:"kind" yaml:"kind" json:"kind"`
	Type        string `toml:"type" yaml:"type" json:"type"`
	Default     any    `toml:"default" yaml:"default" json:"default"`
	TestDefault any    `toml:"test_default,omitempty" yaml:"test_default,omitempty" json:"test_default,omitempty"`
	Value       any    `toml:"value,omitempty" yaml:"value,omitempty" json:"value,omitempty"`
	Source      string `toml:"source,omitempty" yaml:"source,omitempty" json:"source,omitempty"`
	Help        string `toml:"help,omitempty" yaml:"help,omitempty" json:"help,omitempty"`
}

type exportDocument struct {
	Prefix   string        `toml:"prefix" yaml:"prefix" json:"prefix"`
	Settings []exportEntry `toml:"setting" yaml:"settings" json:"settings"`
}

// Export writes the declaration table, optionally with resolved values, to w.
// Without Resolve it never triggers resolution.
func (r *Registry) Export(w io.Writer, opts ExportOptions) error {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return err
	}

	doc, err := r.exportDocument(opts.Resolve)
	if err != nil {
		return err
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode settings as TOML: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode settings as YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML encoder: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode settings as JSON: %w", err)
		}
	default:
		return writeText(w, doc, opts.Resolve)
	}
	return nil
}

func (r *Registry) exportDocument(resolve bool) (exportDocument, error) {
	if resolve {
		if err := r.ResolveAll(); err != nil {
			return exportDocument{}, err
		}
	}

	doc := exportDocument{
		Prefix:   r.cfg.prefix,
		Settings: make([]exportEntry, 0, len(r.order)),
	}
	for _, name := range r.order {
		e := r.entries[name]
		info := e.Info()
		entry := exportEntry{
			Name:    info.Name,
			EnvVar:  info.EnvVar,
			Kind:    info.Kind.String(),
			Type:    info.Type,
			Default: exportValue(info.Default),
			Help:    info.Help,
		}
		if info.HasTestDefault {
			entry.TestDefault = exportValue(info.TestDefault)
		}
		if resolve {
			v, _ := e.valueAny()
			entry.Value = exportValue(v)
			entry.Source = string(e.Source())
		}
		doc.Settings = append(doc.Settings, entry)
	}
	return doc, nil
}

// exportValue normalizes values every encoder can represent
func exportValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case fmt.Stringer:
		return val.String()
	case []byte:
		return string(val)
	}
	return v
}

func writeText(w io.Writer, doc exportDocument, resolve bool) error {
	var b strings.Builder
	for i, s := range doc.Settings {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s (%s, %s)\n", s.Name, s.Type, s.Kind)
		fmt.Fprintf(&b, "    env:          %s\n", s.EnvVar)
		fmt.Fprintf(&b, "    default:      %s\n", textValue(s.Default))
		if s.TestDefault != nil {
			fmt.Fprintf(&b, "    test default: %s\n", textValue(s.TestDefault))
		}
		if resolve {
			fmt.Fprintf(&b, "    value:        %s (%s)\n", textValue(s.Value), s.Source)
		}
		if s.Help != "" {
			b.WriteByte('\n')
			for _, line := range strings.Split(s.Help, "\n") {
				if line == "" {
					b.WriteByte('\n')
					continue
				}
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "(none)"
	case string:
		if val == "" {
			return `""`
		}
		return val
	}
	return fmt.Sprint(v)
}
