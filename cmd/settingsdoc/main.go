// Command settingsdoc lists the settings of an array-computing runtime and
// shows how they resolve in the current environment.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/settings"
	"github.com/lixenwraith/settings/internal/logging"
)

type options struct {
	format   string
	envFiles []string
	logLevel string
	lookup   settings.LookupFunc
}

func main() {
	if err := newRootCmd(settings.OSLookup()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(lookup settings.LookupFunc) *cobra.Command {
	opts := &options{lookup: lookup}

	root := &cobra.Command{
		Use:          "settingsdoc",
		Short:        "Document and inspect runtime settings",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", string(settings.FormatText), "output format: text, toml, yaml or json")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file consulted after the environment (repeatable)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for resolution events")

	root.AddCommand(newListCmd(opts), newResolveCmd(opts))
	return root
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every declared setting without resolving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.registry(cmd)
			if err != nil {
				return err
			}
			return export(cmd, r, opts.format, false)
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve every setting and print its value and source",
		Long: `Resolve every setting against the environment, any --env-file and the
setting flags below. Fails on the first malformed environment value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := opts.registry(cmd)
			if err != nil {
				return err
			}
			if err := r.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			return export(cmd, r, opts.format, true)
		},
	}

	// Flag generation only reads declaration metadata
	template := settings.NewBuilder().
		WithEnvPrefix(envPrefix).
		WithDeclarations(declarations()...).
		WithTestModeHelp(testModeHelp).
		WithLookup(settings.MapLookup(nil)).
		MustBuild()
	template.AddFlags(cmd.Flags())

	return cmd
}

func (o *options) registry(cmd *cobra.Command) (*settings.Registry, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), o.logLevel)
	if err != nil {
		return nil, err
	}

	return settings.NewBuilder().
		WithEnvPrefix(envPrefix).
		WithDeclarations(declarations()...).
		WithTestModeHelp(testModeHelp).
		WithLookup(o.lookup).
		WithDotenv(o.envFiles...).
		WithLogger(logger).
		Build()
}

func export(cmd *cobra.Command, r *settings.Registry, format string, resolve bool) error {
	f, err := settings.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := r.Export(cmd.OutOrStdout(), settings.ExportOptions{Format: f, Resolve: resolve}); err != nil {
		return fmt.Errorf("export settings: %w", err)
	}
	return nil
}
