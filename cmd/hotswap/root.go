/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/suparena/hotswap"
	"github.com/suparena/hotswap/manifest"
	"github.com/suparena/hotswap/model"
	"github.com/suparena/hotswap/model/testmodels"
)

// app holds what every subcommand needs once flags and env are resolved.
type app struct {
	v        *viper.Viper
	registry *hotswap.Registry
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "hotswap",
		Short:         "Inspect alias bindings from a manifest against the sample library catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("manifest", "hotswap.yaml", "path to the binding manifest")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlag("manifest", root.PersistentFlags().Lookup("manifest"))
	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(
		newVersionCmd(),
		newListCmd(a),
		newResolveCmd(a),
		newMakeCmd(a),
	)
	return root
}

// needsRegistry reports whether cmd reads the manifest. Help, version and
// shell completion must work without one.
func needsRegistry(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

func (a *app) init(cmd *cobra.Command) error {
	if !needsRegistry(cmd) {
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	a.v.SetEnvPrefix("HOTSWAP")
	a.v.AutomaticEnv()

	level := slog.LevelInfo
	if a.v.GetBool("debug") {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path := a.v.GetString("manifest")
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	a.registry = hotswap.New(hotswap.WithLogger(a.logger))
	if err := m.Apply(a.registry, manifest.NewCatalog(testmodels.Classes()...)); err != nil {
		return fmt.Errorf("failed to apply %s: %w", path, err)
	}
	a.logger.Debug("manifest applied", "path", path, "aliases", a.registry.Len())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := hotswap.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hotswap version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bound aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, alias := range a.registry.Aliases() {
				c, _ := a.registry.Resolve(alias)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", alias, c.Name())
			}
			return nil
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <alias>",
		Short: "Print the class bound to an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := a.registry.Resolve(args[0])
			if !ok {
				return fmt.Errorf("alias %q is not bound", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Name())
			return nil
		},
	}
}

func newMakeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "make <alias> [key=value...]",
		Short: "Construct an entity through an alias and print it as YAML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAttributes(args[1:])
			if err != nil {
				return err
			}
			m, err := a.registry.Make(args[0], attrs)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("alias %q is not bound", args[0])
			}
			c, _ := a.registry.Resolve(args[0])
			return writeYAML(cmd.OutOrStdout(), map[string]any{
				"alias":      args[0],
				"class":      c.Name(),
				"attributes": m.Attributes(),
			})
		},
	}
}

func parseAttributes(pairs []string) (model.Attributes, error) {
	attrs := make(model.Attributes, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q, want key=value", pair)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
