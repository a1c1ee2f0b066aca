// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates "terry config" with view and set
// subcommands.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or update terry's configuration",
	}
	cmd.AddCommand(newConfigViewCommand(opts))
	cmd.AddCommand(newConfigSetCommand(opts))
	return cmd
}

func newConfigViewCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if f.JSON() {
				return f.Emit(opts.Config)
			}
			data, err := yaml.Marshal(opts.Config)
			if err != nil {
				return WrapExitError(ExitFailure, "marshalling config", err)
			}
			f.Textf("# %s", opts.ConfigPath)
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value [key=value...]",
		Short: "Update configuration keys and save the file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			cfg := opts.Config
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok {
					return WrapExitError(ExitCommandError,
						fmt.Sprintf("expected key=value, got %q", arg), nil)
				}
				if err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
					return WrapExitError(ExitCommandError, "setting config", err)
				}
			}

			if err := cfg.Save(opts.ConfigPath); err != nil {
				return WrapExitError(ExitFailure, "saving config", err)
			}
			opts.Config = cfg

			f.Textf("✅ Configuration updated: %s", opts.ConfigPath)
			if f.JSON() {
				return f.Emit(cfg)
			}
			return nil
		},
	}
}
