// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cli wires the terry command tree: natural-language and
// manual ticket creation, cache inspection and retry, and
// configuration management.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/terry/internal/config"
	"github.com/mesh-intelligence/terry/internal/logging"
)

// RootOptions holds global flags plus the configuration loaded once in
// the persistent pre-run and threaded into every command.
type RootOptions struct {
	ConfigPath string
	Format     string // "text" | "json"
	Verbose    bool
	LogFile    string

	Config config.Config
}

// ValidFormats are the allowed --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the terry root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "terry",
		Short:         "Terry: your sarcastic AI product manager",
		Long:          "Terry turns natural language into tracker tickets and never loses one, even when the tracker is down.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			logging.SetVerbose(opts.Verbose)
			if opts.LogFile != "" {
				if err := logging.OpenSink(opts.LogFile); err != nil {
					return WrapExitError(ExitFailure, "opening log file", err)
				}
			}

			if opts.ConfigPath == "" {
				opts.ConfigPath = config.DefaultPath()
			}
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitFailure, "loading configuration", err)
			}
			opts.Config = cfg

			// First run: write the defaults so the operator has a file
			// to edit.
			if _, err := os.Stat(opts.ConfigPath); os.IsNotExist(err) {
				if err := cfg.Save(opts.ConfigPath); err != nil {
					logging.Logf("cli: could not write default config: %v", err)
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.CloseSink()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.terry.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "append diagnostic lines to this file")

	cmd.AddCommand(NewNLCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
