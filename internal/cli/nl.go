// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// NewNLCommand creates "terry nl": generate a ticket from natural
// language and submit it.
func NewNLCommand(opts *RootOptions) *cobra.Command {
	var (
		noTracker  bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "nl <description>",
		Short: "Create a ticket from a natural language description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			description := strings.Join(args, " ")

			f.Textf("🤖 Terry is analyzing your request...")

			gen := newGenerator(opts.Config)
			raw, err := gen.Generate(cmd.Context(), description)
			if err != nil {
				// Nothing valid was produced, so there is nothing to
				// cache: generation failure is fatal for this call.
				return WrapExitError(ExitFailure, "generating ticket", err)
			}

			builder := ticket.Builder{}
			rec, flags, err := builder.Build(raw)
			if err != nil {
				return WrapExitError(ExitFailure, "building ticket", err)
			}

			printTicket(f, rec, flags)

			if outputPath != "" {
				if err := writeTicketFile(outputPath, rec, raw.Scores, opts.Config); err != nil {
					return WrapExitError(ExitFailure, "saving ticket file", err)
				}
				f.Textf("💾 Ticket saved to %s", outputPath)
			}

			if noTracker {
				if f.JSON() {
					return f.Emit(rec)
				}
				return nil
			}

			f.Textf("📋 Creating issue in tracking system...")
			res, err := submitRecord(cmd.Context(), opts.Config, rec)
			if err != nil {
				return err
			}
			return reportSubmit(f, res)
		},
	}

	cmd.Flags().BoolVar(&noTracker, "no-tracker", false, "skip creating the issue in the tracker")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "also write the ticket record to this YAML file")

	return cmd
}

// printTicket shows the generated ticket in text mode, flags included.
func printTicket(f *Formatter, rec ticket.Record, flags []string) {
	f.Textf("\n🎫 Generated Ticket:")
	f.Textf("----------------------------------------")
	f.Textf("Title:       %s", rec.Title)
	f.Textf("Priority:    %s", rec.Priority)
	if len(rec.ImpactAreas) > 0 {
		f.Textf("Impact:      %s", strings.Join(rec.ImpactAreas, ", "))
	}
	if rec.Description != "" {
		f.Textf("\n📝 Description:\n%s", rec.Description)
	}
	for _, flag := range flags {
		f.Textf("⚠️  %s", flag)
	}
}
