// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/terry/pkg/ticket"
)

// NewCreateCommand creates "terry create": a manual ticket with
// explicit scores, no generation step. Priority and impact area are
// derived from the scores unless given explicitly.
func NewCreateCommand(opts *RootOptions) *cobra.Command {
	var (
		priority   string
		revenue    int
		userImpact int
		complexity int
		alignment  int
		areas      []string
		criteria   []string
		noTracker  bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "create <title> [description]",
		Short: "Create a ticket directly, without the generation step",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			description := ""
			if len(args) > 1 {
				description = args[1]
			}

			scores := ticket.Scores{
				RevenuePotential:    revenue,
				UserImpact:          userImpact,
				TechnicalComplexity: complexity,
				StrategicAlignment:  alignment,
			}
			if priority == "" {
				priority = string(ticket.PriorityFromScores(scores))
			}
			if len(areas) == 0 {
				areas = []string{ticket.ImpactAreaFromScores(scores)}
			}

			builder := ticket.Builder{}
			rec, flags, err := builder.Build(ticket.RawFields{
				Title:              args[0],
				Description:        description,
				Priority:           priority,
				ImpactAreas:        areas,
				AcceptanceCriteria: criteria,
				Scores:             scores,
			})
			if err != nil {
				return WrapExitError(ExitFailure, "building ticket", err)
			}

			printTicket(f, rec, flags)

			if outputPath != "" {
				if err := writeTicketFile(outputPath, rec, scores, opts.Config); err != nil {
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

			res, err := submitRecord(cmd.Context(), opts.Config, rec)
			if err != nil {
				return err
			}
			return reportSubmit(f, res)
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "", "explicit priority (P0-P3); derived from scores if empty")
	cmd.Flags().IntVar(&revenue, "revenue", ticket.DefaultScore, "revenue potential score (0-100)")
	cmd.Flags().IntVar(&userImpact, "user-impact", ticket.DefaultScore, "user impact score (0-100)")
	cmd.Flags().IntVar(&complexity, "complexity", ticket.DefaultScore, "technical complexity score (0-100)")
	cmd.Flags().IntVar(&alignment, "alignment", ticket.DefaultScore, "strategic alignment score (0-100)")
	cmd.Flags().StringArrayVar(&areas, "impact-area", nil, "impact area (repeatable, ranked order)")
	cmd.Flags().StringArrayVar(&criteria, "criterion", nil, "acceptance criterion (repeatable)")
	cmd.Flags().BoolVar(&noTracker, "no-tracker", false, "skip creating the issue in the tracker")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "also write the ticket record to this YAML file")

	return cmd
}
