// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/terry/pkg/retry"
)

// NewCacheCommand creates "terry cache" with list and retry
// subcommands.
func NewCacheCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and retry locally cached tickets",
	}
	cmd.AddCommand(newCacheListCommand(opts))
	cmd.AddCommand(newCacheRetryCommand(opts))
	return cmd
}

func newCacheListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending cached tickets, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			store, err := newStore(opts.Config)
			if err != nil {
				return WrapExitError(ExitFailure, "opening durable cache", err)
			}
			entries, err := store.List()
			if err != nil {
				return WrapExitError(ExitFailure, "listing cache", err)
			}

			if f.JSON() {
				return f.Emit(entries)
			}
			if len(entries) == 0 {
				f.Textf("No cached tickets.")
				return nil
			}

			// Attempts are listed so operators can layer their own
			// give-up policy; terry itself never drops an entry.
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tATTEMPTS\tCACHED AT\tLAST ERROR")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					e.ID, e.Record.Title, e.Record.Priority, e.Attempts,
					e.CachedAt.Format("2006-01-02 15:04:05"), e.LastError)
			}
			return w.Flush()
		},
	}
}

func newCacheRetryCommand(opts *RootOptions) *cobra.Command {
	var (
		id  string
		all bool
	)

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Retry delivery of cached tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

			if id == "" && !all {
				return WrapExitError(ExitCommandError, "specify exactly one of --id or --all", nil)
			}
			if id != "" && all {
				return WrapExitError(ExitCommandError, "specify exactly one of --id or --all", nil)
			}

			store, err := newStore(opts.Config)
			if err != nil {
				return WrapExitError(ExitFailure, "opening durable cache", err)
			}
			client, err := newTracker(opts.Config)
			if err != nil {
				return err
			}
			coord := retry.New(store, client)

			var outcomes []retry.Outcome
			if all {
				outcomes, err = coord.RetryAll(cmd.Context())
				if err != nil {
					return WrapExitError(ExitFailure, "reading cache", err)
				}
			} else {
				out, _ := coord.RetryOne(cmd.Context(), id)
				outcomes = []retry.Outcome{out}
			}

			if f.JSON() {
				if err := f.Emit(outcomes); err != nil {
					return err
				}
			} else {
				reportOutcomes(f, outcomes)
			}

			// Fatal and storage outcomes mean the operator must act.
			for _, out := range outcomes {
				switch out.State {
				case retry.StateFatal, retry.StateError, retry.StateNotFound:
					return WrapExitError(ExitFailure,
						fmt.Sprintf("entry %s: %s", out.EntryID, out.State), nil)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "retry a single cache entry")
	cmd.Flags().BoolVar(&all, "all", false, "retry every pending entry")

	return cmd
}

// reportOutcomes prints per-entry results and a delivered/retryable/
// fatal summary.
func reportOutcomes(f *Formatter, outcomes []retry.Outcome) {
	counts := map[retry.State]int{}
	for _, out := range outcomes {
		counts[out.State]++
		switch out.State {
		case retry.StateDelivered:
			f.Textf("✅ %s delivered as #%s %s", out.EntryID, out.RemoteID, out.URL)
		case retry.StateRetryable:
			f.Textf("🔄 %s still pending (attempt %d): %s", out.EntryID, out.Attempts, out.Err)
		case retry.StateFatal:
			f.Textf("❌ %s needs manual intervention: %s", out.EntryID, out.Err)
		case retry.StateNotFound:
			f.Textf("❓ %s not found in cache", out.EntryID)
		case retry.StateError:
			f.Textf("💥 %s storage failure: %s", out.EntryID, out.Err)
		}
	}
	f.Textf("\n📊 %d delivered, %d pending, %d need intervention",
		counts[retry.StateDelivered], counts[retry.StateRetryable],
		counts[retry.StateFatal]+counts[retry.StateError])
}
