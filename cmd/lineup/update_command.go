package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"lineup/internal/logging"
	"lineup/internal/reconcile"
	"lineup/internal/scrape"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "update <festival> <year>",
		Short: "Fetch the current lineup and reconcile it into the roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := newRunContext(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			defer run.close()

			source, err := scrape.NewSource(run.fest, scrape.WithLogger(run.logger))
			if err != nil {
				return err
			}

			store, err := run.loadRoster()
			if err != nil {
				return err
			}

			scraped, err := source.FetchLineup(cmd.Context())
			if err != nil {
				return fmt.Errorf("scrape failed: %w", err)
			}

			updated, report := reconcile.Reconcile(store, scraped)
			run.logger.Info("reconciled lineup",
				logging.Int("added", report.Added),
				logging.Int("updated", report.Updated),
				logging.Int("newly_cancelled", report.NewlyCancelled))

			out := cmd.OutOrStdout()
			printReconcileReport(out, report)

			if dryRun {
				fmt.Fprintf(out, "Dry run: %s not written (%d rows)\n", run.rosterPath(), updated.Len())
				return nil
			}
			if err := run.saveRoster(updated); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s (%d rows)\n", run.rosterPath(), updated.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing the roster")
	return cmd
}

func printReconcileReport(out io.Writer, report *reconcile.Report) {
	fmt.Fprintln(out, renderTable(
		[]string{"Added", "Updated", "Unchanged", "Newly cancelled"},
		[][]string{{
			strconv.Itoa(report.Added),
			strconv.Itoa(report.Updated),
			strconv.Itoa(report.Unchanged),
			strconv.Itoa(report.NewlyCancelled),
		}},
	))

	for _, name := range report.AddedNames {
		fmt.Fprintf(out, "  + %s\n", name)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "  ! %s\n", warning)
	}
}
