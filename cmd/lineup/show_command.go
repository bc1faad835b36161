package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"lineup/internal/roster"
	"lineup/internal/slug"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		artist    string
		cancelled bool
	)

	cmd := &cobra.Command{
		Use:   "show <festival> <year>",
		Short: "Display the roster for one festival year",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := newRunContext(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			defer run.close()

			store, err := run.loadRoster()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if artist != "" {
				key := slug.Normalize(artist)
				record, ok := store.Get(key)
				if !ok {
					return fmt.Errorf("artist %q not found in %s", artist, run.rosterPath())
				}
				printRecordDetail(cmd, record)
				return nil
			}

			records := append([]*roster.Record(nil), store.Records()...)
			sort.SliceStable(records, func(i, j int) bool {
				return strings.ToLower(slug.SortName(records[i].Name)) < strings.ToLower(slug.SortName(records[j].Name))
			})

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				if record.Cancelled && !cancelled {
					continue
				}
				rows = append(rows, []string{
					record.Name,
					record.Field(roster.FieldGenre),
					record.Field(roster.FieldCountry),
					record.Field(roster.FieldAIRating),
					record.Field(roster.FieldMyRating),
					yesNo(record.Cancelled),
				})
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Artist", "Genre", "Country", "AI Rating", "My rating", "Cancelled"},
				rows,
			))
			fmt.Fprintf(out, "%d artists in %s\n", len(rows), run.rosterPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Show every field for one artist")
	cmd.Flags().BoolVar(&cancelled, "cancelled", false, "Include cancelled artists")
	return cmd
}

func printRecordDetail(cmd *cobra.Command, record *roster.Record) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(roster.Fields())+2)
	rows = append(rows, []string{"Artist", record.Name})
	for _, field := range roster.Fields() {
		if value := record.Field(field); value != "" {
			rows = append(rows, []string{string(field), value})
		}
	}
	for _, flag := range roster.Flags() {
		rows = append(rows, []string{string(flag), yesNo(record.Flag(flag))})
	}
	rows = append(rows, []string{"Cancelled", yesNo(record.Cancelled)})

	fmt.Fprintln(out, renderTable(
		[]string{"Field", "Value"},
		rows,
	))
}
