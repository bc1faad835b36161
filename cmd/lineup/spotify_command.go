package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lineup/internal/enrich"
	"lineup/internal/enrichcache"
	"lineup/internal/logging"
	"lineup/internal/roster"
	"lineup/internal/services/spotify"
)

func newSpotifyCommand(ctx *commandContext) *cobra.Command {
	var (
		artist   string
		parallel bool
		force    bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "spotify <festival> <year>",
		Short: "Fill missing Spotify links from artist search",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := newRunContext(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			defer run.close()

			if run.cfg.Spotify.ClientID == "" || run.cfg.Spotify.ClientSecret == "" {
				return errors.New("spotify credentials are not configured; set spotify.client_id and spotify.client_secret or export SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
			}

			store, err := run.loadRoster()
			if err != nil {
				return err
			}

			client := spotify.NewClient(spotify.Config{
				ClientID:       run.cfg.Spotify.ClientID,
				ClientSecret:   run.cfg.Spotify.ClientSecret,
				TimeoutSeconds: run.cfg.Spotify.TimeoutSeconds,
			})
			fetcher := &enrich.SpotifyFetcher{Client: client}

			schedOpts := []enrich.SchedulerOption{enrich.WithLogger(run.logger)}
			if run.cfg.Enrichment.CacheEnabled {
				cache, err := enrichcache.Open(run.cfg)
				if err != nil {
					return err
				}
				defer cache.Close()
				schedOpts = append(schedOpts,
					enrich.WithCache(cache.Scoped(run.fest.Slug, run.year, fetcher.Name())))
			}

			sched := enrich.NewScheduler(fetcher, enrich.Options{
				Targets:  []roster.Field{roster.FieldSpotify},
				Artist:   artist,
				Force:    force,
				Parallel: parallel,
				Workers:  run.cfg.Enrichment.Workers,
				SkipFlag: roster.FlagLinksScraped,
				MarkFlag: roster.FlagLinksScraped,
			}, schedOpts...)

			updated, report, err := sched.Enrich(cmd.Context(), store)
			if err != nil {
				return err
			}
			run.logger.Info("spotify links fetched",
				logging.Int("candidates", report.Candidates),
				logging.Int("enriched", report.Enriched),
				logging.Int("failures", len(report.Failures)))

			out := cmd.OutOrStdout()
			printEnrichReport(out, report)

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

	cmd.Flags().StringVar(&artist, "artist", "", "Only fetch the named artist")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Fetch artists concurrently")
	cmd.Flags().BoolVar(&force, "force", false, "Re-fetch links for rows already marked as scraped")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing the roster")
	return cmd
}
