package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lineup/internal/enrich"
	"lineup/internal/enrichcache"
	"lineup/internal/logging"
	"lineup/internal/roster"
	"lineup/internal/services/llm"
)

// aiTargets are the columns the LLM prompt is asked to fill.
var aiTargets = []roster.Field{
	roster.FieldGenre,
	roster.FieldCountry,
	roster.FieldBio,
	roster.FieldAISummary,
	roster.FieldAIRating,
	roster.FieldSpotify,
	roster.FieldActSize,
	roster.FieldFrontGender,
	roster.FieldFrontPoC,
}

// manualTargets are the columns worth a human's time at the prompt.
var manualTargets = []roster.Field{
	roster.FieldGenre,
	roster.FieldCountry,
	roster.FieldBio,
	roster.FieldMyTake,
	roster.FieldMyRating,
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var (
		useAI     bool
		useManual bool
		parallel  bool
		artist    string
		force     bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "enrich <festival> <year>",
		Short: "Fill empty artist fields via AI completion or manual entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if useAI && useManual {
				return errors.New("--ai and --manual are mutually exclusive")
			}
			if useManual && parallel {
				return errors.New("--manual prompts interactively and cannot run with --parallel")
			}

			run, err := newRunContext(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			defer run.close()

			store, err := run.loadRoster()
			if err != nil {
				return err
			}

			var (
				fetcher   enrich.Fetcher
				targets   []roster.Field
				schedOpts []enrich.SchedulerOption
			)
			schedOpts = append(schedOpts, enrich.WithLogger(run.logger))

			if useManual {
				if f, ok := cmd.InOrStdin().(*os.File); ok &&
					!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
					return errors.New("--manual prompts for input and needs an interactive terminal")
				}
				targets = manualTargets
				fetcher = &enrich.ManualFetcher{
					In:      cmd.InOrStdin(),
					Out:     cmd.OutOrStdout(),
					Targets: targets,
				}
			} else {
				if run.cfg.LLM.APIKey == "" {
					return errors.New("llm.api_key is not configured; set it in the config or export LINEUP_LLM_API_KEY")
				}
				targets = aiTargets
				client := llm.NewClient(llm.Config{
					APIKey:         run.cfg.LLM.APIKey,
					BaseURL:        run.cfg.LLM.BaseURL,
					Model:          run.cfg.LLM.Model,
					Referer:        run.cfg.LLM.Referer,
					Title:          run.cfg.LLM.Title,
					TimeoutSeconds: run.cfg.LLM.TimeoutSeconds,
				})
				fetcher = &enrich.AIFetcher{Client: client, RatingBoost: run.fest.RatingBoost}
				schedOpts = append(schedOpts, enrich.WithFactExtractor(client))

				if run.cfg.Enrichment.CacheEnabled {
					cache, err := enrichcache.Open(run.cfg)
					if err != nil {
						return err
					}
					defer cache.Close()
					schedOpts = append(schedOpts,
						enrich.WithCache(cache.Scoped(run.fest.Slug, run.year, fetcher.Name())))
				}
			}

			sched := enrich.NewScheduler(fetcher, enrich.Options{
				Targets:      targets,
				Artist:       artist,
				Force:        force,
				Parallel:     parallel,
				Workers:      run.cfg.Enrichment.Workers,
				FetchTimeout: time.Duration(run.cfg.Enrichment.FetchTimeoutSeconds) * time.Second,
			}, schedOpts...)

			updated, report, err := sched.Enrich(cmd.Context(), store)
			if err != nil {
				return err
			}
			run.logger.Info("enrichment finished",
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

	cmd.Flags().BoolVar(&useAI, "ai", false, "Enrich with the configured LLM (default mode)")
	cmd.Flags().BoolVar(&useManual, "manual", false, "Prompt for each field interactively")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Fetch artists concurrently")
	cmd.Flags().StringVar(&artist, "artist", "", "Only enrich the named artist")
	cmd.Flags().BoolVar(&force, "force", false, "Re-fetch even when target fields are already filled")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing the roster")
	return cmd
}

func printEnrichReport(out io.Writer, report *enrich.Report) {
	fmt.Fprintln(out, renderTable(
		[]string{"Candidates", "Enriched", "Unchanged", "Cached", "Fallback bios", "No data", "Failed"},
		[][]string{{
			strconv.Itoa(report.Candidates),
			strconv.Itoa(report.Enriched),
			strconv.Itoa(report.Unchanged),
			strconv.Itoa(report.Cached),
			strconv.Itoa(report.Fallbacks),
			strconv.Itoa(report.NoData),
			strconv.Itoa(len(report.Failures)),
		}},
	))

	for _, failure := range report.Failures {
		fmt.Fprintf(out, "  ! %s: %v\n", failure.Name, failure.Err)
	}
}
