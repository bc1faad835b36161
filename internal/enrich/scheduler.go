package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lineup/internal/logging"
	"lineup/internal/reconcile"
	"lineup/internal/roster"
	"lineup/internal/services"
	"lineup/internal/slug"
)

// fallbackNotice prefixes biographies copied from festival marketing text
// when no public data could be found for an artist.
const fallbackNotice = "[using festival bio due to a lack of publicly available data] "

// Cache stores fetched fields keyed by artist identity key so repeat runs
// skip artists that already have a result.
type Cache interface {
	Get(ctx context.Context, artistKey string) (map[roster.Field]string, bool, error)
	Put(ctx context.Context, artistKey string, fields map[roster.Field]string) error
}

// FactExtractor pulls structured fields out of festival bio prose. Used to
// recover genre and country hints when the main fetch found no public data.
type FactExtractor interface {
	ExtractBioFacts(ctx context.Context, artistName, festivalBio string) (map[roster.Field]string, error)
}

// Options configures one scheduler run.
type Options struct {
	// Targets lists the columns this run tries to fill. A row qualifies
	// when at least one target is empty.
	Targets []roster.Field
	// Artist restricts the run to a single artist, matched by identity key.
	Artist string
	// Force re-fetches rows even when every target is already populated.
	Force bool
	// Parallel dispatches fetches across Workers goroutines.
	Parallel bool
	Workers  int
	// FetchTimeout bounds one artist's fetch. Zero means no per-fetch bound.
	FetchTimeout time.Duration
	// SkipFlag, when set, excludes rows that already carry the flag.
	SkipFlag roster.Flag
	// MarkFlag, when set, is raised on rows whose fetch succeeded.
	MarkFlag roster.Flag
}

// Failure records one artist whose fetch could not be completed.
type Failure struct {
	Name string
	Key  string
	Err  error
}

// Report summarizes one scheduler run.
type Report struct {
	Candidates int
	Enriched   int
	Unchanged  int
	Cached     int
	Fallbacks  int
	NoData     int
	Failures   []Failure
}

// Scheduler drives enrichment fetches over a roster.
type Scheduler struct {
	fetcher Fetcher
	opts    Options
	cache   Cache
	facts   FactExtractor
	logger  *slog.Logger
}

// SchedulerOption customizes optional collaborators.
type SchedulerOption func(*Scheduler)

// WithCache attaches a result cache to the scheduler.
func WithCache(cache Cache) SchedulerOption {
	return func(s *Scheduler) { s.cache = cache }
}

// WithFactExtractor attaches a bio fact extractor used on fallback bios.
func WithFactExtractor(facts FactExtractor) SchedulerOption {
	return func(s *Scheduler) { s.facts = facts }
}

// WithLogger attaches a logger to the scheduler.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = logger }
}

// NewScheduler builds a scheduler around one fetcher.
func NewScheduler(fetcher Fetcher, opts Options, schedOpts ...SchedulerOption) *Scheduler {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	s := &Scheduler{fetcher: fetcher, opts: opts}
	for _, opt := range schedOpts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "enrich")
	return s
}

type fetchOutcome struct {
	fields    map[roster.Field]string
	fromCache bool
	noData    bool
	err       error
}

// Enrich fetches fields for every candidate row and merges them through the
// preservation policy. The input store is never mutated; the updated store
// is returned alongside a run report. Per-row failures land in the report,
// fatal fetch errors abort the run.
func (s *Scheduler) Enrich(ctx context.Context, store *roster.Store) (*roster.Store, *Report, error) {
	updated := store.Clone()
	report := &Report{}

	candidates := s.selectCandidates(updated)
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		return updated, report, nil
	}

	outcomes := make([]fetchOutcome, len(candidates))

	workers := 1
	if s.opts.Parallel {
		workers = s.opts.Workers
	}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, record := range candidates {
		// Workers operate on private clones; the shared store is only
		// touched during the sequential merge below.
		i := i
		snapshot := record.Clone()
		group.Go(func() error {
			outcome := s.fetchOne(groupCtx, snapshot)
			outcomes[i] = outcome
			if outcome.err != nil && errors.Is(outcome.err, services.ErrFatal) {
				return outcome.err
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, fmt.Errorf("enrichment aborted: %w", err)
	}

	for i, record := range candidates {
		s.merge(ctx, record, outcomes[i], report)
	}

	return updated, report, nil
}

// selectCandidates returns the rows this run should fetch, in store order.
func (s *Scheduler) selectCandidates(store *roster.Store) []*roster.Record {
	var filterKey string
	if s.opts.Artist != "" {
		filterKey = slug.Normalize(s.opts.Artist)
	}

	var candidates []*roster.Record
	for _, record := range store.Records() {
		if record.Cancelled {
			continue
		}
		if filterKey != "" && record.Key != filterKey {
			continue
		}
		if !s.opts.Force {
			if s.opts.SkipFlag != "" && record.Flag(s.opts.SkipFlag) {
				continue
			}
			if !s.hasEmptyTarget(record) {
				continue
			}
		}
		candidates = append(candidates, record)
	}
	return candidates
}

func (s *Scheduler) hasEmptyTarget(record *roster.Record) bool {
	for _, field := range s.opts.Targets {
		if record.Field(field) == "" {
			return true
		}
	}
	return false
}

// fetchOne resolves one artist's fields, consulting the cache first and
// retrying once on transient errors.
func (s *Scheduler) fetchOne(ctx context.Context, record *roster.Record) fetchOutcome {
	if s.cache != nil && !s.opts.Force {
		fields, found, err := s.cache.Get(ctx, record.Key)
		if err != nil {
			s.logger.Warn("cache lookup failed",
				logging.String("artist", record.Name),
				logging.Error(err))
		} else if found {
			return fetchOutcome{fields: fields, fromCache: true}
		}
	}

	fields, err := s.fetchWithTimeout(ctx, record)
	if err != nil && services.Retryable(err) {
		s.logger.Info("retrying after transient failure",
			logging.String("artist", record.Name),
			logging.Error(err))
		fields, err = s.fetchWithTimeout(ctx, record)
	}
	if err != nil {
		if errors.Is(err, services.ErrNoData) {
			return fetchOutcome{noData: true}
		}
		return fetchOutcome{err: err}
	}

	if s.cache != nil {
		if cacheErr := s.cache.Put(ctx, record.Key, fields); cacheErr != nil {
			s.logger.Warn("cache store failed",
				logging.String("artist", record.Name),
				logging.Error(cacheErr))
		}
	}
	return fetchOutcome{fields: fields}
}

func (s *Scheduler) fetchWithTimeout(ctx context.Context, record *roster.Record) (map[roster.Field]string, error) {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}
	return s.fetcher.Fetch(ctx, record)
}

// merge applies one fetch outcome to its row through the preservation policy.
func (s *Scheduler) merge(ctx context.Context, record *roster.Record, outcome fetchOutcome, report *Report) {
	if outcome.err != nil {
		s.logger.Warn("enrichment failed",
			logging.String("artist", record.Name),
			logging.Error(outcome.err))
		report.Failures = append(report.Failures, Failure{Name: record.Name, Key: record.Key, Err: outcome.err})
		return
	}
	if outcome.fromCache {
		report.Cached++
	}
	if outcome.noData {
		report.NoData++
	}

	source := s.fetcher.Source()
	changed := false
	for field, incoming := range outcome.fields {
		existing := record.Field(field)
		resolved := reconcile.ResolveField(existing, incoming, field, source)
		if resolved != existing {
			record.SetField(field, resolved)
			changed = true
		}
	}

	if s.applyBioFallback(ctx, record) {
		report.Fallbacks++
		changed = true
	}

	if s.opts.MarkFlag != "" && !outcome.noData {
		if !record.Flag(s.opts.MarkFlag) {
			record.SetFlag(s.opts.MarkFlag, true)
			changed = true
		}
	}

	if changed {
		report.Enriched++
	} else {
		report.Unchanged++
	}
}

// applyBioFallback copies festival marketing text into an empty Bio column
// when the fetch produced nothing for it, then mines that text for
// structured fields. Reports whether the record changed.
func (s *Scheduler) applyBioFallback(ctx context.Context, record *roster.Record) bool {
	if !s.targetsField(roster.FieldBio) {
		return false
	}
	if record.Field(roster.FieldBio) != "" {
		return false
	}

	festivalBio := record.Field(roster.FieldFestivalBioEN)
	if festivalBio == "" {
		festivalBio = record.Field(roster.FieldFestivalBioNL)
	}
	if festivalBio == "" {
		return false
	}

	record.SetField(roster.FieldBio, fallbackNotice+festivalBio)
	s.logger.Info("using festival bio fallback", logging.String("artist", record.Name))

	if s.facts != nil {
		facts, err := s.facts.ExtractBioFacts(ctx, record.Name, festivalBio)
		if err != nil {
			s.logger.Warn("bio fact extraction failed",
				logging.String("artist", record.Name),
				logging.Error(err))
		}
		for field, incoming := range facts {
			existing := record.Field(field)
			resolved := reconcile.ResolveField(existing, incoming, field, reconcile.SourceAI)
			if resolved != existing {
				record.SetField(field, resolved)
			}
		}
	}
	return true
}

func (s *Scheduler) targetsField(field roster.Field) bool {
	for _, target := range s.opts.Targets {
		if target == field {
			return true
		}
	}
	return false
}
