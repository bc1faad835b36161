package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"lineup/internal/config"
	"lineup/internal/logging"
	"lineup/internal/roster"
)

// runContext carries everything a festival-year command needs: resolved
// config, festival definition, a run-scoped logger, and the exclusive lock
// on the festival's data directory.
type runContext struct {
	cfg    *config.Config
	fest   config.Festival
	year   int
	runID  string
	logger *slog.Logger
	lock   *flock.Flock
}

// newRunContext resolves a festival-year invocation and acquires the
// festival lock. Callers must release it with close.
func newRunContext(ctx *commandContext, festivalArg, yearArg string) (*runContext, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}

	fest, ok := cfg.Festival(festivalArg)
	if !ok {
		return nil, fmt.Errorf("festival %q is not configured; add a [[festival]] block to the config", festivalArg)
	}

	year, err := strconv.Atoi(yearArg)
	if err != nil || year < 2000 || year > 2100 {
		return nil, fmt.Errorf("invalid year %q", yearArg)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	runID := uuid.NewString()
	logger = logger.With(
		logging.String("run_id", runID),
		logging.String("festival", fest.Slug),
		logging.Int("year", year))

	festDir := cfg.FestivalDir(fest.Slug)
	if err := os.MkdirAll(festDir, 0o755); err != nil {
		return nil, fmt.Errorf("create festival directory: %w", err)
	}
	lock := flock.New(filepath.Join(festDir, ".lineup.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire festival lock: %w", err)
	}
	if !held {
		return nil, fmt.Errorf("another lineup run is already working on %s; try again shortly", fest.Slug)
	}

	return &runContext{
		cfg:    cfg,
		fest:   fest,
		year:   year,
		runID:  runID,
		logger: logger,
		lock:   lock,
	}, nil
}

func (r *runContext) close() {
	if r.lock != nil {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release festival lock", logging.Error(err))
		}
	}
}

func (r *runContext) rosterPath() string {
	return r.cfg.RosterPath(r.fest.Slug, r.year)
}

func (r *runContext) loadRoster() (*roster.Store, error) {
	store, err := roster.LoadOrEmpty(r.rosterPath())
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return store, nil
}

func (r *runContext) saveRoster(store *roster.Store) error {
	if err := roster.Save(r.rosterPath(), store); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}
