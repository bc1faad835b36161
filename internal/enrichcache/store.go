package enrichcache

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lineup/internal/config"
	"lineup/internal/roster"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the cache database after a mismatch.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages enrichment result persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the enrichment cache database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "enrichment.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the cache database on disk.
func (s *Store) Path() string {
	return s.path
}

// Put stores the fields fetched for one artist, replacing any prior entry
// for the same festival, year, key, and source.
func (s *Store) Put(ctx context.Context, festival string, year int, artistKey, source string, fields map[roster.Field]string) error {
	if artistKey == "" {
		return errors.New("artist key cannot be empty")
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO enrichment_results (festival, year, artist_key, source, fields_json, fetched_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (festival, year, artist_key, source)
         DO UPDATE SET fields_json = excluded.fields_json, fetched_at = excluded.fetched_at`,
		festival, year, artistKey, source, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert enrichment result: %w", err)
	}
	return nil
}

// Get returns the cached fields for one artist, if present.
func (s *Store) Get(ctx context.Context, festival string, year int, artistKey, source string) (map[roster.Field]string, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields_json FROM enrichment_results
         WHERE festival = ? AND year = ? AND artist_key = ? AND source = ?`,
		festival, year, artistKey, source,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query enrichment result: %w", err)
	}

	fields := make(map[roster.Field]string)
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, false, fmt.Errorf("parse cached fields: %w", err)
	}
	return fields, true, nil
}

// Delete removes the cached entry for one artist and source.
func (s *Store) Delete(ctx context.Context, festival string, year int, artistKey, source string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM enrichment_results
         WHERE festival = ? AND year = ? AND artist_key = ? AND source = ?`,
		festival, year, artistKey, source,
	)
	if err != nil {
		return fmt.Errorf("delete enrichment result: %w", err)
	}
	return nil
}

// Clear removes every cached entry for a festival year.
func (s *Store) Clear(ctx context.Context, festival string, year int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM enrichment_results WHERE festival = ? AND year = ?`,
		festival, year,
	)
	if err != nil {
		return 0, fmt.Errorf("clear enrichment results: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Count returns the number of cached entries for a festival year.
func (s *Store) Count(ctx context.Context, festival string, year int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM enrichment_results WHERE festival = ? AND year = ?`,
		festival, year,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count enrichment results: %w", err)
	}
	return count, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}

	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
