package testsupport

import (
	"testing"

	"lineup/internal/config"
	"lineup/internal/enrichcache"
	"lineup/internal/roster"
)

// MustOpenCache opens an enrichcache.Store for tests and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *enrichcache.Store {
	t.Helper()

	store, err := enrichcache.Open(cfg)
	if err != nil {
		t.Fatalf("enrichcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRoster builds a roster store from artist names, failing the test on
// duplicate keys.
func NewRoster(t testing.TB, names ...string) *roster.Store {
	t.Helper()

	store := roster.NewStore()
	for _, name := range names {
		if err := store.Add(roster.NewRecord(name)); err != nil {
			t.Fatalf("add %q: %v", name, err)
		}
	}
	return store
}

// MustAdd inserts a record into the store, failing the test on error.
func MustAdd(t testing.TB, store *roster.Store, rec *roster.Record) {
	t.Helper()

	if err := store.Add(rec); err != nil {
		t.Fatalf("add %q: %v", rec.Name, err)
	}
}
