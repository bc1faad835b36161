package enrichcache_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lineup/internal/roster"
	"lineup/internal/testsupport"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	fields := map[roster.Field]string{
		roster.FieldGenre:   "indie rock",
		roster.FieldCountry: "Iceland",
	}
	if err := store.Put(ctx, "down-the-rabbit-hole", 2026, "sigur-ros", "llm", fields); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := store.Get(ctx, "down-the-rabbit-hole", 2026, "sigur-ros", "llm")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected cached entry")
	}
	if diff := cmp.Diff(fields, got); diff != "" {
		t.Fatalf("cached fields mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreGetMissesAcrossKeyDimensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	if err := store.Put(ctx, "pinkpop", 2026, "muse", "llm", map[roster.Field]string{roster.FieldGenre: "rock"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	cases := []struct {
		name     string
		festival string
		year     int
		key      string
		source   string
	}{
		{"other festival", "lowlands", 2026, "muse", "llm"},
		{"other year", "pinkpop", 2025, "muse", "llm"},
		{"other artist", "pinkpop", 2026, "editors", "llm"},
		{"other source", "pinkpop", 2026, "muse", "spotify"},
	}
	for _, tc := range cases {
		if _, found, err := store.Get(ctx, tc.festival, tc.year, tc.key, tc.source); err != nil {
			t.Fatalf("%s: Get: %v", tc.name, err)
		} else if found {
			t.Fatalf("%s: expected miss", tc.name)
		}
	}
}

func TestStorePutReplacesExistingEntry(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	if err := store.Put(ctx, "pinkpop", 2026, "muse", "llm", map[roster.Field]string{roster.FieldGenre: "rock"}); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := store.Put(ctx, "pinkpop", 2026, "muse", "llm", map[roster.Field]string{roster.FieldGenre: "alt rock"}); err != nil {
		t.Fatalf("second Put: %v", err)
	}

	got, found, err := store.Get(ctx, "pinkpop", 2026, "muse", "llm")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if got[roster.FieldGenre] != "alt rock" {
		t.Fatalf("expected replacement, got %q", got[roster.FieldGenre])
	}

	count, err := store.Count(ctx, "pinkpop", 2026)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after replace, got %d", count)
	}
}

func TestStoreDeleteAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)
	ctx := context.Background()

	for _, key := range []string{"muse", "editors", "khruangbin"} {
		if err := store.Put(ctx, "pinkpop", 2026, key, "llm", map[roster.Field]string{roster.FieldGenre: "x"}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	if err := store.Delete(ctx, "pinkpop", 2026, "muse", "llm"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, err := store.Get(ctx, "pinkpop", 2026, "muse", "llm"); err != nil || found {
		t.Fatalf("expected miss after delete, found=%v err=%v", found, err)
	}

	removed, err := store.Clear(ctx, "pinkpop", 2026)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 rows cleared, got %d", removed)
	}

	count, err := store.Count(ctx, "pinkpop", 2026)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cache, got %d entries", count)
	}
}

func TestStoreEmptyKeyRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCache(t, cfg)

	err := store.Put(context.Background(), "pinkpop", 2026, "", "llm", nil)
	if err == nil {
		t.Fatal("expected error for empty artist key")
	}
}
