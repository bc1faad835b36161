package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lineup/internal/roster"
)

func TestUpdateCommandAddsArtists(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLineup(t, env, `[
		{"name": "New Band", "genre": "Punk"},
		{"name": "Sôl", "country": "Iceland"}
	]`)

	out, _, err := runCLI(t, []string{"update", "testfest", "2026"}, env.configPath)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	requireContains(t, out, "+ New Band")
	requireContains(t, out, "Wrote")

	store, err := roster.Load(filepath.Join(env.dataDir, "testfest", "2026.csv"))
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("roster has %d rows, want 2", store.Len())
	}
	record, ok := store.Get("new-band")
	if !ok {
		t.Fatal("new-band missing from roster")
	}
	if got := record.Field(roster.FieldGenre); got != "Punk" {
		t.Fatalf("Genre = %q, want Punk", got)
	}
}

func TestUpdateCommandIsIdempotent(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLineup(t, env, `[{"name": "New Band", "genre": "Punk"}]`)

	if _, _, err := runCLI(t, []string{"update", "testfest", "2026"}, env.configPath); err != nil {
		t.Fatalf("first update: %v", err)
	}
	rosterPath := filepath.Join(env.dataDir, "testfest", "2026.csv")
	first, err := os.ReadFile(rosterPath)
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}

	out, _, err := runCLI(t, []string{"update", "testfest", "2026"}, env.configPath)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if strings.Contains(out, "+ New Band") {
		t.Fatal("second run re-added an existing artist")
	}
	second, err := os.ReadFile(rosterPath)
	if err != nil {
		t.Fatalf("re-read roster: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("second run changed the roster file")
	}
}

func TestUpdateCommandDryRunWritesNothing(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLineup(t, env, `[{"name": "New Band"}]`)

	out, _, err := runCLI(t, []string{"update", "testfest", "2026", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("update --dry-run: %v", err)
	}
	requireContains(t, out, "Dry run")

	rosterPath := filepath.Join(env.dataDir, "testfest", "2026.csv")
	if _, err := os.Stat(rosterPath); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote %s", rosterPath)
	}
}

func TestUpdateCommandUnknownFestival(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"update", "nosuchfest", "2026"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("err = %v, want unknown festival error", err)
	}
}

func TestUpdateCommandScrapeFailureAborts(t *testing.T) {
	env := setupCLITestEnv(t)
	writeLineup(t, env, `not json`)

	_, _, err := runCLI(t, []string{"update", "testfest", "2026"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "scrape failed") {
		t.Fatalf("err = %v, want scrape failure", err)
	}
	rosterPath := filepath.Join(env.dataDir, "testfest", "2026.csv")
	if _, statErr := os.Stat(rosterPath); !os.IsNotExist(statErr) {
		t.Fatal("failed scrape still wrote the roster")
	}
}
