package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"lineup/internal/config"
	"lineup/internal/roster"
	"lineup/internal/scrape"
	"lineup/internal/testsupport"
)

func jsonFestival(url string) config.Festival {
	return config.Festival{
		Slug:         "testfest",
		Source:       "json",
		LineupURL:    url,
		NameKey:      "name",
		CancelledKey: "cancelled",
		FieldMap: map[string]string{
			"genre":   "Genre",
			"country": "Country",
			"stage":   "Stage",
		},
	}
}

func TestJSONSourceMapsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name": "Sigur Rós", "genre": "post-rock", "country": "Iceland", "ignored": "x"},
			{"name": "New Band", "stage": "The Cave"}
		]`))
	}))
	defer server.Close()

	source, err := scrape.NewSource(jsonFestival(server.URL))
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	artists, err := source.FetchLineup(context.Background())
	if err != nil {
		t.Fatalf("FetchLineup: %v", err)
	}

	want := []scrape.RawArtist{
		{
			Name: "Sigur Rós",
			Fields: map[roster.Field]string{
				roster.FieldGenre:   "post-rock",
				roster.FieldCountry: "Iceland",
			},
		},
		{
			Name: "New Band",
			Fields: map[roster.Field]string{
				roster.FieldStage: "The Cave",
			},
		},
	}
	if diff := cmp.Diff(want, artists); diff != "" {
		t.Fatalf("artists mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONSourceWrappedListAndCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"artists": [
			{"name": "Old Act", "cancelled": true},
			{"name": "Current Act", "cancelled": "no"},
			{"name": "Unknown Act"}
		]}`))
	}))
	defer server.Close()

	source, err := scrape.NewSource(jsonFestival(server.URL))
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	artists, err := source.FetchLineup(context.Background())
	if err != nil {
		t.Fatalf("FetchLineup: %v", err)
	}

	if len(artists) != 3 {
		t.Fatalf("got %d artists, want 3", len(artists))
	}
	if !artists[0].CancelledKnown || !artists[0].Cancelled {
		t.Fatalf("Old Act: want explicit cancellation, got %+v", artists[0])
	}
	if !artists[1].CancelledKnown || artists[1].Cancelled {
		t.Fatalf("Current Act: want explicit not-cancelled, got %+v", artists[1])
	}
	if artists[2].CancelledKnown {
		t.Fatal("Unknown Act: absence of the key must not be a signal")
	}
}

func TestJSONSourceErrorsAreAllOrNothing(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusBadGateway)
		}))
		defer server.Close()

		source, _ := scrape.NewSource(jsonFestival(server.URL))
		if artists, err := source.FetchLineup(context.Background()); err == nil || artists != nil {
			t.Fatalf("want error and nil list, got %v, %v", artists, err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"artists": "not a list"`))
		}))
		defer server.Close()

		source, _ := scrape.NewSource(jsonFestival(server.URL))
		if artists, err := source.FetchLineup(context.Background()); err == nil || artists != nil {
			t.Fatalf("want error and nil list, got %v, %v", artists, err)
		}
	})
}

func TestFileSourceReadsLocalExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineup.json")
	testsupport.WriteText(t, path, `[{"name": "Lumï", "genre": "electronic"}]`)

	fest := jsonFestival(path)
	fest.Source = "file"
	source, err := scrape.NewSource(fest)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	artists, err := source.FetchLineup(context.Background())
	if err != nil {
		t.Fatalf("FetchLineup: %v", err)
	}

	if len(artists) != 1 || artists[0].Name != "Lumï" {
		t.Fatalf("unexpected artists: %+v", artists)
	}
	if got := artists[0].Field(roster.FieldGenre); got != "electronic" {
		t.Fatalf("Genre = %q", got)
	}
}

func TestHTMLSourceScrapesProgramLinks(t *testing.T) {
	page := `<html><body>
		<a href="/programma/florence-the-machine">F</a>
		<a href="/programma/new-band">N</a>
		<a href="/programma/new-band">dup</a>
		<a href="/elsewhere/not-an-artist">x</a>
	</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	fest := config.Festival{
		Slug:      "down-the-rabbit-hole",
		Source:    "html",
		LineupURL: server.URL + "/programma",
	}
	source, err := scrape.NewSource(fest)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	artists, err := source.FetchLineup(context.Background())
	if err != nil {
		t.Fatalf("FetchLineup: %v", err)
	}

	if len(artists) != 2 {
		t.Fatalf("got %d artists, want 2: %+v", len(artists), artists)
	}
	if artists[0].Name != "Florence + The Machine" {
		t.Fatalf("artists[0].Name = %q", artists[0].Name)
	}
	if artists[1].Name != "New Band" {
		t.Fatalf("artists[1].Name = %q", artists[1].Name)
	}
	wantURL := fest.LineupURL + "/new-band"
	if got := artists[1].Field(roster.FieldFestivalURL); got != wantURL {
		t.Fatalf("Festival URL = %q, want %q", got, wantURL)
	}
	if artists[0].CancelledKnown {
		t.Fatal("program page scrape must never signal cancellation")
	}
}

func TestHTMLSourceEmptyPageFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer server.Close()

	fest := config.Festival{Slug: "testfest", Source: "html", LineupURL: server.URL + "/programma"}
	source, _ := scrape.NewSource(fest)
	if _, err := source.FetchLineup(context.Background()); err == nil {
		t.Fatal("want error for page with no artist links")
	}
}
