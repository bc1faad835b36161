package enrich

import (
	"context"

	"lineup/internal/reconcile"
	"lineup/internal/roster"
	"lineup/internal/services/llm"
	"lineup/internal/services/spotify"
)

// Fetcher produces enrichment fields for one artist. Implementations signal
// services.ErrNoData when nothing useful was found, services.ErrTransient
// for conditions worth one retry, and services.ErrFatal for conditions that
// should abort the whole run.
type Fetcher interface {
	// Name identifies the fetcher in logs and in the enrichment cache.
	Name() string
	// Source reports how the preservation policy should treat the fields.
	Source() reconcile.Source
	Fetch(ctx context.Context, record *roster.Record) (map[roster.Field]string, error)
}

// AIFetcher enriches artists through an LLM completion client.
type AIFetcher struct {
	Client      *llm.Client
	RatingBoost float64
}

func (f *AIFetcher) Name() string { return "llm" }

func (f *AIFetcher) Source() reconcile.Source { return reconcile.SourceAI }

func (f *AIFetcher) Fetch(ctx context.Context, record *roster.Record) (map[roster.Field]string, error) {
	return f.Client.EnrichArtist(ctx, llm.EnrichRequest{
		Name:        record.Name,
		ExistingBio: record.Field(roster.FieldBio),
		RatingBoost: f.RatingBoost,
	})
}

// SpotifyFetcher fills the Spotify column from artist search results.
type SpotifyFetcher struct {
	Client *spotify.Client
}

func (f *SpotifyFetcher) Name() string { return "spotify" }

func (f *SpotifyFetcher) Source() reconcile.Source { return reconcile.SourceScrape }

func (f *SpotifyFetcher) Fetch(ctx context.Context, record *roster.Record) (map[roster.Field]string, error) {
	url, err := f.Client.ArtistURL(ctx, record.Name)
	if err != nil {
		return nil, err
	}
	return map[roster.Field]string{roster.FieldSpotify: url}, nil
}
