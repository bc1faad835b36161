package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lineup/internal/roster"
	"lineup/internal/services"
	"lineup/internal/services/llm"
)

func completionBody(t *testing.T, content string) []byte {
	t.Helper()
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal completion: %v", err)
	}
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return llm.NewClient(llm.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
}

func TestEnrichArtistParsesFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		content := `{"Genre":"Post-punk","Country":"UK","Bio":"Loud.","AI Summary":"Angular riffs.","AI Rating":7,"Spotify":"https://open.spotify.com/artist/x","Ignored Column":"dropped"}`
		_, _ = w.Write(completionBody(t, content))
	})

	fields, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Shame"})
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if fields[roster.FieldGenre] != "Post-punk" {
		t.Fatalf("Genre = %q", fields[roster.FieldGenre])
	}
	if fields[roster.FieldAIRating] != "7" {
		t.Fatalf("AI Rating = %q", fields[roster.FieldAIRating])
	}
	if _, ok := fields[roster.Field("Ignored Column")]; ok {
		t.Fatal("undeclared column must be dropped")
	}
}

func TestEnrichArtistStripsCodeFences(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"Genre\":\"Techno\"}\n```"
		_, _ = w.Write(completionBody(t, content))
	})

	fields, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "KI/KI"})
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if fields[roster.FieldGenre] != "Techno" {
		t.Fatalf("Genre = %q", fields[roster.FieldGenre])
	}
}

func TestEnrichArtistRatingBoostClamped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, `{"AI Rating":"9"}`))
	})

	fields, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Legend", RatingBoost: 2})
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if fields[roster.FieldAIRating] != "10" {
		t.Fatalf("boosted rating = %q, want 10", fields[roster.FieldAIRating])
	}
}

func TestEnrichArtistZeroRatingCleared(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, `{"Genre":"Folk","AI Rating":"0"}`))
	})

	fields, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Quiet One"})
	if err != nil {
		t.Fatalf("EnrichArtist: %v", err)
	}
	if fields[roster.FieldAIRating] != "" {
		t.Fatalf("zero rating should clear, got %q", fields[roster.FieldAIRating])
	}
}

func TestEnrichArtistNoDataWhenAllFieldsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, `{"Genre":"","Country":""}`))
	})

	_, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Ghost"})
	if !errors.Is(err, services.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestEnrichArtistRateLimitIsTransient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Busy"})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}

func TestEnrichArtistBadCredentialsAreFatal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Anyone"})
	if !errors.Is(err, services.ErrFatal) {
		t.Fatalf("expected ErrFatal, got %v", err)
	}
}

func TestEnrichArtistMissingKeyIsFatal(t *testing.T) {
	client := llm.NewClient(llm.Config{})
	_, err := client.EnrichArtist(context.Background(), llm.EnrichRequest{Name: "Anyone"})
	if !errors.Is(err, services.ErrFatal) {
		t.Fatalf("expected ErrFatal, got %v", err)
	}
}

func TestExtractBioFactsEmptyBioShortCircuits(t *testing.T) {
	client := llm.NewClient(llm.Config{APIKey: "k"})
	fields, err := client.ExtractBioFacts(context.Background(), "Anyone", "  ")
	if err != nil {
		t.Fatalf("ExtractBioFacts: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("expected empty map, got %v", fields)
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(t, `{"ok":true}`))
	})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
