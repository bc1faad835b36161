package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"lineup/internal/config"
	"lineup/internal/logging"
	"lineup/internal/roster"
)

// jsonSource fetches a structured lineup export over HTTP.
type jsonSource struct {
	festival config.Festival
	client   *http.Client
	logger   *slog.Logger
}

func (s *jsonSource) FetchLineup(ctx context.Context) ([]RawArtist, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.festival.LineupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build lineup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch lineup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch lineup: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read lineup response: %w", err)
	}

	artists, err := parseLineupJSON(body, s.festival)
	if err != nil {
		return nil, err
	}
	s.logger.Info("fetched lineup",
		logging.String("festival", s.festival.Slug),
		logging.Int("artist_count", len(artists)))
	return artists, nil
}

// fileSource reads a structured lineup export from a local path, for
// festivals that publish downloadable program data.
type fileSource struct {
	festival config.Festival
	logger   *slog.Logger
}

func (s *fileSource) FetchLineup(_ context.Context) ([]RawArtist, error) {
	body, err := os.ReadFile(s.festival.LineupURL)
	if err != nil {
		return nil, fmt.Errorf("read lineup file: %w", err)
	}

	artists, err := parseLineupJSON(body, s.festival)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded lineup file",
		logging.String("festival", s.festival.Slug),
		logging.Int("artist_count", len(artists)))
	return artists, nil
}

// parseLineupJSON decodes a lineup document into raw artists. The document
// is either a top-level array of artist objects or an object wrapping one
// under a conventional key.
func parseLineupJSON(body []byte, fest config.Festival) ([]RawArtist, error) {
	entries, err := decodeEntries(body)
	if err != nil {
		return nil, err
	}

	artists := make([]RawArtist, 0, len(entries))
	for _, entry := range entries {
		artists = append(artists, mapEntry(entry, fest))
	}
	return artists, nil
}

var wrapperKeys = []string{"artists", "acts", "lineup", "program", "programma"}

func decodeEntries(body []byte) ([]map[string]any, error) {
	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("parse lineup: %w", err)
	}
	for _, key := range wrapperKeys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parse lineup %q list: %w", key, err)
		}
		return entries, nil
	}
	return nil, fmt.Errorf("parse lineup: no artist list found")
}

// mapEntry translates one source object onto declared roster columns using
// the festival's field map. Unknown source keys are ignored.
func mapEntry(entry map[string]any, fest config.Festival) RawArtist {
	artist := RawArtist{
		Name:   strings.TrimSpace(asString(entry[fest.NameKey])),
		Fields: make(map[roster.Field]string),
	}

	if raw, ok := entry[fest.CancelledKey]; ok {
		artist.CancelledKnown = true
		artist.Cancelled = truthy(raw)
	}

	for sourceKey, column := range fest.FieldMap {
		raw, ok := entry[sourceKey]
		if !ok {
			continue
		}
		value := strings.TrimSpace(asString(raw))
		if value == "" {
			continue
		}
		artist.Fields[roster.Field(column)] = value
	}
	return artist
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "true", "1", "cancelled":
			return true
		}
		return false
	case float64:
		return v != 0
	default:
		return false
	}
}
