package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"lineup/internal/config"
	"lineup/internal/logging"
	"lineup/internal/roster"
	"lineup/internal/slug"
)

// htmlSource scrapes artist names off a festival program page. The page
// carries no structured fields, so each artist arrives with its name and
// festival URL only; enrichment fills the rest.
type htmlSource struct {
	festival config.Festival
	client   *http.Client
	logger   *slog.Logger
}

func (s *htmlSource) FetchLineup(ctx context.Context) ([]RawArtist, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.festival.LineupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build program request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch program page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch program page: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read program page: %w", err)
	}

	baseURL := strings.TrimSuffix(s.festival.LineupURL, "/")
	slugs := extractArtistSlugs(string(body), baseURL)
	if len(slugs) == 0 {
		return nil, fmt.Errorf("parse program page: no artist links found")
	}

	artists := make([]RawArtist, 0, len(slugs))
	for _, pathSlug := range slugs {
		artists = append(artists, RawArtist{
			Name: slug.DisplayName(pathSlug),
			Fields: map[roster.Field]string{
				roster.FieldFestivalURL: baseURL + "/" + pathSlug,
			},
		})
	}

	s.logger.Info("scraped program page",
		logging.String("festival", s.festival.Slug),
		logging.Int("artist_count", len(artists)))
	return artists, nil
}

// extractArtistSlugs returns the unique artist path slugs on a program
// page, sorted for deterministic output. Artist pages live one path
// segment below the program page itself.
func extractArtistSlugs(html, programURL string) []string {
	segment := programURL
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	pattern := regexp.MustCompile(regexp.QuoteMeta(segment) + `/([a-z0-9-]+)`)
	matches := pattern.FindAllStringSubmatch(html, -1)
	seen := make(map[string]bool, len(matches))
	var slugs []string
	for _, match := range matches {
		if seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		slugs = append(slugs, match[1])
	}
	sort.Strings(slugs)
	return slugs
}
