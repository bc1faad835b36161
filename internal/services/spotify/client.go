package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lineup/internal/services"
)

const (
	defaultTokenURL  = "https://accounts.spotify.com/api/token"
	defaultSearchURL = "https://api.spotify.com/v1/search"
	defaultTimeout   = 10 * time.Second
	// tokenSlack refreshes the token a minute before Spotify expires it.
	tokenSlack = time.Minute
)

// Config carries the client-credentials pair.
type Config struct {
	ClientID       string
	ClientSecret   string
	TimeoutSeconds int
}

// Client searches the Spotify Web API for artist profiles.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokenURL   string
	searchURL  string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	now         func() time.Time
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoints overrides the token and search URLs, for tests.
func WithEndpoints(tokenURL, searchURL string) Option {
	return func(c *Client) {
		if tokenURL != "" {
			c.tokenURL = tokenURL
		}
		if searchURL != "" {
			c.searchURL = searchURL
		}
	}
}

// NewClient constructs a Spotify client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		tokenURL:   defaultTokenURL,
		searchURL:  defaultSearchURL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ArtistURL searches for an artist and returns the open.spotify.com profile
// URL of the best match. A search with no hits maps to services.ErrNoData.
func (c *Client) ArtistURL(ctx context.Context, artistName string) (string, error) {
	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return "", services.Wrap(services.ErrConfiguration, "spotify", "search", "artist name required", nil)
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("q", "artist:"+artistName)
	query.Set("type", "artist")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", services.Wrap(services.ErrFatal, "spotify", "search", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "search", "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "search", "read response", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", services.Wrap(services.ErrFatal, "spotify", "search", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrTransient, "spotify", "search", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var parsed struct {
		Artists struct {
			Items []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
		} `json:"artists"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "search", "decode response", err)
	}
	if len(parsed.Artists.Items) == 0 || parsed.Artists.Items[0].ID == "" {
		return "", services.Wrap(services.ErrNoData, "spotify", "search", fmt.Sprintf("no match for %q", artistName), nil)
	}
	return "https://open.spotify.com/artist/" + parsed.Artists.Items[0].ID, nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	if strings.TrimSpace(c.cfg.ClientID) == "" || strings.TrimSpace(c.cfg.ClientSecret) == "" {
		return "", services.Wrap(services.ErrFatal, "spotify", "token", "client credentials required", nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.now().Before(c.tokenExpiry.Add(-tokenSlack)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", services.Wrap(services.ErrFatal, "spotify", "token", "build request", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.cfg.ClientID + ":" + c.cfg.ClientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "token", "http request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "token", "read response", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", services.Wrap(services.ErrFatal, "spotify", "token", "invalid credentials", nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrTransient, "spotify", "token", fmt.Sprintf("http %d", resp.StatusCode), nil)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrTransient, "spotify", "token", "decode response", err)
	}
	if parsed.AccessToken == "" {
		return "", services.Wrap(services.ErrTransient, "spotify", "token", "empty access token", nil)
	}

	c.token = parsed.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	return c.token, nil
}
