package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeLLM()
	c.normalizeSpotify()
	c.normalizeEnrichment()
	c.normalizeFestivals()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if env := os.Getenv("LINEUP_LLM_API_KEY"); env != "" {
			c.LLM.APIKey = strings.TrimSpace(env)
		} else if env := os.Getenv("OPENROUTER_API_KEY"); env != "" {
			c.LLM.APIKey = strings.TrimSpace(env)
		}
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeSpotify() {
	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	if c.Spotify.ClientID == "" {
		c.Spotify.ClientID = strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_ID"))
	}
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
	if c.Spotify.ClientSecret == "" {
		c.Spotify.ClientSecret = strings.TrimSpace(os.Getenv("SPOTIFY_CLIENT_SECRET"))
	}
	if c.Spotify.TimeoutSeconds <= 0 {
		c.Spotify.TimeoutSeconds = defaultSpotifyTimeout
	}
}

func (c *Config) normalizeEnrichment() {
	if c.Enrichment.Workers <= 0 {
		c.Enrichment.Workers = defaultEnrichmentWorkers
	}
	if c.Enrichment.FetchTimeoutSeconds <= 0 {
		c.Enrichment.FetchTimeoutSeconds = defaultFetchTimeoutSeconds
	}
}

func (c *Config) normalizeFestivals() {
	for i := range c.Festivals {
		f := &c.Festivals[i]
		f.Slug = strings.ToLower(strings.TrimSpace(f.Slug))
		f.Name = strings.TrimSpace(f.Name)
		f.Source = strings.ToLower(strings.TrimSpace(f.Source))
		if f.Source == "" {
			f.Source = "json"
		}
		f.LineupURL = strings.TrimSpace(f.LineupURL)
		if strings.TrimSpace(f.NameKey) == "" {
			f.NameKey = defaultNameKey
		}
		if strings.TrimSpace(f.CancelledKey) == "" {
			f.CancelledKey = defaultCancelledKey
		}
	}
}
