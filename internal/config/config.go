package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds one subdirectory per festival with a <year>.csv roster
	// and per-artist asset folders inside.
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	CacheDir string `toml:"cache_dir"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// LLM contains connection settings for the enrichment model.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Spotify contains client-credentials settings for profile lookups.
type Spotify struct {
	ClientID       string `toml:"client_id"`
	ClientSecret   string `toml:"client_secret"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Enrichment contains scheduler settings.
type Enrichment struct {
	// Workers bounds concurrent fetches when --parallel is set.
	Workers int `toml:"workers"`
	// FetchTimeoutSeconds bounds one artist's enrichment fetch.
	FetchTimeoutSeconds int `toml:"fetch_timeout_seconds"`
	// CacheEnabled persists enrichment responses so re-runs skip artists
	// already fetched.
	CacheEnabled bool `toml:"cache_enabled"`
}

// Festival describes one tracked festival and its lineup source.
type Festival struct {
	Slug string `toml:"slug"`
	Name string `toml:"name"`
	// Source selects the lineup source kind: "json" fetches LineupURL over
	// HTTP, "file" reads LineupURL as a local path, "html" scrapes artist
	// page links out of the festival's program page.
	Source    string `toml:"source"`
	LineupURL string `toml:"lineup_url"`
	// RatingBoost shifts AI ratings for discovery-focused festivals.
	RatingBoost float64 `toml:"rating_boost"`
	// NameKey and CancelledKey name the JSON keys carrying the artist name
	// and the explicit cancellation indicator.
	NameKey      string `toml:"name_key"`
	CancelledKey string `toml:"cancelled_key"`
	// FieldMap maps source JSON keys to roster column names.
	FieldMap map[string]string `toml:"field_map"`
}

// Config encapsulates all configuration values for lineup.
//
// Sections by subsystem:
//   - Paths: data, log, and cache directories
//   - Logging: log format and level
//   - LLM: enrichment model connection settings
//   - Spotify: Web API credentials for profile lookups
//   - Enrichment: scheduler workers, timeouts, cache toggle
//   - Festival: one block per tracked festival
type Config struct {
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	LLM        LLM        `toml:"llm"`
	Spotify    Spotify    `toml:"spotify"`
	Enrichment Enrichment `toml:"enrichment"`
	Festivals  []Festival `toml:"festival"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lineup/config.toml")
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a config file actually existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("lineup.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the data, log, and cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// Festival looks a festival definition up by slug.
func (c *Config) Festival(slug string) (Festival, bool) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	for _, f := range c.Festivals {
		if f.Slug == slug {
			return f, true
		}
	}
	return Festival{}, false
}

// RosterPath returns the CSV path for one festival-year.
func (c *Config) RosterPath(festivalSlug string, year int) string {
	return filepath.Join(c.Paths.DataDir, festivalSlug, strconv.Itoa(year)+".csv")
}

// FestivalDir returns the data directory for one festival.
func (c *Config) FestivalDir(festivalSlug string) string {
	return filepath.Join(c.Paths.DataDir, festivalSlug)
}

// CreateSample writes the embedded sample configuration to the given path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ prefixes and makes the path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
