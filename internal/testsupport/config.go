package testsupport

import (
	"path/filepath"
	"testing"

	"lineup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.LLM.APIKey = "test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLLMKey sets the LLM API key on the test config.
func WithLLMKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.APIKey = key
	}
}

// WithSpotifyCredentials sets the Spotify client credentials on the test config.
func WithSpotifyCredentials(id, secret string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Spotify.ClientID = id
		b.cfg.Spotify.ClientSecret = secret
	}
}

// WithFestival appends a festival block to the test config.
func WithFestival(fest config.Festival) ConfigOption {
	return func(b *configBuilder) {
		if fest.Source == "" {
			fest.Source = "json"
		}
		if fest.NameKey == "" {
			fest.NameKey = "name"
		}
		if fest.CancelledKey == "" {
			fest.CancelledKey = "cancelled"
		}
		b.cfg.Festivals = append(b.cfg.Festivals, fest)
	}
}

// WithWorkers overrides the enrichment worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Enrichment.Workers = n
	}
}
