package config

const (
	defaultDataDir             = "~/festivals"
	defaultLogDir              = "~/.local/share/lineup/logs"
	defaultCacheDir            = "~/.local/share/lineup/cache"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "openai/gpt-4o-mini"
	defaultLLMTimeoutSeconds   = 60
	defaultSpotifyTimeout      = 10
	defaultEnrichmentWorkers   = 4
	defaultFetchTimeoutSeconds = 90
	defaultNameKey             = "name"
	defaultCancelledKey        = "cancelled"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			CacheDir: defaultCacheDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Spotify: Spotify{
			TimeoutSeconds: defaultSpotifyTimeout,
		},
		Enrichment: Enrichment{
			Workers:             defaultEnrichmentWorkers,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			CacheEnabled:        true,
		},
	}
}
