package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lineup/internal/config"
	"lineup/internal/logging"
)

const defaultHTTPTimeout = 30 * time.Second

// Source fetches the complete raw artist list for one festival-year.
// A failed fetch returns an error and no partial list.
type Source interface {
	FetchLineup(ctx context.Context) ([]RawArtist, error)
}

// Option customizes a source.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient overrides the HTTP client used by network-backed sources.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger attaches a logger to the source.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewSource builds the lineup source configured for a festival.
func NewSource(fest config.Festival, opts ...Option) (Source, error) {
	o := options{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.NewComponentLogger(o.logger, "scrape")

	switch fest.Source {
	case "json":
		return &jsonSource{festival: fest, client: o.httpClient, logger: logger}, nil
	case "file":
		return &fileSource{festival: fest, logger: logger}, nil
	case "html":
		return &htmlSource{festival: fest, client: o.httpClient, logger: logger}, nil
	default:
		return nil, fmt.Errorf("festival %q: unsupported source kind %q", fest.Slug, fest.Source)
	}
}
