package enrichcache

import (
	"context"

	"lineup/internal/roster"
)

// Scoped binds a store to one festival, year, and fetch source so callers
// can address entries by artist key alone.
type Scoped struct {
	store    *Store
	festival string
	year     int
	source   string
}

// Scoped returns a view of the store fixed to one festival year and source.
func (s *Store) Scoped(festival string, year int, source string) *Scoped {
	return &Scoped{store: s, festival: festival, year: year, source: source}
}

// Get returns the cached fields for one artist key, if present.
func (s *Scoped) Get(ctx context.Context, artistKey string) (map[roster.Field]string, bool, error) {
	return s.store.Get(ctx, s.festival, s.year, artistKey, s.source)
}

// Put stores fields for one artist key.
func (s *Scoped) Put(ctx context.Context, artistKey string, fields map[roster.Field]string) error {
	return s.store.Put(ctx, s.festival, s.year, artistKey, s.source, fields)
}
