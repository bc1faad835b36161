// Package enrichcache persists enrichment responses in SQLite so that
// repeated runs against the same roster do not re-fetch artists whose
// data has already been retrieved. Entries are keyed by festival, year,
// artist identity key, and the source that produced them.
package enrichcache
