package scrape

import "lineup/internal/roster"

// RawArtist is one artist as returned by a lineup source, before
// reconciliation. Field values are raw strings keyed by declared roster
// columns.
type RawArtist struct {
	Name   string
	Fields map[roster.Field]string
	// Flags marks one-time fetches the source performed itself (for example
	// image downloads during scraping).
	Flags map[roster.Flag]bool
	// Cancelled carries the source's explicit withdrawal indicator and is
	// only meaningful when CancelledKnown is true. Absence of an artist from
	// a scrape is never a cancellation signal.
	Cancelled      bool
	CancelledKnown bool
}

// Field returns a raw field value, empty when the source did not supply it.
func (a RawArtist) Field(f roster.Field) string {
	if a.Fields == nil {
		return ""
	}
	return a.Fields[f]
}
