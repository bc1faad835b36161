package reconcile

import (
	"strings"

	"lineup/internal/roster"
)

// Source identifies who authored an incoming field value. The policy trusts
// sources unequally: manual edits outrank everything, automated sources may
// only fill gaps in protected fields.
type Source string

const (
	SourceScrape Source = "scrape"
	SourceAI     Source = "ai"
	SourceManual Source = "manual"
)

// Resolve decides which value a field keeps when an incoming value arrives.
// The rules, in order:
//
//  1. A manual source always wins; human intent is authoritative.
//  2. A protected field with a non-empty existing value is never overwritten
//     by scrape or AI input.
//  3. A populated field never regresses to blank.
//  4. Otherwise the incoming value wins (fills empty fields, updates
//     non-protected ones).
//
// Resolve is pure and knows nothing about whole records, so every
// field/source scenario is independently testable.
func Resolve(existing, incoming string, protected bool, source Source) string {
	switch {
	case source == SourceManual:
		return incoming
	case protected && strings.TrimSpace(existing) != "":
		return existing
	case strings.TrimSpace(existing) != "" && strings.TrimSpace(incoming) == "":
		return existing
	default:
		return incoming
	}
}

// ResolveField is Resolve with the protection flag looked up from the
// roster's declared field set.
func ResolveField(existing, incoming string, field roster.Field, source Source) string {
	return Resolve(existing, incoming, roster.Protected(field), source)
}
