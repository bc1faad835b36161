// Package roster models one festival-year's artist table and its CSV
// persistence.
//
// The column set is declared once as a versioned Field enum rather than
// inferred from CSV headers, so every field's protection status and merge
// behavior is statically known. Records are never deleted from a store;
// cancellation is a flag, and derived flags record one-time fetches (images
// downloaded, social links scraped) independently of field content.
//
// Save writes to a temporary file and renames it into place so a crashed run
// can never leave a half-written table behind, and Load of a just-saved store
// yields an identical record set, including values containing commas, quotes,
// newlines, and non-ASCII text.
package roster
