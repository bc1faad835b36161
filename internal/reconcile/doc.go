// Package reconcile merges freshly scraped lineup data into an existing
// roster without ever losing human- or AI-authored content.
//
// The field preservation policy is a pure per-field function: manual edits
// always win, protected fields are immutable to automated sources once set,
// and populated fields never regress to blank. The reconciler applies the
// policy across a whole scrape, matching artists by identity key, appending
// genuinely new rows, and honouring only explicit cancellation signals.
// Absence from a scrape never cancels a row, so partial scrapes cannot
// corrupt history.
//
// Reconcile returns a new store value rather than mutating its input, which
// lets the persistence layer write the result atomically. Running the same
// scrape twice is a no-op on the second pass.
package reconcile
