// Package enrich schedules per-artist enrichment fetches and merges the
// results back into a roster through the field preservation policy.
//
// The scheduler is agnostic to how a fetcher produces its fields. Each
// candidate row is fetched independently, optionally in parallel across a
// bounded worker pool, and every merge happens sequentially on a single
// goroutine so workers never touch the shared store. Per-row failures are
// collected and reported; they never abort the run.
package enrich
