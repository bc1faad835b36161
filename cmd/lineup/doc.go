// Command lineup maintains festival lineup rosters: it pulls artist lists
// from festival sources, reconciles them into per-year CSV files without
// clobbering manual edits, and fills in artist details through enrichment
// services.
package main
