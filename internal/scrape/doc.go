// Package scrape defines the lineup-fetching capability and its sources.
//
// A Source returns the complete raw artist list for one festival-year or an
// error; the reconciler is never handed a partial result. Sources consume
// structured lineup data (an HTTP JSON endpoint or a local export file) and
// map source field names onto the roster's declared columns, dropping
// anything the table does not know about.
package scrape
