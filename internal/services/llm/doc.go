// Package llm wraps an OpenAI-compatible chat completions endpoint for
// artist enrichment.
//
// The client issues JSON-only completion requests, tolerates the usual
// formatting quirks (code fences, prose around the payload), and classifies
// failures into the services error taxonomy so the enrichment scheduler can
// decide between retrying, falling back, and aborting. It performs a single
// attempt per call; retry policy belongs to the caller.
package llm
