// Package config loads, normalizes, and validates lineup configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for
// secrets (LINEUP_LLM_API_KEY, SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET).
// Festival definitions live here too: each tracked festival is a [[festival]]
// block naming its lineup source, so nothing in the codebase hard-codes a
// festival.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
