// Package logging assembles the structured slog loggers used across lineup
// commands.
//
// It owns the console and JSON handler setup, centralizes level parsing and
// output plumbing, and exposes typed attribute helpers plus a no-op logger
// for tests. Prefer these constructors over hand-rolled slog setup so every
// command emits log lines with the same shape.
package logging
