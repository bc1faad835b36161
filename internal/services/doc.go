// Package services holds shared plumbing for external integrations: the
// error taxonomy separating no-data, transient, and fatal failures, and a
// Wrap helper that tags errors with operation context while keeping them
// classifiable with errors.Is.
package services
