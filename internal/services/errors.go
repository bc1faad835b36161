package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoData means the service answered but had nothing useful: an artist
	// with no public presence, a search with zero hits. Callers fall back
	// rather than retry.
	ErrNoData = errors.New("no data available")
	// ErrTransient marks failures worth one automatic retry: timeouts, rate
	// limits, 5xx responses.
	ErrTransient = errors.New("transient failure")
	// ErrFatal marks failures that abort the whole command: bad credentials,
	// malformed configuration.
	ErrFatal = errors.New("fatal failure")
	// ErrConfiguration marks missing or invalid settings discovered at call
	// time.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error carrying service and operation context while tagging
// it with the provided marker for classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, service, operation, message string, err error) error {
	detail := buildDetail(service, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether an error deserves one automatic retry.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransient)
}

func buildDetail(service, operation, message string) string {
	parts := make([]string, 0, 3)
	if service = strings.TrimSpace(service); service != "" {
		parts = append(parts, service)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
