package logging

import "log/slog"

// Error wraps an error as a slog attribute, tolerating nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// String mirrors slog.String for call-site symmetry with Error.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int mirrors slog.Int.
func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

// Bool mirrors slog.Bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// NewComponentLogger returns a child logger tagged with the component name.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String("component", component))
}
