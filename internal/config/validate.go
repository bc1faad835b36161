package config

import (
	"errors"
	"fmt"

	"lineup/internal/roster"
)

// Validate ensures the configuration is usable. Secrets are deliberately not
// required here; commands that need them check at call time so read-only
// commands work without credentials.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateFestivals(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateFestivals() error {
	seen := make(map[string]bool, len(c.Festivals))
	for _, f := range c.Festivals {
		if f.Slug == "" {
			return errors.New("festival.slug must be set")
		}
		if seen[f.Slug] {
			return fmt.Errorf("festival.slug %q defined twice", f.Slug)
		}
		seen[f.Slug] = true
		switch f.Source {
		case "json", "file", "html":
		default:
			return fmt.Errorf("festival %q: source must be \"json\", \"file\", or \"html\", got %q", f.Slug, f.Source)
		}
		if f.LineupURL == "" {
			return fmt.Errorf("festival %q: lineup_url must be set", f.Slug)
		}
		for sourceKey, column := range f.FieldMap {
			if !roster.KnownField(column) {
				return fmt.Errorf("festival %q: field_map.%s targets unknown column %q", f.Slug, sourceKey, column)
			}
		}
	}
	return nil
}
