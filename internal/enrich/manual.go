package enrich

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"lineup/internal/reconcile"
	"lineup/internal/roster"
)

// ManualFetcher prompts the operator for each target field on the terminal.
// Empty input leaves the field alone. The returned fields merge with
// source=manual, so manual answers may overwrite protected columns.
type ManualFetcher struct {
	In      io.Reader
	Out     io.Writer
	Targets []roster.Field

	scanner *bufio.Scanner
}

func (f *ManualFetcher) Name() string { return "manual" }

func (f *ManualFetcher) Source() reconcile.Source { return reconcile.SourceManual }

func (f *ManualFetcher) Fetch(_ context.Context, record *roster.Record) (map[roster.Field]string, error) {
	if f.scanner == nil {
		f.scanner = bufio.NewScanner(f.In)
	}

	fmt.Fprintf(f.Out, "\n%s\n", record.Name)
	fields := make(map[roster.Field]string)
	for _, field := range f.Targets {
		current := record.Field(field)
		if current == "" {
			fmt.Fprintf(f.Out, "  %s: ", field)
		} else {
			fmt.Fprintf(f.Out, "  %s [%s]: ", field, current)
		}
		if !f.scanner.Scan() {
			if err := f.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read input: %w", err)
			}
			break
		}
		value := strings.TrimSpace(f.scanner.Text())
		if value == "" {
			continue
		}
		fields[field] = value
	}
	return fields, nil
}
