package reconcile

import (
	"fmt"
	"strings"

	"lineup/internal/roster"
	"lineup/internal/scrape"
	"lineup/internal/slug"
)

// Report summarizes one reconciliation pass for the operator.
type Report struct {
	Added          int
	Updated        int
	Unchanged      int
	NewlyCancelled int
	// AddedNames lists newly observed artists in scrape order.
	AddedNames []string
	// Warnings records skipped malformed entries; they never abort a pass.
	Warnings []string
}

// Changed reports whether the pass altered the store at all.
func (r *Report) Changed() bool {
	return r.Added > 0 || r.Updated > 0 || r.NewlyCancelled > 0
}

// Reconcile merges a scraped lineup into the existing store and returns the
// merged store as a new value together with a report. The input store is not
// mutated. Pre-existing rows keep their order; new rows are appended in
// scrape order. Row order never affects which values win.
func Reconcile(existing *roster.Store, scraped []scrape.RawArtist) (*roster.Store, *Report) {
	merged := existing.Clone()
	report := &Report{}
	seen := make(map[string]bool, len(scraped))

	for _, entry := range scraped {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			report.Warnings = append(report.Warnings, "skipped scraped entry with empty artist name")
			continue
		}
		key := slug.Normalize(name)
		if key == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped %q: name normalizes to empty identity key", name))
			continue
		}
		if seen[key] {
			// Two scraped entries with one identity key are the same act;
			// later entries fold into the matched record without inflating
			// the counters.
			if record, ok := merged.Get(key); ok {
				mergeScrapedEntry(record, entry, report)
			}
			report.Warnings = append(report.Warnings, fmt.Sprintf("merged duplicate scraped entry for %q", name))
			continue
		}
		seen[key] = true

		record, ok := merged.Get(key)
		if !ok {
			record = newRecordFromScrape(name, entry)
			// Key was checked non-empty and unseen, so Add cannot fail.
			_ = merged.Add(record)
			report.Added++
			report.AddedNames = append(report.AddedNames, name)
			continue
		}

		if mergeScrapedEntry(record, entry, report) {
			report.Updated++
		} else {
			report.Unchanged++
		}
	}

	// Rows absent from this scrape are left untouched: cancellation requires
	// an explicit signal, never absence, so partial scrapes are harmless.
	return merged, report
}

func newRecordFromScrape(name string, entry scrape.RawArtist) *roster.Record {
	record := roster.NewRecord(name)
	for _, f := range roster.Fields() {
		if value := entry.Field(f); strings.TrimSpace(value) != "" {
			record.SetField(f, value)
		}
	}
	for _, f := range roster.Flags() {
		if entry.Flags[f] {
			record.SetFlag(f, true)
		}
	}
	if entry.CancelledKnown {
		record.Cancelled = entry.Cancelled
	}
	return record
}

func mergeScrapedEntry(record *roster.Record, entry scrape.RawArtist, report *Report) bool {
	changed := false

	for f := range entry.Fields {
		if !roster.KnownField(string(f)) {
			continue
		}
		existing := record.Field(f)
		resolved := ResolveField(existing, entry.Field(f), f, SourceScrape)
		if strings.TrimSpace(resolved) != existing {
			record.SetField(f, resolved)
			changed = true
		}
	}

	// Derived flags merge by OR: once a one-time fetch happened it stays
	// recorded; scrape input can never un-happen it.
	for f, v := range entry.Flags {
		if v && !record.Flag(f) {
			record.SetFlag(f, true)
			changed = true
		}
	}

	if entry.CancelledKnown && entry.Cancelled != record.Cancelled {
		record.Cancelled = entry.Cancelled
		changed = true
		if entry.Cancelled {
			report.NewlyCancelled++
		}
	}

	return changed
}
