package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a roster CSV. The header must begin with the Artist column;
// unknown columns are ignored and missing columns read as empty, so tables
// written by older versions remain loadable. A row with an empty artist name
// or a duplicate identity key is a hard error: persisted stores are expected
// to be valid.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	if len(rows) == 0 {
		return NewStore(), nil
	}

	header := rows[0]
	if len(header) == 0 || header[0] != columnArtist {
		return nil, fmt.Errorf("parse roster %s: first column must be %q, got %q", path, columnArtist, strings.Join(header, ","))
	}

	columnAt := make(map[string]int, len(header))
	for i, name := range header {
		columnAt[name] = i
	}
	cell := func(row []string, name string) string {
		i, ok := columnAt[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	store := NewStore()
	for n, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, columnArtist))
		if name == "" {
			return nil, fmt.Errorf("parse roster %s: row %d has no artist name", path, n+2)
		}
		record := NewRecord(name)
		for _, f := range Fields() {
			if value := cell(row, string(f)); value != "" {
				record.SetField(f, value)
			}
		}
		for _, f := range Flags() {
			record.SetFlag(f, parseBool(cell(row, string(f))))
		}
		record.Cancelled = parseBool(cell(row, columnCancelled))
		if err := store.Add(record); err != nil {
			return nil, fmt.Errorf("parse roster %s: row %d: %w", path, n+2, err)
		}
	}
	return store, nil
}

// LoadOrEmpty is Load, except a missing file yields an empty store. First
// runs against a new festival-year start from nothing.
func LoadOrEmpty(path string) (*Store, error) {
	store, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(), nil
	}
	return store, err
}

// Save writes the store to path atomically: the CSV is written to a temporary
// file in the same directory and renamed into place, so a crash mid-write
// leaves the previous table intact.
func Save(path string, store *Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure roster directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp roster: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(headerRow()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write roster header: %w", err)
	}
	for _, record := range store.Records() {
		if err := writer.Write(recordRow(record)); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("write roster row %q: %w", record.Name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush roster: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync roster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close roster: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace roster: %w", err)
	}
	tmpPath = ""
	return nil
}

func headerRow() []string {
	row := []string{columnArtist}
	for _, f := range Fields() {
		row = append(row, string(f))
	}
	row = append(row, columnCancelled)
	for _, f := range Flags() {
		row = append(row, string(f))
	}
	return row
}

func recordRow(r *Record) []string {
	row := []string{r.Name}
	for _, f := range Fields() {
		row = append(row, r.Fields[f])
	}
	row = append(row, formatCancelled(r.Cancelled))
	for _, f := range Flags() {
		row = append(row, formatFlag(r.Flag(f)))
	}
	return row
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

func formatCancelled(v bool) string {
	if v {
		return "Yes"
	}
	return ""
}

func formatFlag(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
