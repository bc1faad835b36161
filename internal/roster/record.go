package roster

import (
	"strings"

	"lineup/internal/slug"
)

// Record is one artist row in a festival-year table.
type Record struct {
	// Name is the display name exactly as announced by the festival.
	Name string
	// Key is the normalized identity key derived from Name; the reconciler
	// matches on it and it doubles as the artist's page slug seed.
	Key string
	// Fields holds the data columns. Empty values are represented as absent
	// or as the empty string interchangeably.
	Fields map[Field]string
	// Flags marks one-time fetches already performed.
	Flags map[Flag]bool
	// Cancelled marks a withdrawn act. Rows are flagged, never removed.
	Cancelled bool
}

// NewRecord creates an empty record for a display name. The identity key is
// derived immediately; callers must reject records whose key comes back empty.
func NewRecord(name string) *Record {
	name = strings.TrimSpace(name)
	return &Record{
		Name:   name,
		Key:    slug.Normalize(name),
		Fields: make(map[Field]string),
		Flags:  make(map[Flag]bool),
	}
}

// Field returns the trimmed value of a column, empty when unset.
func (r *Record) Field(f Field) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return strings.TrimSpace(r.Fields[f])
}

// SetField stores a column value. It does not consult the preservation
// policy; merge decisions belong to the reconcile package.
func (r *Record) SetField(f Field, value string) {
	if r.Fields == nil {
		r.Fields = make(map[Field]string)
	}
	r.Fields[f] = value
}

// Flag reports whether a one-time fetch has already happened.
func (r *Record) Flag(f Flag) bool {
	if r == nil || r.Flags == nil {
		return false
	}
	return r.Flags[f]
}

// SetFlag records a one-time fetch. Flags only move explicitly; there is no
// implicit clearing when field content changes.
func (r *Record) SetFlag(f Flag, value bool) {
	if r.Flags == nil {
		r.Flags = make(map[Flag]bool)
	}
	r.Flags[f] = value
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		Name:      r.Name,
		Key:       r.Key,
		Cancelled: r.Cancelled,
		Fields:    make(map[Field]string, len(r.Fields)),
		Flags:     make(map[Flag]bool, len(r.Flags)),
	}
	for f, v := range r.Fields {
		out.Fields[f] = v
	}
	for f, v := range r.Flags {
		out.Flags[f] = v
	}
	return out
}

// Equal reports whether two records carry identical content, ignoring
// zero-value map entries so an absent field and an empty field compare equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Name != other.Name || r.Key != other.Key || r.Cancelled != other.Cancelled {
		return false
	}
	for _, f := range Fields() {
		if r.Field(f) != other.Field(f) {
			return false
		}
	}
	for _, f := range Flags() {
		if r.Flag(f) != other.Flag(f) {
			return false
		}
	}
	return true
}
