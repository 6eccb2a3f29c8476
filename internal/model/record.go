package model

import (
	"time"
)

// System field names present on most records.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldAddedAt   = "added_at"
)

// TimeLayout is the timestamp format used for created_at/updated_at
// fields: ISO-8601 with millisecond precision in UTC.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders a timestamp in the store's wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Now returns the current time in the store's wire format.
func Now() string {
	return FormatTime(time.Now())
}

// Record is a single row in a table: a flat mapping of field name to
// JSON-compatible value. Every stored record has a unique string "id";
// most tables also carry "created_at"/"updated_at" timestamps.
type Record map[string]any

// ID returns the record's id, or "" if unset.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Get returns a field value.
func (r Record) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// String returns a field as a string, or "" if absent or not a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// Clone returns a shallow copy of the record. Field values are shared,
// which is safe because the store treats values as immutable: updates
// replace whole fields, never mutate them in place.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays patch fields onto a copy of the record.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Project returns a new record containing only the listed fields.
// Unlisted fields are dropped, not hidden.
func (r Record) Project(fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}
