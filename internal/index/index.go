// Package index builds composite-key lookup structures from declared
// index definitions. Indexes are advisory: they are rebuilt wholesale
// whenever the store loads or restores, they are not maintained on the
// write path, and the query engine's filter stage does not consult them.
// Their job is to document intended uniqueness and expose explicit
// key-to-id lookups over the snapshot they were built from.
package index

import (
	"strings"

	"github.com/user/watchstore/internal/model"
	"github.com/user/watchstore/internal/query"
)

// KeySeparator joins stringified field values into a composite key.
const KeySeparator = "|"

// Index is a materialized composite-key to record-id mapping for one
// definition, built from a table snapshot.
type Index struct {
	Def  model.IndexDef
	keys map[string]string
}

// Violation records a duplicate key found on a unique index during a
// rebuild. Violations are reported, never fatal: the first record wins
// the key and later duplicates are skipped.
type Violation struct {
	Index      string
	Table      string
	Key        string
	RecordID   string
	ExistingID string
}

// Key builds the composite key for a record under a definition.
func Key(rec model.Record, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v, _ := rec.Get(f)
		parts[i] = query.Stringify(v)
	}
	return strings.Join(parts, KeySeparator)
}

// Build materializes every definition against the given tables and
// reports unique-key violations found along the way. Definitions over
// tables missing from the snapshot produce empty indexes.
func Build(defs []model.IndexDef, tables map[string][]model.Record) (map[string]*Index, []Violation) {
	indexes := make(map[string]*Index, len(defs))
	var violations []Violation

	for _, def := range defs {
		idx := &Index{Def: def, keys: make(map[string]string)}

		for _, rec := range tables[def.Table] {
			key := Key(rec, def.Fields)
			existing, seen := idx.keys[key]
			if seen {
				if def.Unique {
					violations = append(violations, Violation{
						Index:      def.Name,
						Table:      def.Table,
						Key:        key,
						RecordID:   rec.ID(),
						ExistingID: existing,
					})
				}
				continue
			}
			idx.keys[key] = rec.ID()
		}

		indexes[def.Name] = idx
	}

	return indexes, violations
}

// Lookup returns the record id stored under the composite key built
// from the given values, in definition field order.
func (idx *Index) Lookup(values ...any) (string, bool) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = query.Stringify(v)
	}
	id, ok := idx.keys[strings.Join(parts, KeySeparator)]
	return id, ok
}

// Len returns the number of distinct keys in the index.
func (idx *Index) Len() int {
	return len(idx.keys)
}
