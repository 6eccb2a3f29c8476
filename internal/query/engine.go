// Package query implements the read path over a table snapshot:
// condition filtering, stable multi-key sorting, pagination, and field
// projection. Every function is a pure transformation; input records are
// never mutated and results are freshly constructed.
package query

import (
	"sort"

	"github.com/user/watchstore/internal/model"
)

// Apply runs the full pipeline over a table snapshot. Stages run in a
// fixed order: filter, sort, paginate, project. Later stages operate on
// the already-reduced set, so the order is not interchangeable.
func Apply(records []model.Record, q model.Query) ([]model.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	out := Filter(records, q.Where)
	Sort(out, q.Order)
	out = Paginate(out, q.Offset, q.Limit)

	if len(q.Fields) > 0 {
		for i, rec := range out {
			out[i] = rec.Project(q.Fields)
		}
	} else {
		for i, rec := range out {
			out[i] = rec.Clone()
		}
	}

	return out, nil
}

// Filter returns the records for which every condition holds.
// The returned slice is new; the records themselves are not yet copied
// (Apply clones at the projection stage).
func Filter(records []model.Record, conds []model.Condition) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if MatchAll(rec, conds) {
			out = append(out, rec)
		}
	}
	return out
}

// MatchAll reports whether the record satisfies every condition.
func MatchAll(rec model.Record, conds []model.Condition) bool {
	for _, c := range conds {
		if !Match(rec, c) {
			return false
		}
	}
	return true
}

// Match evaluates a single condition against a record.
// Conditions are assumed valid (see model.Condition.Validate); an
// unknown operator matches nothing.
func Match(rec model.Record, c model.Condition) bool {
	field, _ := rec.Get(c.Field)

	switch c.Op {
	case model.OpEq:
		return equalValues(field, c.Value)
	case model.OpNeq:
		return !equalValues(field, c.Value)
	case model.OpGt:
		cmp, ok := compareValues(field, c.Value)
		return ok && cmp > 0
	case model.OpLt:
		cmp, ok := compareValues(field, c.Value)
		return ok && cmp < 0
	case model.OpGte:
		cmp, ok := compareValues(field, c.Value)
		return ok && cmp >= 0
	case model.OpLte:
		cmp, ok := compareValues(field, c.Value)
		return ok && cmp <= 0
	case model.OpLike:
		return likeMatch(field, c.Value)
	case model.OpIn:
		return inList(field, c.Value)
	case model.OpNotIn:
		return !inList(field, c.Value)
	}
	return false
}

// Sort stable-sorts records in place by the given keys. Keys apply in
// order; ties fall through to the next key; full ties keep the original
// relative order.
func Sort(records []model.Record, order []model.Order) {
	if len(order) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, key := range order {
			a, _ := records[i].Get(key.Field)
			b, _ := records[j].Get(key.Field)
			cmp, ok := compareValues(a, b)
			if !ok || cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// Paginate slices out [offset, offset+limit). limit 0 means unbounded.
func Paginate(records []model.Record, offset, limit int) []model.Record {
	if offset >= len(records) {
		return []model.Record{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func inList(field, value any) bool {
	values, ok := value.([]any)
	if !ok {
		return false
	}
	for _, v := range values {
		if equalValues(field, v) {
			return true
		}
	}
	return false
}
