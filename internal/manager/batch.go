package manager

import (
	"fmt"

	"github.com/user/watchstore/internal/model"
)

// OpKind names a batch operation type.
type OpKind string

// Batch operation kinds.
const (
	OpInsert OpKind = "insert"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Operation is one step of a batch.
type Operation struct {
	Kind  OpKind
	Table string
	// Data is the record to insert, or the patch for updates.
	Data model.Record
	// Where selects records for update/delete.
	Where []model.Condition
}

// BatchResult reports what a batch did. Applied counts operations that
// ran to completion; when Err is set, FailedIndex is the operation that
// failed and everything before it has already been applied.
type BatchResult struct {
	Applied     int
	FailedIndex int
	Err         error
}

// Batch applies operations in sequence, best effort. This is NOT a
// transaction: there is no rollback, and operations applied before a
// failure stay applied. Callers that need atomicity must design their
// operations to be individually safe.
func (m *Manager) Batch(ops []Operation) BatchResult {
	result := BatchResult{FailedIndex: -1}

	for i, op := range ops {
		var err error
		switch op.Kind {
		case OpInsert:
			_, err = m.store.Insert(op.Table, op.Data)
		case OpUpdate:
			_, err = m.store.Update(op.Table, op.Where, op.Data)
		case OpDelete:
			_, err = m.store.Delete(op.Table, op.Where)
		default:
			err = fmt.Errorf("unknown batch operation %q", op.Kind)
		}

		if err != nil {
			result.FailedIndex = i
			result.Err = fmt.Errorf("batch operation %d (%s %s): %w", i, op.Kind, op.Table, err)
			return result
		}
		result.Applied++
	}
	return result
}
