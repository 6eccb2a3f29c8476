package storage

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/user/watchstore/internal/index"
	"github.com/user/watchstore/internal/model"
	"github.com/user/watchstore/internal/query"
)

// DefaultBackupMax is the number of backup snapshots retained when the
// caller does not configure one.
const DefaultBackupMax = 5

// Options configures a Store.
type Options struct {
	// SlotName is the base slot the store blob lives under.
	SlotName string
	// Schema declares the tables and indexes. Defaults to model.DefaultSchema.
	Schema *model.Schema
	// Logger receives index-violation warnings and lifecycle events.
	// Defaults to zap.NewNop.
	Logger *zap.Logger
	// BackupMax caps retained backup snapshots. Defaults to DefaultBackupMax.
	BackupMax int
	// CompressBackups gzips backup blobs. The live slot stays plain JSON.
	CompressBackups bool
}

// Store holds every table in memory as the single source of truth and
// flushes the whole blob to its slot after each successful mutation.
// The full rewrite on every write is deliberate: expected data volume
// is small and one code path beats a diffing layer.
//
// A mutex guards the tables because Go callers are not single-threaded;
// there is still no cross-process coordination and no rollback.
type Store struct {
	mu   sync.Mutex
	slot Slot
	opts Options
	log  *zap.Logger

	tables     map[string][]model.Record
	indexes    map[string]*index.Index
	violations []index.Violation
	connected  bool
}

// New creates a Store over the given slot. Connect must be called
// before any other operation.
func New(slot Slot, opts Options) *Store {
	if opts.Schema == nil {
		opts.Schema = model.DefaultSchema()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SlotName == "" {
		opts.SlotName = "watch_store"
	}
	if opts.BackupMax <= 0 {
		opts.BackupMax = DefaultBackupMax
	}
	return &Store{
		slot: slot,
		opts: opts,
		log:  opts.Logger,
	}
}

// Schema returns the store's schema.
func (s *Store) Schema() *model.Schema {
	return s.opts.Schema
}

// SlotName returns the base slot name.
func (s *Store) SlotName() string {
	return s.opts.SlotName
}

// Connected reports whether Connect has succeeded and Close has not run.
func (s *Store) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Connect hydrates the store from its slot. An absent slot is a first
// run: an empty, fully-shaped store (every declared table present) is
// written. Unparsable content fails hard and aborts initialization.
func (s *Store) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	data, err := s.slot.Read(s.opts.SlotName)
	switch {
	case err == nil:
		tables, err := DecodeBlob(data)
		if err != nil {
			return fmt.Errorf("failed to load store %q: %w", s.opts.SlotName, err)
		}
		s.adoptLocked(tables)
	case isNotFound(err):
		s.adoptLocked(map[string][]model.Record{})
		if err := s.persistLocked(); err != nil {
			return fmt.Errorf("failed to initialize store %q: %w", s.opts.SlotName, err)
		}
	default:
		return fmt.Errorf("failed to load store %q: %w", s.opts.SlotName, err)
	}

	s.connected = true
	s.log.Info("store connected",
		zap.String("slot", s.opts.SlotName),
		zap.Int("tables", len(s.tables)),
		zap.Int("index_violations", len(s.violations)))
	return nil
}

// Close flushes and marks the store disconnected. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil
	}
	if err := s.persistLocked(); err != nil {
		return fmt.Errorf("failed to flush store on close: %w", err)
	}
	s.connected = false
	s.log.Info("store closed", zap.String("slot", s.opts.SlotName))
	return nil
}

// Reload re-reads the blob from the slot, replacing in-memory state and
// rebuilding indexes. Used when an external writer changed the slot.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.ErrNotConnected
	}
	data, err := s.slot.Read(s.opts.SlotName)
	if err != nil {
		return fmt.Errorf("failed to reload store %q: %w", s.opts.SlotName, err)
	}
	tables, err := DecodeBlob(data)
	if err != nil {
		return fmt.Errorf("failed to reload store %q: %w", s.opts.SlotName, err)
	}
	s.adoptLocked(tables)
	return nil
}

// Insert appends a record to a table. The id is assigned when absent
// and timestamps are stamped per the table's timestamp mode. The stored
// record (including generated fields) is returned. There is no
// uniqueness enforcement here beyond what the caller pre-checks.
func (s *Store) Insert(table string, data model.Record) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	desc, err := s.tableLocked(table)
	if err != nil {
		return nil, err
	}

	rec := data.Clone()
	if rec.ID() == "" {
		rec[model.FieldID] = model.NewID()
	}

	now := model.Now()
	switch desc.Timestamps {
	case model.TimestampsStandard:
		rec[model.FieldCreatedAt] = now
		rec[model.FieldUpdatedAt] = now
	case model.TimestampsAddedAt:
		rec[model.FieldAddedAt] = now
		rec[model.FieldUpdatedAt] = now
	}

	s.tables[table] = append(s.tables[table], rec)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Update merges the patch over every record matching all conditions and
// refreshes updated_at. Returns the number of records changed. The blob
// is persisted once, and only when at least one record changed.
func (s *Store) Update(table string, conds []model.Condition, patch model.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tableLocked(table); err != nil {
		return 0, err
	}
	for _, c := range conds {
		if err := c.Validate(); err != nil {
			return 0, err
		}
	}

	records := s.tables[table]
	changed := 0
	now := model.Now()
	for i, rec := range records {
		if !query.MatchAll(rec, conds) {
			continue
		}
		merged := rec.Merge(patch)
		merged[model.FieldUpdatedAt] = now
		records[i] = merged
		changed++
	}

	if changed == 0 {
		return 0, nil
	}
	if err := s.persistLocked(); err != nil {
		return changed, err
	}
	return changed, nil
}

// UpdateByID updates the single record with the given id.
func (s *Store) UpdateByID(table, id string, patch model.Record) (int, error) {
	return s.Update(table, []model.Condition{model.ByID(id)}, patch)
}

// Delete removes every record matching all conditions and returns the
// removed count. The blob is persisted once, and only when count > 0.
func (s *Store) Delete(table string, conds []model.Condition) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tableLocked(table); err != nil {
		return 0, err
	}
	for _, c := range conds {
		if err := c.Validate(); err != nil {
			return 0, err
		}
	}

	records := s.tables[table]
	kept := records[:0:0]
	for _, rec := range records {
		if !query.MatchAll(rec, conds) {
			kept = append(kept, rec)
		}
	}

	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tables[table] = kept
	if err := s.persistLocked(); err != nil {
		return removed, err
	}
	return removed, nil
}

// DeleteByID removes the single record with the given id.
func (s *Store) DeleteByID(table, id string) (int, error) {
	return s.Delete(table, []model.Condition{model.ByID(id)})
}

// Find runs a query against a table snapshot.
func (s *Store) Find(table string, q model.Query) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tableLocked(table); err != nil {
		return nil, err
	}
	return query.Apply(s.tables[table], q)
}

// FindOne returns the first record matching all conditions.
// An absent match reports ok=false, never an error.
func (s *Store) FindOne(table string, conds []model.Condition) (model.Record, bool, error) {
	out, err := s.Find(table, model.Query{Where: conds, Limit: 1})
	if err != nil {
		return nil, false, err
	}
	if len(out) == 0 {
		return nil, false, nil
	}
	return out[0], true, nil
}

// FindByID returns the record with the given id.
func (s *Store) FindByID(table, id string) (model.Record, bool, error) {
	return s.FindOne(table, []model.Condition{model.ByID(id)})
}

// Count returns the number of records matching all conditions.
func (s *Store) Count(table string, conds []model.Condition) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.tableLocked(table); err != nil {
		return 0, err
	}
	for _, c := range conds {
		if err := c.Validate(); err != nil {
			return 0, err
		}
	}

	n := 0
	for _, rec := range s.tables[table] {
		if query.MatchAll(rec, conds) {
			n++
		}
	}
	return n, nil
}

// TableSizes returns the record count per table.
func (s *Store) TableSizes() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.tables))
	for name, records := range s.tables {
		out[name] = len(records)
	}
	return out
}

// Index returns a built index by name.
func (s *Store) Index(name string) (*index.Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.indexes[name]
	return idx, ok
}

// Violations returns the unique-index violations found during the last
// rebuild. Violations are warnings, not failures.
func (s *Store) Violations() []index.Violation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]index.Violation, len(s.violations))
	copy(out, s.violations)
	return out
}

// adoptLocked replaces in-memory state with the given tables, ensures
// every schema table exists, and rebuilds indexes.
func (s *Store) adoptLocked(tables map[string][]model.Record) {
	for _, name := range s.opts.Schema.TableNames() {
		if tables[name] == nil {
			tables[name] = []model.Record{}
		}
	}
	s.tables = tables
	s.rebuildIndexesLocked()
}

// rebuildIndexesLocked rebuilds every declared index from current table
// contents. Unique-key collisions are logged and kept as a report; the
// store stays usable.
func (s *Store) rebuildIndexesLocked() {
	s.indexes, s.violations = index.Build(s.opts.Schema.Indexes, s.tables)
	for _, v := range s.violations {
		s.log.Warn("unique index violation",
			zap.String("index", v.Index),
			zap.String("table", v.Table),
			zap.String("key", v.Key),
			zap.String("record_id", v.RecordID),
			zap.String("existing_id", v.ExistingID))
	}
}

// persistLocked re-serializes the whole store and writes it to the base
// slot. Called after every successful mutation; failures are returned
// to the caller and never retried.
func (s *Store) persistLocked() error {
	data, err := EncodeBlob(s.opts.Schema, s.tables)
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := s.slot.Write(s.opts.SlotName, data); err != nil {
		return fmt.Errorf("failed to persist store: %w", err)
	}
	return nil
}

// tableLocked resolves a table descriptor; unknown names fail fast.
func (s *Store) tableLocked(name string) (model.Table, error) {
	desc, ok := s.opts.Schema.Table(name)
	if !ok {
		return model.Table{}, fmt.Errorf("%w: %q", model.ErrUnknownTable, name)
	}
	if !s.connected {
		return model.Table{}, model.ErrNotConnected
	}
	return desc, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSlotNotFound)
}
