// Package manager is the application-facing entry point to the store:
// domain-named operations over users, products, categories, orders, and
// cart items, with field defaults applied before delegating to the
// record store and query engine.
//
// A Manager is constructed once at application start and passed by
// reference to every consumer. This keeps the "exactly one live store"
// rule without hidden global state; there is deliberately no package
// level singleton accessor.
package manager

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/watchstore/internal/config"
	"github.com/user/watchstore/internal/model"
	"github.com/user/watchstore/internal/storage"
)

// Manager owns the single live Store and wraps it with domain defaults.
type Manager struct {
	store *storage.Store
	cfg   config.Config
	log   *zap.Logger
}

// New builds a Manager over a file-backed slot in cfg.DataDir, connects
// the store, and runs first-run seeding when enabled. Initialization
// failures (unreadable blob, seed parse error) are fatal and surfaced
// to the caller.
func New(cfg config.Config, log *zap.Logger) (*Manager, error) {
	slot, err := storage.NewFileSlot(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return NewWithSlot(slot, cfg, log)
}

// NewWithSlot builds a Manager over any slot implementation. Tests use
// this with a MemorySlot.
func NewWithSlot(slot storage.Slot, cfg config.Config, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}

	store := storage.New(slot, storage.Options{
		SlotName:        cfg.SlotName,
		Logger:          log,
		BackupMax:       cfg.BackupMax,
		CompressBackups: cfg.CompressBackups,
	})
	if err := store.Connect(); err != nil {
		return nil, err
	}

	m := &Manager{store: store, cfg: cfg, log: log}

	if cfg.Seed {
		counts, err := m.SeedIfEmpty()
		if err != nil {
			// Seed failures abort initialization; leave no half-open store.
			store.Close()
			return nil, fmt.Errorf("first-run seeding failed: %w", err)
		}
		if !counts.Skipped {
			log.Info("store seeded",
				zap.Int("categories", counts.Categories),
				zap.Int("products", counts.Products),
				zap.Int("users", counts.Users))
		}
	}

	return m, nil
}

// Close flushes and disconnects the store. Idempotent.
func (m *Manager) Close() error {
	return m.store.Close()
}

// Store exposes the underlying record store for infrastructure that
// needs it (daemon, CLI plumbing). Application code should stay on the
// Manager surface.
func (m *Manager) Store() *storage.Store {
	return m.store
}

// NewSessionID returns a fresh anonymous session id for guest carts.
func NewSessionID() string {
	return uuid.NewString()
}

// Find runs a query against a table.
func (m *Manager) Find(table string, q model.Query) ([]model.Record, error) {
	return m.store.Find(table, q)
}

// FindOne returns the first record matching all conditions; an absent
// match reports ok=false, never an error.
func (m *Manager) FindOne(table string, conds ...model.Condition) (model.Record, bool, error) {
	return m.store.FindOne(table, conds)
}

// FindByID returns the record with the given id.
func (m *Manager) FindByID(table, id string) (model.Record, bool, error) {
	return m.store.FindByID(table, id)
}

// Count returns the number of records matching all conditions.
func (m *Manager) Count(table string, conds ...model.Condition) (int, error) {
	return m.store.Count(table, conds)
}

// Insert appends a record with no domain defaults applied.
func (m *Manager) Insert(table string, data model.Record) (model.Record, error) {
	return m.store.Insert(table, data)
}

// Update patches every matching record.
func (m *Manager) Update(table string, conds []model.Condition, patch model.Record) (int, error) {
	return m.store.Update(table, conds, patch)
}

// UpdateByID patches the record with the given id.
func (m *Manager) UpdateByID(table, id string, patch model.Record) (int, error) {
	return m.store.UpdateByID(table, id, patch)
}

// Delete removes every matching record.
func (m *Manager) Delete(table string, conds ...model.Condition) (int, error) {
	return m.store.Delete(table, conds)
}

// DeleteByID removes the record with the given id.
func (m *Manager) DeleteByID(table, id string) (int, error) {
	return m.store.DeleteByID(table, id)
}

// Backup snapshots the store and returns the snapshot name.
func (m *Manager) Backup() (string, error) {
	return m.store.Backup()
}

// Restore replaces the store with a named snapshot.
func (m *Manager) Restore(name string) error {
	return m.store.Restore(name)
}

// ListBackups returns snapshot names, oldest first.
func (m *Manager) ListBackups() ([]string, error) {
	return m.store.ListBackups()
}

// Export returns the raw store blob.
func (m *Manager) Export() ([]byte, error) {
	return m.store.Export()
}

// Import replaces the store with a raw blob.
func (m *Manager) Import(data []byte) error {
	return m.store.Import(data)
}

// LogEvent appends a record to the logs table. Failures are logged and
// swallowed; event logging never breaks the calling operation.
func (m *Manager) LogEvent(level, event string, detail model.Record) {
	_, err := m.store.Insert(model.TableLogs, model.Record{
		"level":    level,
		"event":    event,
		"trace_id": uuid.NewString(),
		"detail":   map[string]any(detail),
	})
	if err != nil {
		m.log.Warn("failed to record event log", zap.String("event", event), zap.Error(err))
	}
}
