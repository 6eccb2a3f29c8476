package manager

import (
	"github.com/user/watchstore/internal/model"
	"github.com/user/watchstore/internal/storage"
)

// Stats is a point-in-time report over the store.
type Stats struct {
	Tables          map[string]int      `json:"tables"`
	TotalRecords    int                 `json:"total_records"`
	Usage           storage.UsageReport `json:"usage"`
	IndexViolations int                 `json:"index_violations"`
}

// GetStats reports per-table record counts, storage usage, and the
// unique-index violations found during the last rebuild.
func (m *Manager) GetStats() (Stats, error) {
	stats := Stats{Tables: m.store.TableSizes()}
	for _, n := range stats.Tables {
		stats.TotalRecords += n
	}

	usage, err := m.store.Usage()
	if err != nil {
		return stats, err
	}
	stats.Usage = usage
	stats.IndexViolations = len(m.store.Violations())
	return stats, nil
}

// Health is the outcome of a health check.
type Health struct {
	Status    string `json:"status"` // ok or degraded
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// HealthCheck reports whether the store is connected and readable.
func (m *Manager) HealthCheck() Health {
	h := Health{Connected: m.store.Connected()}
	if !h.Connected {
		h.Status = "degraded"
		h.Error = model.ErrNotConnected.Error()
		return h
	}

	if _, err := m.store.Count(model.TableSettings, nil); err != nil {
		h.Status = "degraded"
		h.Error = err.Error()
		return h
	}

	h.Status = "ok"
	return h
}

// Setting reads a settings value by key.
func (m *Manager) Setting(key string) (any, bool, error) {
	rec, ok, err := m.store.FindOne(model.TableSettings, []model.Condition{model.Eq("key", key)})
	if err != nil || !ok {
		return nil, false, err
	}
	return rec["value"], true, nil
}

// SetSetting upserts a settings key.
func (m *Manager) SetSetting(key string, value any) error {
	n, err := m.store.Update(model.TableSettings,
		[]model.Condition{model.Eq("key", key)},
		model.Record{"value": value})
	if err != nil {
		return err
	}
	if n == 0 {
		_, err = m.store.Insert(model.TableSettings, model.Record{"key": key, "value": value})
	}
	return err
}
