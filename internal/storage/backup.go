package storage

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/watchstore/internal/model"
)

// DefaultCapacityBytes is the assumed storage capacity ceiling used by
// the usage report. It mirrors the common browser local-storage quota
// and exists for UI warnings only; nothing enforces it.
const DefaultCapacityBytes = 5 * 1024 * 1024

// backupInfix separates the base slot name from the backup timestamp.
const backupInfix = "_backup_"

// slotTimestampReplacer makes an ISO-8601 timestamp slot-safe.
var slotTimestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// BackupName builds the slot name for a snapshot taken at t:
// {base}_backup_{ISO8601 with ':' and '.' replaced by '-'}.
// Lexicographic order of names is chronological order.
func BackupName(base string, t time.Time) string {
	return base + backupInfix + slotTimestampReplacer.Replace(model.FormatTime(t))
}

// Backup snapshots the current blob under a timestamp-suffixed slot and
// prunes the oldest snapshots beyond the retention cap. Returns the
// snapshot's slot name.
func (s *Store) Backup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return "", model.ErrNotConnected
	}

	data, err := EncodeBlob(s.opts.Schema, s.tables)
	if err != nil {
		return "", fmt.Errorf("failed to serialize backup: %w", err)
	}
	if s.opts.CompressBackups {
		if data, err = Gzip(data); err != nil {
			return "", err
		}
	}

	name := BackupName(s.opts.SlotName, time.Now())
	if err := s.slot.Write(name, data); err != nil {
		return "", fmt.Errorf("failed to write backup %s: %w", name, err)
	}
	s.log.Info("backup created", zap.String("backup", name), zap.Int("bytes", len(data)))

	if err := s.pruneBackupsLocked(); err != nil {
		return name, err
	}
	return name, nil
}

// ListBackups returns all snapshot slot names, oldest first.
func (s *Store) ListBackups() ([]string, error) {
	return s.slot.List(s.opts.SlotName + backupInfix)
}

// Restore replaces the live store with a named snapshot's contents,
// re-derives indexes, and persists the restored state to the base slot.
func (s *Store) Restore(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.ErrNotConnected
	}
	if !strings.HasPrefix(name, s.opts.SlotName+backupInfix) {
		return fmt.Errorf("%w: %s", model.ErrBackupNotFound, name)
	}

	data, err := s.slot.Read(name)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", model.ErrBackupNotFound, name)
		}
		return fmt.Errorf("failed to read backup %s: %w", name, err)
	}

	tables, err := DecodeBlob(data)
	if err != nil {
		return fmt.Errorf("failed to restore backup %s: %w", name, err)
	}

	s.adoptLocked(tables)
	if err := s.persistLocked(); err != nil {
		return err
	}
	s.log.Info("backup restored", zap.String("backup", name))
	return nil
}

// Export returns the current store blob for raw interchange.
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return nil, model.ErrNotConnected
	}
	return EncodeBlob(s.opts.Schema, s.tables)
}

// Import replaces the live store with the given raw blob, re-derives
// indexes, and persists. Unparsable blobs leave the store untouched.
func (s *Store) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return model.ErrNotConnected
	}
	tables, err := DecodeBlob(data)
	if err != nil {
		return fmt.Errorf("failed to import blob: %w", err)
	}
	s.adoptLocked(tables)
	return s.persistLocked()
}

// UsageReport describes storage consumption for UI warnings.
// CapacityBytes is an assumed ceiling, not an enforced quota.
type UsageReport struct {
	UsedBytes     int64   `json:"used_bytes"`
	BackupBytes   int64   `json:"backup_bytes"`
	CapacityBytes int64   `json:"capacity_bytes"`
	UsedPercent   float64 `json:"used_percent"`
	Backups       int     `json:"backups"`
}

// Usage reports bytes used by the live blob and its backups against the
// assumed capacity ceiling.
func (s *Store) Usage() (UsageReport, error) {
	report := UsageReport{CapacityBytes: DefaultCapacityBytes}

	if size, err := s.slot.Size(s.opts.SlotName); err == nil {
		report.UsedBytes = size
	}

	backups, err := s.ListBackups()
	if err != nil {
		return report, err
	}
	report.Backups = len(backups)
	for _, name := range backups {
		if size, err := s.slot.Size(name); err == nil {
			report.BackupBytes += size
		}
	}

	total := report.UsedBytes + report.BackupBytes
	report.UsedPercent = float64(total) / float64(report.CapacityBytes) * 100
	return report, nil
}

// pruneBackupsLocked deletes the oldest snapshots (lexicographic name
// order) until at most BackupMax remain.
func (s *Store) pruneBackupsLocked() error {
	backups, err := s.slot.List(s.opts.SlotName + backupInfix)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	for len(backups) > s.opts.BackupMax {
		oldest := backups[0]
		if err := s.slot.Delete(oldest); err != nil {
			return fmt.Errorf("failed to prune backup %s: %w", oldest, err)
		}
		s.log.Info("backup pruned", zap.String("backup", oldest))
		backups = backups[1:]
	}
	return nil
}
