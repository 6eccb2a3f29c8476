package daemon

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBackupInterval is used when the configured interval is zero.
const DefaultBackupInterval = time.Hour

// BackupFunc snapshots the store and returns the snapshot name.
type BackupFunc func() (string, error)

// AutoBackup runs a backup on a fixed interval. Failures are logged and
// the loop keeps going; a store that cannot back up is still usable.
type AutoBackup struct {
	backupFn BackupFunc
	interval time.Duration
	log      *zap.Logger

	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once
}

// NewAutoBackup creates a backup loop. log may be nil.
func NewAutoBackup(backupFn BackupFunc, interval time.Duration, log *zap.Logger) *AutoBackup {
	if interval <= 0 {
		interval = DefaultBackupInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AutoBackup{
		backupFn: backupFn,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the loop. The first backup happens one interval after
// start, not immediately.
func (a *AutoBackup) Start() {
	go a.run()
}

// Close stops the loop and waits for it to exit.
func (a *AutoBackup) Close() {
	a.closeOnce.Do(func() {
		close(a.stopChan)
		<-a.doneChan
	})
}

func (a *AutoBackup) run() {
	defer close(a.doneChan)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopChan:
			return
		case <-ticker.C:
			name, err := a.backupFn()
			if err != nil {
				a.log.Warn("scheduled backup failed", zap.Error(err))
				continue
			}
			a.log.Info("scheduled backup written", zap.String("backup", name))
		}
	}
}
