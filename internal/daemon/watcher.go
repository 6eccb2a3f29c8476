// Package daemon holds the background workers that run alongside the
// store: a filesystem watcher that reloads the store when another
// process rewrites the blob, and a timed auto-backup loop.
package daemon

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounceInterval is how long to wait after the last change
// before triggering a reload.
const DefaultDebounceInterval = 100 * time.Millisecond

// ReloadFunc is called when the store blob has changed on disk.
type ReloadFunc func() error

// Watcher monitors the store blob and triggers a debounced reload when
// it is rewritten by another process. The store's own writes also fire
// events; reloading after those is redundant but harmless, so no
// attempt is made to tell them apart.
type Watcher struct {
	dir      string
	filename string
	reloadFn ReloadFunc
	log      *zap.Logger
	debounce time.Duration

	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending *time.Timer
}

// NewWatcher creates a watcher for the blob at path. reloadFn is called
// after changes settle. log may be nil.
func NewWatcher(path string, reloadFn ReloadFunc, log *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		dir:      filepath.Dir(path),
		filename: filepath.Base(path),
		reloadFn: reloadFn,
		log:      log,
		debounce: DefaultDebounceInterval,
		watcher:  fsWatcher,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

// Start begins watching. The containing directory is watched rather
// than the file itself because atomic rewrites replace the inode.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Debug("watching store blob",
		zap.String("dir", w.dir), zap.String("file", w.filename))

	go w.processEvents()
	return nil
}

// Close stops the watcher and waits for event processing to finish.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()

		w.mu.Lock()
		if w.pending != nil {
			w.pending.Stop()
			w.pending = nil
		}
		w.mu.Unlock()

		<-w.doneChan
	})
}

func (w *Watcher) processEvents() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.filename {
		return
	}
	// Rename covers the temp-file rename an atomic rewrite ends with.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.log.Debug("store blob changed", zap.String("op", event.Op.String()))
	w.scheduleReload()
}

// scheduleReload debounces: each new event resets the timer, so the
// reload runs once after changes settle.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.doReload)
}

func (w *Watcher) doReload() {
	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()

	if err := w.reloadFn(); err != nil {
		w.log.Error("store reload failed", zap.Error(err))
		return
	}
	w.log.Info("store reloaded after external change")
}
