package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ledgerclient/internal/logger"
)

// Watcher reloads the log level from a config file when it changes on
// disk, debouncing rapid successive writes (editors often save in two
// steps). It intentionally does not reload addresses, timeouts, or
// cluster id: those are fixed for the lifetime of a Client, since changing
// them mid-session would require rebuilding the driver and re-registering.
type Watcher struct {
	mu          sync.Mutex
	path        string
	loader      *Loader
	logMgr      *logger.Manager
	watcher     *fsnotify.Watcher
	reloadDelay time.Duration
	lastReload  time.Time
	stop        chan struct{}
}

// NewWatcher starts watching path for changes. logMgr receives level
// updates as they're detected.
func NewWatcher(path string, loader *Loader, logMgr *logger.Manager) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:        path,
		loader:      loader,
		logMgr:      logMgr,
		watcher:     fw,
		reloadDelay: 200 * time.Millisecond,
		stop:        make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debouncedReload()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) debouncedReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if time.Since(w.lastReload) < w.reloadDelay {
		return
	}
	w.lastReload = time.Now()

	if err := w.loader.LoadFile(w.path); err != nil {
		logger.Warnf("config: reload failed: %v", err)
		return
	}
	cfg, err := w.loader.Load()
	if err != nil {
		logger.Warnf("config: reload produced invalid config: %v", err)
		return
	}
	if err := w.logMgr.SetLevel(cfg.Log.Level); err != nil {
		logger.Warnf("config: reload log level %q: %v", cfg.Log.Level, err)
		return
	}
	logger.Infof("config: log level reloaded to %q", cfg.Log.Level)
}

func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}
