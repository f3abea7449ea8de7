package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pinpad/internal/config"
	"pinpad/internal/constants"
	apperrors "pinpad/internal/errors"
)

// ConfigWatcher reloads the configuration file when it changes on disk
type ConfigWatcher struct {
	loader     config.ManagerInterface
	onReload   func(*config.Config)
	dispatch   func(func())
	debounce   time.Duration
	mu         sync.Mutex
	fsw        *fsnotify.Watcher
	stopChan   chan struct{}
	reloadChan chan struct{}                            // Debounced reload requests
	stopped    bool                                     // Track if watcher is already stopped
	debugPrint func(format string, args ...interface{}) // Debug function
}

// NewConfigWatcher creates a new config watcher. onReload runs through
// dispatch, which should marshal onto the UI goroutine (fyne.Do).
func NewConfigWatcher(loader config.ManagerInterface, onReload func(*config.Config), dispatch func(func()), debugPrint func(format string, args ...interface{})) *ConfigWatcher {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &ConfigWatcher{
		loader:     loader,
		onReload:   onReload,
		dispatch:   dispatch,
		debounce:   constants.WatcherDebounce,
		stopped:    true,
		debugPrint: debugPrint,
	}
}

// Start begins watching the directory holding the configuration file.
// Editors often replace the file rather than write it, so the directory is
// watched and events are filtered by name.
func (cw *ConfigWatcher) Start() error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.stopped {
		return nil // Already running
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.NewWatcherError("start", cw.loader.Path(), "cannot create file watcher", err)
	}
	dir := filepath.Dir(cw.loader.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return apperrors.NewWatcherError("start", dir, "cannot watch config directory", err)
	}

	cw.fsw = fsw
	cw.stopped = false
	cw.stopChan = make(chan struct{})
	cw.reloadChan = make(chan struct{}, constants.WatcherBufferSize)

	stopChan := cw.stopChan
	reloadChan := cw.reloadChan
	go cw.watchLoop(fsw, stopChan, reloadChan)
	go cw.reloadLoop(stopChan, reloadChan)

	cw.debugPrint("Watching config file %s", cw.loader.Path())
	return nil
}

// Stop stops the config watcher
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.stopped {
		return // Already stopped, do nothing
	}
	cw.stopped = true
	close(cw.stopChan)
	cw.fsw.Close()
	cw.fsw = nil
}

func (cw *ConfigWatcher) watchLoop(fsw *fsnotify.Watcher, stopChan <-chan struct{}, reloadChan chan<- struct{}) {
	target := filepath.Clean(cw.loader.Path())

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			cw.debugPrint("Config event: %s", ev)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(cw.debounce, func() {
				select {
				case reloadChan <- struct{}{}:
				default:
					// Channel full, a reload is already pending
					cw.debugPrint("Reload channel full, skipping")
				}
			})
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			cw.debugPrint("Config watcher error: %v", err)
		case <-stopChan:
			return
		}
	}
}

func (cw *ConfigWatcher) reloadLoop(stopChan <-chan struct{}, reloadChan <-chan struct{}) {
	for {
		select {
		case <-reloadChan:
			cfg, err := cw.loader.Load()
			if err != nil {
				// Keep running with the previous configuration
				cw.debugPrint("Config reload failed: %v", err)
				continue
			}
			cw.debugPrint("Config reloaded")
			cw.dispatch(func() {
				cw.onReload(cfg)
			})
		case <-stopChan:
			return
		}
	}
}
