package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the configuration file for changes and triggers
// reloads. It debounces rapid event bursts (editors often emit several
// write/rename events per save).
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// DefaultDebounceInterval is the time to wait after the last file event
// before triggering a reload.
const DefaultDebounceInterval = 200 * time.Millisecond

// NewFileWatcher creates a watcher for the given configuration file.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watcher requires a configuration file path")
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "config.watcher"),
		path:     path,
		debounce: DefaultDebounceInterval,
		stopCh:   make(chan struct{}),
	}, nil
}

// Watch starts watching for changes to the configuration file. On each
// (debounced) change it reloads the configuration and invokes onReload with
// the new instance. Blocks until the context is cancelled or Stop is called.
func (fw *FileWatcher) Watch(ctx context.Context, onReload func(*Config)) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
	}()

	// Watch the directory rather than the file itself: editors that save via
	// rename replace the inode, which would silently drop a file-level watch.
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	fw.logger.Info("config watcher started",
		"path", fw.path,
		"debounce_ms", fw.debounce.Milliseconds(),
	)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("config watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("config file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			if timer == nil {
				timer = time.NewTimer(fw.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(fw.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			fw.reload(onReload)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("config watcher error", "error", err)
		}
	}
}

// reload reloads the configuration and notifies the callback.
// A failed reload keeps the previous configuration in place.
func (fw *FileWatcher) reload(onReload func(*Config)) {
	cfg, err := ReloadConfig(fw.path)
	if err != nil {
		fw.logger.Error("config reload failed, keeping previous configuration",
			"path", fw.path,
			"error", err,
		)
		return
	}

	fw.logger.Info("configuration reloaded", "path", fw.path)

	if onReload != nil {
		onReload(cfg)
	}
}

// shouldProcessEvent reports whether a file event concerns the watched file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(fw.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// Stop stops the watcher and releases its resources.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		close(fw.stopCh)
	}
	return fw.watcher.Close()
}
