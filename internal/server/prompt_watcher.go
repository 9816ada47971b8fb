package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumelift/internal/config"
	"resumelift/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// PromptWatcher watches prompt template files and reloads them into the
// running configuration when they change on disk. Editors and config
// management tools often replace files atomically, so the parent
// directories are watched as well as the files themselves.
type PromptWatcher struct {
	config   *config.Config
	logger   *errors.Logger
	watcher  *fsnotify.Watcher
	files    map[string]time.Time // watched file -> last seen modtime
	dirs     map[string]bool
	debounce time.Duration
	reloadCh chan struct{}
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	onReload func(error) // test hook, called after each reload attempt
}

// NewPromptWatcher creates a watcher for the configured prompt files.
// Returns nil without error when no prompt files are configured.
func NewPromptWatcher(cfg *config.Config, logger *errors.Logger) (*PromptWatcher, error) {
	paths := cfg.PromptFilePaths()
	if len(paths) == 0 {
		return nil, nil
	}

	debounce := cfg.AI.PromptWatcher.DebounceDelay
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	pw := &PromptWatcher{
		config:   cfg,
		logger:   logger,
		files:    make(map[string]time.Time, len(paths)),
		dirs:     make(map[string]bool),
		debounce: debounce,
		reloadCh: make(chan struct{}, 1),
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve prompt file path %q: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("prompt file %q not accessible: %w", abs, err)
		}
		pw.files[abs] = info.ModTime()
		pw.dirs[filepath.Dir(abs)] = true
	}

	return pw, nil
}

// Start begins watching for prompt file changes
func (pw *PromptWatcher) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return fmt.Errorf("prompt watcher already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	pw.watcher = watcher

	for dir := range pw.dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory %q: %w", dir, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	pw.cancel = cancel
	pw.running = true

	pw.wg.Add(2)
	go pw.watchLoop(ctx)
	go pw.reloadLoop(ctx)

	pw.logger.Info("Prompt file watcher started",
		"files", len(pw.files),
		"debounce", pw.debounce)
	return nil
}

// Stop stops the watcher and waits for its goroutines to exit
func (pw *PromptWatcher) Stop() {
	pw.mu.Lock()
	if !pw.running {
		pw.mu.Unlock()
		return
	}
	pw.running = false
	pw.cancel()
	pw.watcher.Close()
	pw.mu.Unlock()

	pw.wg.Wait()
	pw.logger.Info("Prompt file watcher stopped")
}

// IsRunning reports whether the watcher is active
func (pw *PromptWatcher) IsRunning() bool {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	return pw.running
}

// GetWatchedFiles returns the absolute paths being watched
func (pw *PromptWatcher) GetWatchedFiles() []string {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	files := make([]string, 0, len(pw.files))
	for path := range pw.files {
		files = append(files, path)
	}
	return files
}

// watchLoop consumes filesystem events and schedules debounced reloads
func (pw *PromptWatcher) watchLoop(ctx context.Context) {
	defer pw.wg.Done()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if !pw.isRelevantEvent(event) {
				continue
			}
			pw.logger.Debug("Prompt file event", "file", event.Name, "op", event.Op.String())

			// Reset the debounce timer so rapid successive writes
			// trigger a single reload
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(pw.debounce, func() {
				select {
				case pw.reloadCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			pw.logger.LogError(err, "Prompt file watcher error")
		}
	}
}

// isRelevantEvent reports whether an event touches a watched prompt file
func (pw *PromptWatcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, watched := pw.files[abs]
	return watched
}

// reloadLoop performs the actual prompt reloads
func (pw *PromptWatcher) reloadLoop(ctx context.Context) {
	defer pw.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-pw.reloadCh:
			pw.reloadIfChanged()
		}
	}
}

// reloadIfChanged reloads prompts when at least one watched file has a
// newer modtime than last observed. A reload failure keeps the
// previously loaded prompts in place.
func (pw *PromptWatcher) reloadIfChanged() {
	pw.mu.Lock()
	changed := false
	for path, lastMod := range pw.files {
		info, err := os.Stat(path)
		if err != nil {
			// File may be mid-replacement, try again on the next event
			pw.logger.Debug("Prompt file not readable during reload check", "file", path, "error", err)
			continue
		}
		if info.ModTime() != lastMod {
			pw.files[path] = info.ModTime()
			changed = true
		}
	}
	pw.mu.Unlock()

	if !changed {
		return
	}

	err := pw.config.ReloadPrompts()
	if err != nil {
		pw.logger.LogError(err, "Failed to reload prompt files, keeping previous prompts")
	} else {
		pw.logger.Info("Prompt files reloaded")
	}
	if pw.onReload != nil {
		pw.onReload(err)
	}
}
