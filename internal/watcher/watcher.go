// Package watcher observes source directories for TypeScript/JavaScript
// changes and reports them in debounced batches: rapid bursts of events,
// such as an editor save or a branch switch, collapse into one callback.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changed files are reported.
const DefaultDebounce = 500 * time.Millisecond

// sourceExtensions are the file extensions worth re-extracting.
var sourceExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".mts": true, ".cts": true,
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
}

// SourceWatcher reports batches of changed source files.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	changed map[string]bool
	timer   *time.Timer

	stopOnce sync.Once
	done     chan struct{}
}

// New creates a watcher over the given directories, watching each tree
// recursively. A non-positive debounce falls back to DefaultDebounce.
func New(dirs []string, debounce time.Duration) (*SourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	sw := &SourceWatcher{
		watcher:  fsw,
		debounce: debounce,
		changed:  make(map[string]bool),
		done:     make(chan struct{}),
	}
	for _, dir := range dirs {
		if err := sw.addRecursively(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return sw, nil
}

// Run watches until the context is cancelled, invoking callback with each
// debounced batch of changed files. It blocks.
func (sw *SourceWatcher) Run(ctx context.Context, callback func(files []string)) {
	defer close(sw.done)

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			sw.stopTimer()
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			// New directories join the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := sw.addRecursively(event.Name); err != nil {
						log.Printf("failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !watchableEvent(event) {
				continue
			}
			sw.mu.Lock()
			sw.changed[event.Name] = true
			sw.resetTimerLocked(fire)
			sw.mu.Unlock()

		case <-fire:
			if files := sw.drain(); len(files) > 0 && callback != nil {
				callback(files)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		}
	}
}

// Close releases the underlying fsnotify watcher. Safe to call more than
// once; Run must have returned or be cancelled concurrently.
func (sw *SourceWatcher) Close() error {
	var err error
	sw.stopOnce.Do(func() {
		err = sw.watcher.Close()
	})
	return err
}

// drain empties the accumulated change set.
func (sw *SourceWatcher) drain() []string {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if len(sw.changed) == 0 {
		return nil
	}
	files := make([]string, 0, len(sw.changed))
	for file := range sw.changed {
		files = append(files, file)
	}
	sw.changed = make(map[string]bool)
	return files
}

func (sw *SourceWatcher) resetTimerLocked(fire chan struct{}) {
	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(sw.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (sw *SourceWatcher) stopTimer() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.timer != nil {
		sw.timer.Stop()
	}
}

// addRecursively adds a directory and all its subdirectories, skipping the
// trees that never hold project sources.
func (sw *SourceWatcher) addRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if name == "node_modules" || name == ".git" || strings.HasPrefix(name, ".parsee") {
			return filepath.SkipDir
		}
		return sw.watcher.Add(path)
	})
}

// watchableEvent filters to write/create/rename/remove of source files.
func watchableEvent(event fsnotify.Event) bool {
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	if event.Op&ops == 0 {
		return false
	}
	return sourceExtensions[strings.ToLower(filepath.Ext(event.Name))]
}
