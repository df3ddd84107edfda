// Package watch reports changes to ledger files in a directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls onChange with the path of a ledger file after it has been
// written, once writes have been quiet for the debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
}

// New creates a Watcher on dir. A zero debounce means 300ms.
func New(dir string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce == 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{watcher: w, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !IsLedgerFile(event.Name) {
				continue
			}
			w.trigger(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = path
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	path := w.pending
	w.mu.Unlock()
	if w.onChange != nil {
		w.onChange(path)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// IsLedgerFile reports whether path names a yearly ledger file such as 2019.txt.
func IsLedgerFile(path string) bool {
	name := filepath.Base(path)
	year, ok := strings.CutSuffix(name, ".txt")
	if !ok || len(year) != 4 {
		return false
	}
	_, err := strconv.Atoi(year)
	return err == nil
}
