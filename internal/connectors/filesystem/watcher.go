// Package filesystem watches a directory tree and reports file changes.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lexdraft/internal/logger"
)

// DefaultDebounce is how long Run waits after the last change before
// handing a batch to the handler.
const DefaultDebounce = 500 * time.Millisecond

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// ChangeType classifies a file change.
type ChangeType int

const (
	// ChangeCreated is a new file.
	ChangeCreated ChangeType = iota
	// ChangeUpdated is a modified file.
	ChangeUpdated
	// ChangeDeleted is a removed or renamed-away file.
	ChangeDeleted
)

func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is one file event under the watched root.
type Change struct {
	Type ChangeType
	Path string
}

// Watcher reports changes to regular, non-hidden files under a root
// directory. Subdirectories created while watching are picked up.
type Watcher struct {
	root     string
	debounce time.Duration

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a watcher for root. A debounce of zero uses DefaultDebounce.
func New(root string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{root: root, debounce: debounce}
}

// Watch starts watching and returns a channel of changes.
// The channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}

	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.addRecursive(fsw, w.root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.watchers = append(w.watchers, fsw)

	out := make(chan Change)
	go w.loop(ctx, fsw, out)
	return out, nil
}

// Run watches until ctx is cancelled, calling handler with batches of
// created or updated paths once changes settle. Deletions are not passed
// on; entries already ingested stay in the knowledge base.
// Handler errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, handler func(ctx context.Context, paths []string) error) error {
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if c.Type == ChangeDeleted {
				logger.Debug("Ignoring deletion of %s", c.Path)
				delete(pending, c.Path)
				continue
			}
			pending[c.Path] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			if err := handler(ctx, paths); err != nil {
				logger.Warn("Watch handler failed: %v", err)
			}
		}
	}
}

// Close stops all watches started by this watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.closed = true
	var errs []error
	for _, fsw := range w.watchers {
		errs = append(errs, fsw.Close())
	}
	w.watchers = nil
	return errors.Join(errs...)
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- Change) {
	defer close(out)
	defer fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !w.hidden(ev.Name) {
					if err := w.addRecursive(fsw, ev.Name); err != nil {
						logger.Warn("Cannot watch %s: %v", ev.Name, err)
					}
				}
			}

			change := w.handleFsEvent(ev)
			if change == nil {
				continue
			}
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleFsEvent maps an fsnotify event to a Change, or nil when the event
// concerns a directory, a hidden path, or only metadata.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) *Change {
	if w.hidden(ev.Name) {
		return nil
	}

	switch {
	case ev.Has(fsnotify.Create):
		if !isRegular(ev.Name) {
			return nil
		}
		return &Change{Type: ChangeCreated, Path: ev.Name}
	case ev.Has(fsnotify.Write):
		if !isRegular(ev.Name) {
			return nil
		}
		return &Change{Type: ChangeUpdated, Path: ev.Name}
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return &Change{Type: ChangeDeleted, Path: ev.Name}
	default:
		return nil
	}
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// hidden reports whether path is hidden relative to the watched root.
func (w *Watcher) hidden(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	return isHidden(rel)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isHidden reports whether any component of path starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
