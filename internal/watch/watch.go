// Package watch re-runs a localization pass when the source documentation
// tree changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docloc/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a docs root and its chapter directories. The destination
// directory is never watched, so passes do not retrigger themselves.
type Watcher struct {
	root     string
	exclude  string
	suffix   string
	index    string
	debounce time.Duration
	run      func() error
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithSuffix sets which chapter files are relevant (default ".md").
func WithSuffix(suffix string) Option {
	return func(w *Watcher) { w.suffix = suffix }
}

// WithIndexFile sets the relevant top-level file (default "index.md").
func WithIndexFile(name string) Option {
	return func(w *Watcher) { w.index = name }
}

// New creates a watcher on root that ignores the exclude subdirectory and
// calls run after each settled batch of changes.
func New(root, exclude string, run func() error, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to resolve docs root: %w", err)
	}

	w := &Watcher{
		root:     absRoot,
		exclude:  exclude,
		suffix:   ".md",
		index:    "index.md",
		debounce: DefaultDebounce,
		run:      run,
		watcher:  fw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until ctx is cancelled. Passes execute one at a time on the
// calling goroutine; a failed pass is logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addTree(); err != nil {
		return err
	}
	slog.Info("Watching documentation tree", logfields.Path(w.root))

	// Since Go 1.23 Reset never delivers a stale tick, so no draining is needed.
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			w.trackNewChapter(event)
			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.run(); err != nil {
				slog.Error("Localization pass failed", logfields.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// addTree watches the root and every chapter directory except the excluded one.
func (w *Watcher) addTree() error {
	if err := w.watcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", w.root, err)
	}
	for _, e := range entries {
		if e.Name() == w.exclude {
			continue
		}
		dir := filepath.Join(w.root, e.Name())
		if !isChapterDir(dir, e) {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return nil
}

// isChapterDir reports whether a root entry is a directory, following
// symlinks like the localizer does.
func isChapterDir(path string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// trackNewChapter starts watching a chapter directory created after startup.
func (w *Watcher) trackNewChapter(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) || filepath.Dir(event.Name) != w.root {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(event.Name); err != nil {
		slog.Warn("Failed to watch new chapter", logfields.Path(event.Name), logfields.Error(err))
	}
}

// relevant reports whether an event can change the localized output.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if parts[0] == w.exclude {
		return false
	}
	switch len(parts) {
	case 1:
		if parts[0] == w.index {
			return true
		}
		// a new chapter is mirrored even while empty
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(event.Name)
			return err == nil && info.IsDir()
		}
		return false
	case 2:
		return strings.HasSuffix(parts[1], w.suffix)
	}
	return false
}
