// Package watch reports changes to a fixed set of input files.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 300 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher watches the parent directories of its files, so files replaced by
// editors through rename keep being tracked.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	pending  map[string]time.Time
	debounce time.Duration
	logger   *zap.Logger
}

// New creates a Watcher for files. Call Run to start receiving changes.
func New(files []string, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		pending:  make(map[string]time.Time),
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", zap.String("dir", dir))
	}
	w.fsw = fsw
	return w, nil
}

// Run blocks until ctx is done, calling onChange with the sorted set of
// files that changed once they have settled. The watcher is closed when Run
// returns.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.fsw.Close()

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", zap.Error(err))

		case now := <-ticker.C:
			if changed := w.settled(now); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if _, ok := w.files[event.Name]; !ok {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}
	w.logger.Debug("Input changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
	w.pending[event.Name] = time.Now()
}

func (w *Watcher) settled(now time.Time) []string {
	var changed []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			changed = append(changed, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(changed)
	return changed
}
