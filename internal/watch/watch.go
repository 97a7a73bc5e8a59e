// Package watch regenerates tables of contents whenever their files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/itsmostafa/mktoc/internal/mdfile"
	"github.com/itsmostafa/mktoc/internal/toc"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Config   toc.Config
	Debounce time.Duration
	Logger   *slog.Logger

	// OnUpdate is called after every regeneration attempt that succeeded.
	OnUpdate func(*mdfile.Result)
	// OnError is called when a file could not be read or written.
	OnError func(path string, err error)
}

// Watcher keeps a set of Markdown files up to date.
type Watcher struct {
	paths []string
	files map[string]bool
	gen   *toc.Generator
	opts  Options
	log   *slog.Logger
}

// New creates a Watcher for paths. Paths are made absolute so they match
// the names fsnotify reports.
func New(paths []string, gen *toc.Generator, opts Options) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	w := &Watcher{
		files: make(map[string]bool, len(paths)),
		gen:   gen,
		opts:  opts,
		log:   log,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		if !w.files[abs] {
			w.files[abs] = true
			w.paths = append(w.paths, abs)
		}
	}
	return w, nil
}

// Paths returns the absolute paths being watched.
func (w *Watcher) Paths() []string {
	return slices.Clone(w.paths)
}

// Run regenerates every file once, then again after each change, until ctx
// is cancelled. Files are watched through their parent directories so
// editors that replace a file by renaming keep being tracked.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]bool)
	for _, p := range w.paths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	for _, p := range w.paths {
		w.update(p)
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watch stopped")
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !w.files[name] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			w.log.Debug("file changed", "path", name, "op", ev.Op.String())
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			for _, p := range w.paths {
				if pending[p] {
					w.update(p)
				}
			}
			clear(pending)
		}
	}
}

func (w *Watcher) update(path string) {
	result, err := mdfile.Update(path, w.opts.Config, w.gen)
	if err != nil {
		w.log.Error("failed to update", "path", path, "error", err)
		if w.opts.OnError != nil {
			w.opts.OnError(path, err)
		}
		return
	}
	if result.Changed {
		w.log.Info("table of contents updated", "path", path)
	}
	if w.opts.OnUpdate != nil {
		w.opts.OnUpdate(result)
	}
}
