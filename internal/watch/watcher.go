// Package watch rebuilds the site when input documents change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/snipdoc/internal/logfields"
)

// Config tunes the rebuild debouncer. A burst of filesystem events
// coalesces into a single rebuild after QuietWindow; MaxDelay caps how long
// a steady stream of events can postpone the rebuild.
type Config struct {
	QuietWindow time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig returns the debounce windows used by the CLI.
func DefaultConfig() Config {
	return Config{
		QuietWindow: 300 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// Watcher observes a document root and triggers rebuilds.
type Watcher struct {
	root    string
	cfg     Config
	rebuild func(context.Context) error
}

// New creates a Watcher. rebuild runs on the watcher goroutine; overlapping
// rebuilds cannot happen.
func New(root string, cfg Config, rebuild func(context.Context) error) *Watcher {
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = DefaultConfig().QuietWindow
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultConfig().MaxDelay
	}
	return &Watcher{root: root, cfg: cfg, rebuild: rebuild}
}

// Run watches until the context is cancelled. The initial build is the
// caller's responsibility; Run only reacts to changes.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addRecursive(fw, w.root); err != nil {
		return err
	}

	var (
		quiet    *time.Timer
		quietC   <-chan time.Time
		deadline *time.Timer
		deadC    <-chan time.Time
	)
	stopTimers := func() {
		if quiet != nil {
			quiet.Stop()
			quiet, quietC = nil, nil
		}
		if deadline != nil {
			deadline.Stop()
			deadline, deadC = nil, nil
		}
	}
	defer stopTimers()

	fire := func() {
		stopTimers()
		slog.Info("input changed, rebuilding", slog.String("root", w.root))
		if err := w.rebuild(ctx); err != nil {
			slog.Warn("rebuild failed", logfields.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				// New directories need watching too.
				_ = addRecursive(fw, ev.Name)
			}
			if quiet == nil {
				quiet = time.NewTimer(w.cfg.QuietWindow)
				quietC = quiet.C
			} else {
				quiet.Reset(w.cfg.QuietWindow)
			}
			if deadline == nil {
				deadline = time.NewTimer(w.cfg.MaxDelay)
				deadC = deadline.C
			}

		case <-quietC:
			fire()

		case <-deadC:
			fire()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", logfields.Error(err))
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op.Has(fsnotify.Chmod) && ev.Op&^fsnotify.Chmod == 0 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	return ext == ".md" || ext == ".mdx" || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Remove)
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // entries may vanish mid-walk; skip them
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
