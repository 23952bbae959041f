// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-exports scenes when their source files change on disk.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/blendexport/internal/exporter"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher drives a runner from filesystem events. Each changed scene is
// re-exported once its file has been quiet for the debounce window;
// Blender saves touch the file more than once, so raw events cannot be
// acted on directly.
type Watcher struct {
	runner   *exporter.Runner
	scenes   map[string]exporter.Scene // absolute blend path -> scene
	debounce time.Duration
	out      io.Writer

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New builds a watcher over the given scenes. A debounce of zero or less
// uses the default.
func New(runner *exporter.Runner, scenes []exporter.Scene, debounce time.Duration, out io.Writer) (*Watcher, error) {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{
		runner:   runner,
		scenes:   make(map[string]exporter.Scene, len(scenes)),
		debounce: debounce,
		out:      out,
		timers:   make(map[string]*time.Timer),
	}
	for _, s := range scenes {
		abs, err := filepath.Abs(s.BlendPath)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", s.BlendPath, err)
		}
		w.scenes[abs] = s
	}
	return w, nil
}

// Run watches the directories containing the scene sources and blocks
// until ctx is cancelled. Scene files must exist in their directories at
// call time; watching directories rather than files survives the
// rename-over-save that Blender performs.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for path := range w.scenes {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w.out, "watching %d scene(s) in %d directories\n", len(w.scenes), len(dirs))

	changed := make(chan exporter.Scene)
	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil

		case s := <-changed:
			w.runner.ExportScene(s)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if s, tracked := w.scenes[abs]; tracked {
				w.schedule(abs, s, changed)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.out, "watch error: %v\n", err)
		}
	}
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(path string, s exporter.Scene, changed chan<- exporter.Scene) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		changed <- s
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, t := range w.timers {
		t.Stop()
	}
}
