// # internal/core/watcher/watcher.go
package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"docfixer/internal/shared/observability"
	"docfixer/internal/shared/util"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watcher reports changes to a set of input files and to files with chosen
// extensions below a set of directory trees. Changes are batched until the
// debounce interval passes without new events.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	debounce     time.Duration
	excludeFiles []glob.Glob
	extFilters   map[string]bool
	files        map[string]bool
	trees        []string
	onChange     func([]string)
	callbackMu   sync.Mutex

	pending   map[string]time.Time
	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewWatcher(debounce time.Duration, extensions, excludeFiles []string, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}

	compiledFiles := make([]glob.Glob, 0, len(excludeFiles))
	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		compiledFiles = append(compiledFiles, g)
	}

	extFilter := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		extFilter[normalized] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:    fsw,
		debounce:     debounce,
		excludeFiles: compiledFiles,
		extFilters:   extFilter,
		files:        make(map[string]bool),
		onChange:     onChange,
		pending:      make(map[string]time.Time),
	}, nil
}

// Watch starts watching. files are matched exactly, whatever their
// extension; trees are watched recursively for files passing the filters.
func (w *Watcher) Watch(files, trees []string) error {
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		// Editors replace files on save, so watch the directory.
		if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
		w.files[abs] = true
	}
	for _, root := range trees {
		abs, err := filepath.Abs(root)
		if err != nil {
			return err
		}
		if err := w.watchRecursive(abs); err != nil {
			return err
		}
		w.trees = append(w.trees, abs)
	}

	go w.run()
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Op&fsnotify.Create == fsnotify.Create && w.inTree(event.Name) {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if err := w.watchRecursive(event.Name); err != nil {
						slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
					} else {
						w.scheduleChange(event.Name)
					}
					continue
				}
			}

			if !w.relevant(event.Name) {
				continue
			}

			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create ||
				event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) inTree(path string) bool {
	for _, root := range w.trees {
		if util.HasPathPrefix(path, root) {
			return true
		}
	}
	return false
}

func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.inTree(path) {
		return false
	}

	base := strings.ToLower(filepath.Base(path))
	if len(w.extFilters) > 0 && !w.extFilters[filepath.Ext(base)] {
		return false
	}
	for _, g := range w.excludeFiles {
		if g.Match(base) {
			return false
		}
	}
	return true
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.flushChanges()
	})
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]time.Time)
	w.pendingMu.Unlock()

	if len(paths) > 0 {
		w.callbackMu.Lock()
		defer w.callbackMu.Unlock()
		w.onChange(paths)
	}
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}
