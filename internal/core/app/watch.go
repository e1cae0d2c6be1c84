package app

import (
	"context"
	"log/slog"

	"docfixer/internal/core/config"
	"docfixer/internal/core/watcher"
)

// Loader rebuilds an App from its inputs, picking up contract edits.
type Loader func() (*App, error)

// Watch runs once, then again whenever one of files or an HTML page below
// trees changes, until ctx is done. done receives the outcome of every run.
func Watch(ctx context.Context, cfg *config.Config, files, trees []string, load Loader, done func(Report, error)) error {
	runOnce := func() {
		a, err := load()
		if err != nil {
			done(Report{}, err)
			return
		}
		done(a.Run(ctx))
	}

	w, err := watcher.NewWatcher(
		cfg.Watch.Debounce,
		[]string{".html", ".htm"},
		[]string{".#*", "*~", "*.swp"},
		func(paths []string) {
			if ctx.Err() != nil {
				return
			}
			slog.Info("inputs changed, running again", "files", len(paths))
			runOnce()
		},
	)
	if err != nil {
		return err
	}
	defer w.Close()

	runOnce()
	if err := w.Watch(files, trees); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
