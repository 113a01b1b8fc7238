package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"time"

	"prim/internal/config"
	"prim/internal/trace"
	"prim/internal/watch"
)

// WatchDelay is how long the watch loop waits for a burst of writes to
// settle before reformatting.
var WatchDelay = 150 * time.Millisecond

// Watch formats req.Paths once, then reformats changed files until ctx is
// done. report receives the results of every round. Editing a config file
// drops cached options and reformats every file.
func Watch(ctx context.Context, req FormatRequest, report func([]FormatResult)) error {
	results, err := FormatPaths(ctx, req)
	if err != nil && !errors.Is(err, ErrNoSourceFiles) {
		return err
	}
	report(results)

	w, err := watch.New(func(path string) bool {
		return IsSource(path) || isConfigFile(path)
	})
	if err != nil {
		return err
	}
	defer w.Close()
	for _, p := range req.Paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	res, err := newResolver(req.Options)
	if err != nil {
		return err
	}
	tracer := trace.FromContext(ctx)
	batches := watch.Debounce(ctx, w.Events(), WatchDelay)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			trace.Error(tracer, "watch", err, 0)
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			files := existing(batch)
			if slices.ContainsFunc(batch, isConfigFile) {
				if res, err = newResolver(req.Options); err != nil {
					return err
				}
				if files, err = CollectFiles(ctx, req.Paths); err != nil && !errors.Is(err, ErrNoSourceFiles) {
					return err
				}
			}
			if len(files) == 0 {
				continue
			}
			trace.Point(tracer, trace.ScopeDriver, "watch", "batch", 0)
			results, err := formatFiles(ctx, files, req, res)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			report(results)
		}
	}
}

func isConfigFile(path string) bool {
	return slices.Contains(config.FileNames, filepath.Base(path))
}

// existing keeps the source files of batch that are still regular files.
func existing(batch []string) []string {
	out := make([]string, 0, len(batch))
	for _, p := range batch {
		if !IsSource(p) {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			out = append(out, p)
		}
	}
	return out
}
