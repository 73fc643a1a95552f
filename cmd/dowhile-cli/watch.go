package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow batches the rapid save events editors emit when writing a
// file (truncate, write, chmod) into a single re-expansion.
const debounceWindow = 300 * time.Millisecond

// watchLoop re-expands each job whenever its source changes. Directories
// are watched rather than files so atomic saves (write to temp, rename
// over) keep working.
func (a *app) watchLoop(ctx context.Context, jobs []job) error {
	for _, j := range jobs {
		if j.stdin {
			return errors.New("cannot watch standard input")
		}
	}

	// First pass up front so prompts happen before the loop starts and
	// outputs exist from the first save onward.
	for _, j := range jobs {
		if err := a.expand(ctx, j); err != nil {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	byPath := make(map[string]job, len(jobs))
	dirs := make(map[string]struct{})
	for _, j := range jobs {
		byPath[filepath.Clean(j.source)] = j
		dirs[filepath.Dir(j.source)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	if !a.quiet {
		a.status.Printfln("watching %d file(s), interrupt to stop", len(jobs))
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceWindow / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, tracked := byPath[path]; tracked {
				pending[path] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if !a.quiet {
				a.problem.Printfln("watch: %v", err)
			}

		case <-ticker.C:
			for path, stamp := range pending {
				if time.Since(stamp) < debounceWindow {
					continue
				}
				delete(pending, path)
				// Keep watching after a bad edit; the next save gets
				// another chance.
				if err := a.expand(ctx, byPath[path]); err != nil && !a.quiet {
					a.problem.Printfln("%v", err)
				}
			}
		}
	}
}
