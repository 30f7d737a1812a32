package syncdir

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce batches bursts of filesystem events into one mirror run.
const debounce = 500 * time.Millisecond

// Watch mirrors src into dst whenever the source tree changes, until ctx
// is cancelled. It runs one full mirror up front so the destination is
// consistent before the first event.
func Watch(ctx context.Context, src, dst string, ignore []string) error {
	if _, err := Run(src, dst, ignore); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addDirs(watcher, src); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch before events inside
			// them can be seen.
			if ev.Op.Has(fsnotify.Create) {
				addDirs(watcher, ev.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Warning: watch error: %v", err)

		case <-fire:
			timer = nil
			if _, err := Run(src, dst, ignore); err != nil {
				log.Printf("Warning: mirror failed: %v", err)
			}
		}
	}
}

// addDirs registers path and every directory below it.
func addDirs(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // tree may be changing under us
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
