package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ark-forge/mcp-eu-ai-act/config"
	"github.com/ark-forge/mcp-eu-ai-act/hasher"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
	"github.com/ark-forge/mcp-eu-ai-act/scanner"
	"github.com/ark-forge/mcp-eu-ai-act/utils"
)

// watcher reruns a command after project sources change. Events are
// debounced, and a rerun is skipped when the fingerprint of every scanned
// file is unchanged.
type watcher struct {
	root     string
	debounce time.Duration
	matcher  *utils.PatternMatcher
	run      func(ctx context.Context) error
	onError  func(err error)

	last string
}

func newWatcher(root string, cfg *config.Config) *watcher {
	return &watcher{
		root:     root,
		debounce: cfg.WatchDebounce,
		matcher:  utils.NewPatternMatcher(cfg.IncludePatterns, cfg.ExcludePatterns),
	}
}

// fingerprint hashes the relative path and content of every file a scan
// would read.
func (w *watcher) fingerprint(ctx context.Context) (string, error) {
	d := hasher.New()
	err := scanner.Walk(ctx, w.root, w.matcher, func(rec scanner.FileRecord) error {
		d.WriteString(rec.Rel)
		if err := d.WriteFile(rec.Path); err != nil {
			logger.Debugf("Fingerprint skipped %s: %v", rec.Path, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return d.Sum(), nil
}

// Run blocks until ctx is done. The caller has already produced the first
// result; Run only reacts to changes after it starts.
func (w *watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addWatchRecursive(fw, w.root); err != nil {
		return err
	}
	if w.last, err = w.fingerprint(ctx); err != nil {
		return err
	}
	logger.Infof("Watching %s for changes", w.root)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && !skippedDir(ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatchRecursive(fw, ev.Name); err != nil {
						logger.Warnf("Failed to watch %s: %v", ev.Name, err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			w.trigger(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watch error: %v", err)
		}
	}
}

func (w *watcher) trigger(ctx context.Context) {
	sum, err := w.fingerprint(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warnf("Failed to fingerprint %s: %v", w.root, err)
		}
		return
	}
	if sum == w.last {
		logger.Debugf("No source changes under %s", w.root)
		return
	}
	w.last = sum
	logger.Infof("Sources changed under %s, rescanning", w.root)
	if err := w.run(ctx); err != nil && w.onError != nil {
		w.onError(err)
	}
}

// addWatchRecursive watches dir and every directory below it that a scan
// would enter.
func addWatchRecursive(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skippedDir(path) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func skippedDir(path string) bool {
	_, skip := scanner.SkipDirs[filepath.Base(path)]
	return skip
}
