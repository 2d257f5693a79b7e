// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch re-runs a callback when source files change, debouncing
// bursts of filesystem events into a single run.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Paths      []string      // Files or directories to watch; directories recursively
	Ignore     []string      // Directories whose events are ignored, such as the output root
	Extensions []string      // Only files with these extensions trigger; empty means any
	Debounce   time.Duration // Defaults to DefaultDebounce
	Logger     *zap.SugaredLogger
}

// Watcher watches source paths for changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	ignore   []string
	exts     map[string]bool
	debounce time.Duration
	log      *zap.SugaredLogger
}

// New creates a Watcher over opts.Paths.
func New(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	w := &Watcher{
		watcher:  fw,
		exts:     make(map[string]bool),
		debounce: opts.Debounce,
		log:      opts.Logger,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.log == nil {
		w.log = zap.NewNop().Sugar()
	}
	for _, ext := range opts.Extensions {
		w.exts["."+strings.TrimPrefix(ext, ".")] = true
	}
	for _, dir := range opts.Ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}

	for _, p := range opts.Paths {
		if err := w.add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// add watches path; a directory is watched together with every
// subdirectory that is not ignored.
func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}
	if !info.IsDir() {
		return errors.Wrapf(w.watcher.Add(abs), "watching %s", path)
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if w.ignored(p) || (p != abs && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return errors.Wrapf(err, "watching %s", p)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || w.ignored(ev.Name) {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[filepath.Ext(ev.Name)]
}

// Run blocks until ctx is done, calling onChange once per burst of relevant
// events. Callback errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !w.ignored(ev.Name) {
					if err := w.add(ev.Name); err != nil {
						w.log.Warnw("watch: cannot watch new directory", "dir", ev.Name, "error", err)
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debugw("watch: change detected", "file", ev.Name, "op", ev.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.log.Infow("watch: regenerating")
			if err := onChange(ctx); err != nil {
				w.log.Errorw("watch: regeneration failed", "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch: watcher error", "error", err)
		}
	}
}
