package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sambeau/sauce/config"
	"github.com/sambeau/sauce/pkg/sauce"
)

// debounce is how long the watcher waits for rapid writes to settle.
const debounce = 100 * time.Millisecond

// Watcher reloads a document when its file changes and reports the keys
// that changed since the previous load.
type Watcher struct {
	path   string
	shell  config.ShellConfig
	logger *slog.Logger

	mu  sync.Mutex
	doc *sauce.AwareObject

	// OnChange, when set, receives the changed keys after each reload.
	OnChange func(keys []string)
}

// NewWatcher loads the document at path and returns a watcher for it.
func NewWatcher(path string, shell config.ShellConfig, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	doc, err := readDocument(abs, shell)
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:   abs,
		shell:  shell,
		logger: logger,
		doc:    sauce.NewAwareObject(doc),
	}, nil
}

// Document returns the current state of the watched document.
func (w *Watcher) Document() *sauce.AwareObject {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc
}

// Reload reads the file again, applies the difference to the document and
// returns the keys that changed, in the order they were touched.
func (w *Watcher) Reload() ([]string, error) {
	next, err := readDocument(w.path, w.shell)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	updates := sauce.NewObject(nil)
	for key, value := range next.All() {
		old, ok := w.doc.Lookup(key)
		if !ok || !sameValue(old, value) {
			updates.Set(key, value)
		}
	}
	var removed []string
	for key := range w.doc.All() {
		if !next.HasKey(key) {
			removed = append(removed, key)
		}
	}

	w.doc.MergeInPlace(updates)
	for _, key := range removed {
		w.doc.Unset(key)
	}

	changed := w.doc.Changed()
	w.doc.ResetChanges()

	keys := make([]string, 0, changed.Count())
	for _, k := range changed.All() {
		keys = append(keys, k.(string))
	}
	return keys, nil
}

// sameValue compares two document values by their JSON form.
func sameValue(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}

// Run watches the file until ctx is done. The directory is watched rather
// than the file so editors that replace the file on save are followed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	w.logger.Info("watching", "file", w.path, "keys", w.Document().Count())

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			keys, err := w.Reload()
			if err != nil {
				w.logger.Warn("reload failed", "file", w.path, "err", err)
				continue
			}
			if len(keys) == 0 {
				w.logger.Debug("no changes", "file", w.path)
				continue
			}
			w.logger.Info("changed", "file", w.path, "keys", keys)
			if w.OnChange != nil {
				w.OnChange(keys)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "err", err)
		}
	}
}
