// Package watcher streams filesystem change events for a watched root.
// fsnotify only watches single directories, so the watcher registers
// every subdirectory up front and registers new ones as they appear.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"fexplorer/internal/errors"
)

// EventType classifies a change.
type EventType string

const (
	EventCreate EventType = "create"
	EventModify EventType = "modify"
	EventDelete EventType = "delete"
	EventRename EventType = "rename"
)

// Event is one observed filesystem change.
type Event struct {
	Type      EventType `json:"event"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size,omitempty"`
}

// Watcher follows one root recursively.
type Watcher struct {
	root          string
	includeHidden bool
	fsw           *fsnotify.Watcher
}

// New creates a watcher rooted at root. Hidden directories are skipped
// unless includeHidden is set, matching the walker's policy.
func New(root string, includeHidden bool) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.New(errors.IoError, "creating filesystem watcher", err)
	}

	w := &Watcher{root: root, includeHidden: includeHidden, fsw: fsw}
	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive registers dir and every subdirectory below it.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return errors.New(errors.IoError, "watch root unreadable: "+dir, err)
			}
			// Unreadable subtree: skip it, keep watching the rest.
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		name := filepath.Base(path)
		if path != dir && !w.includeHidden && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.New(errors.IoError, "watching directory: "+path, err)
		}
		return nil
	})
}

// Run delivers events to fn until the context is cancelled. New
// directories are picked up as they are created.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	defer func() { _ = w.fsw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if e, keep := w.translate(ev); keep {
				fn(e)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				return errors.New(errors.IoError, "watch failed", err)
			}
		}
	}
}

// translate maps an fsnotify event onto the event model and registers
// newly created directories.
func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	name := filepath.Base(ev.Name)
	if !w.includeHidden && strings.HasPrefix(name, ".") {
		return Event{}, false
	}

	out := Event{Path: ev.Name, Timestamp: time.Now()}

	switch {
	case ev.Op.Has(fsnotify.Create):
		out.Type = EventCreate
		if info, err := os.Lstat(ev.Name); err == nil {
			if info.IsDir() {
				_ = w.addRecursive(ev.Name)
			} else {
				out.Size = info.Size()
			}
		}
	case ev.Op.Has(fsnotify.Write):
		out.Type = EventModify
		if info, err := os.Lstat(ev.Name); err == nil && !info.IsDir() {
			out.Size = info.Size()
		}
	case ev.Op.Has(fsnotify.Remove):
		out.Type = EventDelete
	case ev.Op.Has(fsnotify.Rename):
		out.Type = EventRename
	default:
		return Event{}, false
	}

	return out, true
}
