// Package fswalk implements the parallel, gitignore-aware directory
// traversal engine. A bounded pool of workers pulls directories from a
// shared queue, applies the ignore policy synchronously, and streams
// typed entries through a bounded channel. Diagnostics travel on a
// separate sideband channel so per-entry failures never pollute results.
package fswalk

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
)

// UnlimitedDepth disables the depth bound.
const UnlimitedDepth = -1

// entryBuffer bounds the producer/consumer channel.
const entryBuffer = 256

// Config parameterizes a walk.
type Config struct {
	// Roots is the ordered list of starting directories. At least one.
	Roots []string
	// MaxDepth bounds entry depth; the root itself is depth 0.
	// Negative means unlimited.
	MaxDepth int
	// FollowSymlinks expands symlinked directories, bounded by a
	// (device, inode) visited set.
	FollowSymlinks bool
	// RespectGitignore applies the .gitignore stack from each root down.
	RespectGitignore bool
	// IncludeHidden admits dot-prefixed entries.
	IncludeHidden bool
	// Threads sizes the worker pool. Zero means DefaultThreads().
	Threads int
	// GlobalIgnore optionally points at a user-global gitignore file.
	GlobalIgnore string
}

// DefaultThreads returns the logical CPU count capped at 8.
func DefaultThreads() int {
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Diagnostic is a recovered per-directory or per-entry failure.
type Diagnostic struct {
	Path string
	Err  error
}

// dirWork is one directory waiting to be read.
type dirWork struct {
	abs    string
	rel    []string // path segments relative to the scan root
	depth  int
	ignore ignoreStack
}

// Walker runs one traversal. Create with New, drive with Start, and
// check Err after the entry channel closes.
type Walker struct {
	cfg     Config
	entries chan entry.Entry
	diags   chan Diagnostic
	queue   *dirQueue
	visited *visitedSet

	mu  sync.Mutex
	err error
}

// New creates a walker for the given config.
func New(cfg Config) *Walker {
	if cfg.Threads <= 0 {
		cfg.Threads = DefaultThreads()
	}
	return &Walker{
		cfg:     cfg,
		entries: make(chan entry.Entry, entryBuffer),
		diags:   make(chan Diagnostic, entryBuffer),
		queue:   newDirQueue(),
		visited: newVisitedSet(),
	}
}

// Start launches the worker pool and returns the entry stream and the
// diagnostic sideband. Both channels close when the walk finishes or the
// context is cancelled; cancellation is a clean close, not an error.
func (w *Walker) Start(ctx context.Context) (<-chan entry.Entry, <-chan Diagnostic) {
	go w.run(ctx)
	return w.entries, w.diags
}

// Err reports whether the walk failed outright. Valid once the entry
// channel has closed. Per-directory failures are diagnostics, not
// errors; the walk only fails when every root was unreadable.
func (w *Walker) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Walker) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *Walker) run(ctx context.Context) {
	defer close(w.entries)
	defer close(w.diags)

	if len(w.cfg.Roots) == 0 {
		w.setErr(errors.Newf(errors.ConfigError, "no roots to walk"))
		return
	}

	global := ignoreStack{}
	if w.cfg.RespectGitignore {
		global = globalPatterns(w.cfg.GlobalIgnore)
	}

	unreadable := 0
	for _, root := range w.cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			w.emitDiag(Diagnostic{Path: root, Err: err})
			unreadable++
			continue
		}

		ent, err := Metadata(abs)
		if err != nil {
			w.emitDiag(Diagnostic{Path: abs, Err: err})
			unreadable++
			continue
		}

		ent.Depth = 0
		if !w.emit(ctx, ent) {
			w.queue.close()
			return
		}

		if ent.Kind == entry.KindDir && w.cfg.MaxDepth != 0 {
			w.markVisited(abs)
			w.queue.push(dirWork{abs: abs, depth: 0, ignore: global})
		}
	}

	if unreadable == len(w.cfg.Roots) {
		w.setErr(errors.Newf(errors.IoError, "every walk root was unreadable"))
		return
	}

	// Close the queue when the context fires so blocked workers wake up.
	stopWatch := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			w.queue.close()
		case <-stopWatch:
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < w.cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				work, ok := w.queue.pop()
				if !ok {
					return
				}
				w.processDir(ctx, work)
				w.queue.done()
			}
		}()
	}
	wg.Wait()
	close(stopWatch)
}

// processDir reads one directory, applies the ignore policy to each
// child, emits surviving entries, and requeues subdirectories.
func (w *Walker) processDir(ctx context.Context, work dirWork) {
	if ctx.Err() != nil {
		w.queue.close()
		return
	}

	dirents, err := os.ReadDir(work.abs)
	if err != nil {
		w.emitDiag(Diagnostic{Path: work.abs, Err: errors.New(errors.IoError, "reading directory", err)})
		return
	}

	stack := work.ignore
	if w.cfg.RespectGitignore {
		stack = stack.push(work.abs, work.rel)
	}

	for _, de := range dirents {
		name := de.Name()

		if !w.cfg.IncludeHidden && len(name) > 0 && name[0] == '.' {
			continue
		}

		childRel := make([]string, len(work.rel), len(work.rel)+1)
		copy(childRel, work.rel)
		childRel = append(childRel, name)

		if w.cfg.RespectGitignore && stack.match(childRel, de.IsDir()) {
			continue
		}

		childAbs := filepath.Join(work.abs, name)
		ent, err := Metadata(childAbs)
		if err != nil {
			w.emitDiag(Diagnostic{Path: childAbs, Err: err})
			continue
		}
		ent.Depth = work.depth + 1

		if !w.emit(ctx, ent) {
			w.queue.close()
			return
		}

		w.maybeDescend(ent, childAbs, childRel, stack)
	}
}

// maybeDescend queues a child directory, expanding symlinked directories
// only in follow mode and never re-entering a visited (device, inode).
func (w *Walker) maybeDescend(ent entry.Entry, abs string, rel []string, stack ignoreStack) {
	if w.cfg.MaxDepth >= 0 && ent.Depth >= w.cfg.MaxDepth {
		return
	}

	switch ent.Kind {
	case entry.KindDir:
		if w.cfg.FollowSymlinks && !w.markVisited(abs) {
			return
		}
		w.queue.push(dirWork{abs: abs, rel: rel, depth: ent.Depth, ignore: stack})
	case entry.KindSymlink:
		if !w.cfg.FollowSymlinks {
			return
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return
		}
		if !w.markVisited(abs) {
			return
		}
		w.queue.push(dirWork{abs: abs, rel: rel, depth: ent.Depth, ignore: stack})
	}
}

// markVisited records the directory's (device, inode) pair. It returns
// false when the pair was seen before, which bounds symlink cycles.
// Platforms without inode identity admit every path.
func (w *Walker) markVisited(abs string) bool {
	info, err := os.Stat(abs)
	if err != nil {
		return false
	}
	id, ok := fileIDOf(info)
	if !ok {
		return true
	}
	return w.visited.add(id)
}

// emit sends an entry, honoring cancellation. Returns false on cancel.
func (w *Walker) emit(ctx context.Context, ent entry.Entry) bool {
	select {
	case w.entries <- ent:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Walker) emitDiag(d Diagnostic) {
	select {
	case w.diags <- d:
	default:
		// A full sideband never stalls the walk.
	}
}
