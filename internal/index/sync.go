package index

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
	"fexplorer/internal/fswalk"
	"fexplorer/internal/gitprobe"
	"fexplorer/internal/logging"
	"fexplorer/internal/paths"
)

// DefaultSyncDepth bounds repository discovery under each scan root.
// Overridable per config or flag.
const DefaultSyncDepth = 3

// maxProbeWorkers caps the probe pool regardless of walker threads.
const maxProbeWorkers = 4

// SyncConfig parameterizes a sync run.
type SyncConfig struct {
	// ScanDirs are the roots searched for repositories.
	ScanDirs []string
	// MaxDepth bounds discovery; zero means DefaultSyncDepth.
	MaxDepth int
	// Threads sizes the walker pool; zero means fswalk.DefaultThreads().
	Threads int
	// Logger receives walk diagnostics and per-repo probe failures.
	Logger *logging.Logger
}

// SyncSummary reports one completed sync.
type SyncSummary struct {
	RunID    string
	Projects int
	Duration time.Duration
}

// Sync rebuilds the project index: walks every scan dir, probes each
// candidate repository in a bounded pool, preserves access history for
// repositories already known, and persists the result atomically.
// A repository that fails its probe is kept in git-unknown state; a
// repository that vanished from the scan roots is dropped.
func (s *Store) Sync(ctx context.Context, cfg SyncConfig, now time.Time) (*SyncSummary, error) {
	start := time.Now()
	runID := uuid.NewString()

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Quiet()
	}

	depth := cfg.MaxDepth
	if depth <= 0 {
		depth = DefaultSyncDepth
	}

	lock, err := acquireLock(s.lockFile())
	if err != nil {
		return nil, err
	}
	defer lock.release()

	prior, err := s.Load()
	if err != nil {
		return nil, err
	}

	candidates := discoverCandidates(ctx, cfg.ScanDirs, depth, cfg.Threads, logger)

	next := newIndex()
	next.LastSync = now
	probeCandidates(ctx, candidates, next, prior, now, logger)

	if ctx.Err() != nil {
		return nil, errors.New(errors.Cancelled, "sync cancelled", ctx.Err())
	}

	if err := s.save(next); err != nil {
		return nil, err
	}

	summary := &SyncSummary{
		RunID:    runID,
		Projects: len(next.Projects),
		Duration: time.Since(start),
	}
	logger.Info("sync complete", map[string]interface{}{
		"run_id":   summary.RunID,
		"projects": summary.Projects,
		"ms":       summary.Duration.Milliseconds(),
	})
	return summary, nil
}

// discoverCandidates walks the scan dirs and returns the canonical
// paths of every directory that holds a .git. Duplicate paths through
// symlinks collapse onto one canonical key. An empty scan set is an
// empty result, not an error.
func discoverCandidates(ctx context.Context, scanDirs []string, depth, threads int, logger *logging.Logger) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, dir := range scanDirs {
		if ctx.Err() != nil {
			return out
		}

		entries, diags, err := fswalk.Collect(ctx, fswalk.Config{
			Roots:            []string{dir},
			MaxDepth:         depth,
			RespectGitignore: true,
			Threads:          threads,
		})
		if err != nil {
			logger.Warn("scan dir unreadable", map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			})
			continue
		}
		for _, d := range diags {
			logger.Debug("walk diagnostic", map[string]interface{}{
				"path":  d.Path,
				"error": d.Err.Error(),
			})
		}

		for _, e := range entries {
			if e.Kind != entry.KindDir || !gitprobe.IsRepo(e.Path) {
				continue
			}
			canonical, err := paths.Canonicalize(e.Path)
			if err != nil {
				logger.Debug("candidate not canonicalizable", map[string]interface{}{
					"path":  e.Path,
					"error": err.Error(),
				})
				continue
			}
			if _, dup := seen[canonical]; dup {
				continue
			}
			seen[canonical] = struct{}{}
			out = append(out, canonical)
		}
	}
	return out
}

// probeCandidates runs the probe pool and funnels results into next
// through a single writer. Access history carries over from prior
// entries at the same canonical path.
func probeCandidates(ctx context.Context, candidates []string, next, prior *Index, now time.Time, logger *logging.Logger) {
	workers := fswalk.DefaultThreads()
	if workers > maxProbeWorkers {
		workers = maxProbeWorkers
	}

	type result struct {
		path string
		git  *gitprobe.Status
	}

	work := make(chan string)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				git, err := gitprobe.Probe(path)
				if err != nil {
					if errors.IsCode(err, errors.GitNotARepo) {
						continue
					}
					// Corrupt or transient: demote to git-unknown, retain.
					logger.Warn("repo probe failed", map[string]interface{}{
						"path":  path,
						"error": err.Error(),
					})
					git = nil
				}
				results <- result{path: path, git: git}
			}
		}()
	}

	go func() {
		defer close(work)
		for _, c := range candidates {
			select {
			case work <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		p := newProject(r.path, r.git)
		if old, ok := prior.Projects[r.path]; ok {
			p.AccessCount = old.AccessCount
			p.LastAccessed = old.LastAccessed
		}
		p.RecomputeFrecency(now)
		next.Projects[r.path] = p
	}
}
