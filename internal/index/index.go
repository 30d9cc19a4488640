// Package index maintains the persistent project index: discovery of
// git repositories under configured scan roots, merged with the access
// history that drives frecency ranking. The on-disk cache is JSON,
// written atomically (tmp + rename) under an advisory file lock.
package index

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/natefinch/atomic"

	"fexplorer/internal/errors"
	"fexplorer/internal/gitprobe"
	"fexplorer/internal/paths"
)

// Version is the cache schema version. A mismatched file is discarded
// and rebuilt rather than migrated.
const Version = 1

// Index is the persistent state: every known project keyed by its
// canonical absolute path.
type Index struct {
	Version  int                 `json:"version"`
	LastSync time.Time           `json:"last_sync"`
	Projects map[string]*Project `json:"projects"`
}

// newIndex returns an empty index at the current schema version.
func newIndex() *Index {
	return &Index{
		Version:  Version,
		Projects: make(map[string]*Project),
	}
}

// Sorted returns the projects ordered by frecency descending, ties
// broken by name ascending then path ascending.
func (idx *Index) Sorted() []*Project {
	out := make([]*Project, 0, len(idx.Projects))
	for _, p := range idx.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FrecencyScore != out[j].FrecencyScore {
			return out[i].FrecencyScore > out[j].FrecencyScore
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// Store reads and writes the index cache file.
type Store struct {
	cacheFile string
}

// NewStore creates a store for the given cache file path, normally
// <cache-dir>/px/projects.json.
func NewStore(cacheFile string) *Store {
	return &Store{cacheFile: cacheFile}
}

// CacheFile returns the backing file path.
func (s *Store) CacheFile() string {
	return s.cacheFile
}

func (s *Store) lockFile() string {
	return s.cacheFile + ".lock"
}

// Load reads the cache. A missing file or a version mismatch yields an
// empty index; a parse error on an existing file is fatal and surfaces.
func (s *Store) Load() (*Index, error) {
	data, err := os.ReadFile(s.cacheFile)
	if os.IsNotExist(err) {
		return newIndex(), nil
	}
	if err != nil {
		return nil, errors.New(errors.IoError, "reading index cache: "+s.cacheFile, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.New(errors.IoError, "index cache is not valid JSON: "+s.cacheFile, err)
	}

	if idx.Version != Version {
		return newIndex(), nil
	}
	if idx.Projects == nil {
		idx.Projects = make(map[string]*Project)
	}
	return &idx, nil
}

// save writes the index atomically: marshal, write a sibling tmp file,
// rename over the target. A crash mid-write leaves the old cache intact.
func (s *Store) save(idx *Index) error {
	if err := os.MkdirAll(filepath.Dir(s.cacheFile), 0o755); err != nil {
		return errors.New(errors.IoError, "creating cache directory", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.New(errors.InternalError, "serializing index", err)
	}

	if err := atomic.WriteFile(s.cacheFile, bytes.NewReader(data)); err != nil {
		return errors.New(errors.IoError, "writing index cache: "+s.cacheFile, err)
	}
	return nil
}

// Save persists an index under the advisory lock. Exposed for callers
// that assembled an index themselves; Sync and RecordAccess lock on
// their own.
func (s *Store) Save(idx *Index) error {
	lock, err := acquireLock(s.lockFile())
	if err != nil {
		return err
	}
	defer lock.release()
	return s.save(idx)
}

// RecordAccess increments the access count for the project at path,
// stamps last_accessed, recomputes frecency, and persists atomically.
// A path not in the index is admitted when it is a live repository;
// anything else is a silent no-op. The read-modify-write cycle runs
// under the advisory lock so concurrent calls never lose updates.
func (s *Store) RecordAccess(path string, now time.Time) error {
	canonical, err := paths.Canonicalize(path)
	if err != nil {
		return errors.New(errors.IoError, "canonicalizing path: "+path, err)
	}

	lock, err := acquireLock(s.lockFile())
	if err != nil {
		return err
	}
	defer lock.release()

	idx, err := s.Load()
	if err != nil {
		return err
	}

	p, ok := idx.Projects[canonical]
	if !ok {
		if !gitprobe.IsRepo(canonical) {
			return nil
		}
		var git *gitprobe.Status
		if st, probeErr := gitprobe.Probe(canonical); probeErr == nil {
			git = st
		}
		p = newProject(canonical, git)
		idx.Projects[canonical] = p
	}

	p.AccessCount++
	p.LastAccessed = &now
	p.RecomputeFrecency(now)

	return s.save(idx)
}

// ListFilter narrows List output.
type ListFilter string

const (
	// FilterNone admits every project.
	FilterNone ListFilter = ""
	// FilterHasChanges admits projects with uncommitted changes.
	FilterHasChanges ListFilter = "has-changes"
	// FilterInactive30d admits projects not accessed in 30 days.
	FilterInactive30d ListFilter = "inactive-30d"
	// FilterInactive90d admits projects not accessed in 90 days.
	FilterInactive90d ListFilter = "inactive-90d"
)

// ParseListFilter validates a filter name.
func ParseListFilter(name string) (ListFilter, error) {
	switch ListFilter(name) {
	case FilterNone, FilterHasChanges, FilterInactive30d, FilterInactive90d:
		return ListFilter(name), nil
	}
	return FilterNone, errors.Newf(errors.ParseError, "unknown list filter %q", name)
}

// List returns the projects admitted by the filter, ordered by frecency
// descending with ties broken by name. Frecency is recomputed against
// now before sorting.
func (idx *Index) List(filter ListFilter, now time.Time) []*Project {
	for _, p := range idx.Projects {
		p.RecomputeFrecency(now)
	}

	sorted := idx.Sorted()
	if filter == FilterNone {
		return sorted
	}

	out := make([]*Project, 0, len(sorted))
	for _, p := range sorted {
		if admits(filter, p, now) {
			out = append(out, p)
		}
	}
	return out
}

func admits(filter ListFilter, p *Project, now time.Time) bool {
	switch filter {
	case FilterHasChanges:
		return p.Git != nil && p.Git.HasUncommitted
	case FilterInactive30d:
		return inactiveSince(p, now, 30)
	case FilterInactive90d:
		return inactiveSince(p, now, 90)
	default:
		return true
	}
}

// inactiveSince admits projects never accessed or last accessed before
// the cutoff.
func inactiveSince(p *Project, now time.Time, days int) bool {
	if p.LastAccessed == nil {
		return true
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return p.LastAccessed.Before(cutoff)
}
