package fswalk

import (
	"path/filepath"
	"sort"

	"fexplorer/internal/entry"
)

// AggregateDirSizes accumulates file sizes into every ancestor
// directory. Directories report size 0 from lstat; aggregation is how
// they get a meaningful one.
func AggregateDirSizes(entries []entry.Entry) map[string]int64 {
	sizes := make(map[string]int64)
	for _, e := range entries {
		if e.Kind != entry.KindFile {
			continue
		}
		sizes[e.Path] = e.Size
		for dir := filepath.Dir(e.Path); ; dir = filepath.Dir(dir) {
			sizes[dir] += e.Size
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}
	return sizes
}

// ApplyDirSizes rewrites directory entries with their aggregated sizes.
func ApplyDirSizes(entries []entry.Entry, sizes map[string]int64) {
	for i := range entries {
		if entries[i].Kind == entry.KindDir {
			if size, ok := sizes[entries[i].Path]; ok {
				entries[i].Size = size
			}
		}
	}
}

// TopBySize returns the n largest entries, size descending with path
// ascending on ties.
func TopBySize(entries []entry.Entry, n int) []entry.Entry {
	sorted := make([]entry.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Path < sorted[j].Path
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// TotalSize sums file sizes.
func TotalSize(entries []entry.Entry) int64 {
	var total int64
	for _, e := range entries {
		if e.Kind == entry.KindFile {
			total += e.Size
		}
	}
	return total
}
