// Package entry defines the filesystem observation model shared by the
// traversal engine, the predicate pipeline, and the output sinks.
package entry

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Kind represents the type of a filesystem entry
type Kind string

const (
	// KindFile is a regular file
	KindFile Kind = "file"
	// KindDir is a directory
	KindDir Kind = "directory"
	// KindSymlink is a symbolic link (not followed by default)
	KindSymlink Kind = "symlink"
	// KindOther is anything else (device, socket, fifo)
	KindOther Kind = "other"
)

// KindFromMode derives a Kind from lstat file mode bits
func KindFromMode(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Entry is a single filesystem observation. Paths are absolute.
// Kind is derived from lstat; for symlinks, Size and Mtime are those of
// the link itself, not the target.
type Entry struct {
	Path  string    `json:"path"`
	Name  string    `json:"name"`
	Kind  Kind      `json:"kind"`
	Size  int64     `json:"size"`
	Mtime time.Time `json:"mtime"`
	Perms string    `json:"perms,omitempty"`
	Depth int       `json:"depth"`
}

// Ext returns the entry's lowercase extension without the leading dot,
// or "" when the name has none.
func (e Entry) Ext() string {
	ext := filepath.Ext(e.Name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsHidden reports whether the entry's basename starts with a dot.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}
