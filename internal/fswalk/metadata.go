package fswalk

import (
	"os"
	"path/filepath"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
)

// Metadata extracts a single entry from a path using lstat semantics.
// Symlinks are not followed; size and mtime are those of the link itself.
// Depth is left at zero, callers that walk set it.
func Metadata(path string) (entry.Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entry.Entry{}, errors.New(errors.NotFound, "path does not exist: "+path, err)
		}
		return entry.Entry{}, errors.New(errors.IoError, "lstat failed: "+path, err)
	}

	kind := entry.KindFromMode(info.Mode())
	size := info.Size()
	if kind == entry.KindDir {
		size = 0
	}

	return entry.Entry{
		Path:  path,
		Name:  filepath.Base(path),
		Kind:  kind,
		Size:  size,
		Mtime: info.ModTime(),
		Perms: info.Mode().Perm().String(),
	}, nil
}
