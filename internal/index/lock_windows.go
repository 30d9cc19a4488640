//go:build windows

package index

import (
	"os"
	"path/filepath"
	"time"

	"fexplorer/internal/errors"
)

// fileLock approximates an advisory lock on Windows with an O_EXCL
// lock file, retrying while another process holds it.
type fileLock struct {
	path string
}

const lockRetryInterval = 25 * time.Millisecond
const lockRetryLimit = 400 // 10s before giving up

func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(errors.IoError, "creating lock directory", err)
	}

	for i := 0; i < lockRetryLimit; i++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return &fileLock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.New(errors.IoError, "opening lock file: "+path, err)
		}
		time.Sleep(lockRetryInterval)
	}
	return nil, errors.Newf(errors.IoError, "index lock held too long: %s", path)
}

func (l *fileLock) release() {
	if l == nil {
		return
	}
	_ = os.Remove(l.path)
}
