//go:build !windows

package index

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"fexplorer/internal/errors"
)

// fileLock is an exclusive advisory lock guarding the index
// read-modify-write cycle across processes.
type fileLock struct {
	path string
	file *os.File
}

// acquireLock blocks until the exclusive lock is held. The holder's PID
// is written into the lock file for operator forensics.
func acquireLock(path string) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.New(errors.IoError, "creating lock directory", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, errors.New(errors.IoError, "opening lock file: "+path, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		_ = file.Close()
		return nil, errors.New(errors.IoError, "acquiring index lock: "+path, err)
	}

	if err := file.Truncate(0); err == nil {
		if _, err := file.Seek(0, 0); err == nil {
			_, _ = file.WriteString(strconv.Itoa(os.Getpid()))
		}
	}

	return &fileLock{path: path, file: file}, nil
}

// release drops the lock. Best effort; the flock dies with the fd.
func (l *fileLock) release() {
	if l == nil || l.file == nil {
		return
	}
	_ = syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	_ = l.file.Close()
}
