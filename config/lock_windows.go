//go:build windows

package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

type fileLock struct {
	path string
	f    *os.File
}

func newFileLock(target string) *fileLock {
	return &fileLock{path: target + ".lock"}
}

// Lock blocks until an exclusive lock on the first byte of the lock file is
// held.
func (l *fileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol); err != nil {
		_ = f.Close()
		return fmt.Errorf("LockFileEx %s: %w", l.path, err)
	}

	l.f = f
	return nil
}

func (l *fileLock) Unlock() error {
	if l.f == nil {
		return nil
	}

	ol := new(windows.Overlapped)
	errUnlock := windows.UnlockFileEx(windows.Handle(l.f.Fd()), 0, 1, 0, ol)
	errClose := l.f.Close()
	l.f = nil

	if errUnlock != nil {
		return fmt.Errorf("UnlockFileEx: %w", errUnlock)
	}
	return errClose
}
