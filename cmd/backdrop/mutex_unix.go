//go:build !windows
// +build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dixieflatline76/Backdrop/config"
)

var (
	lockFile *os.File
)

// lockFilePath is a per-user lock file next to the settings.
func lockFilePath() string {
	if dir, err := config.GetPath(); err == nil {
		if err := os.MkdirAll(dir, 0755); err == nil {
			return filepath.Join(dir, "daemon.lock")
		}
	}
	return filepath.Join(os.TempDir(), strings.ToLower(config.AppName)+".lock")
}

// acquireLock tries to acquire a single-instance lock (file lock on Unix).
func acquireLock() (bool, error) {
	file, err := os.OpenFile(lockFilePath(), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	// FcntlFlock implements a simple file locker; the kernel drops it if we crash.
	err = syscall.FcntlFlock(file.Fd(), syscall.F_SETLK, &syscall.Flock_t{
		Type:   syscall.F_WRLCK,
		Whence: 0,
		Start:  0,
		Len:    0, // Lock the entire file
	})
	if err != nil {
		file.Close()
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EACCES) {
			return false, nil // Another instance is running
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	lockFile = file
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if lockFile == nil {
		return
	}
	// Best effort unlock
	syscall.FcntlFlock(lockFile.Fd(), syscall.F_SETLK, &syscall.Flock_t{
		Type: syscall.F_UNLCK,
	})
	lockFile.Close()
	os.Remove(lockFile.Name())
	lockFile = nil
}
