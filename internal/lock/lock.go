// Package lock provides a local advisory lock so two ghkey runs can't race
// on the same key files and SSH config. mkdir is the atomic primitive: it
// fails when the lock directory already exists.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stokesdev/ghkey/internal/errors"
	"github.com/stokesdev/ghkey/internal/logger"
)

// lockDirName is created inside the directory being protected.
const lockDirName = ".ghkey.lock"

// DefaultStale is how old a lock may be before it is considered abandoned
// (the holder probably crashed) and reclaimed.
const DefaultStale = 30 * time.Minute

var log = logger.NewEnvLogger("[lock]")

// Lock represents an acquired advisory lock.
type Lock struct {
	Dir  string // the lock directory
	Info *Info  // info about the holder (us)
}

// Acquire attempts to take the advisory lock inside baseDir. It does not
// wait: a lock held by a live process is an immediate LOCK error naming the
// holder. Locks older than stale are reclaimed.
func Acquire(baseDir string, stale time.Duration) (*Lock, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrLock,
			"Could not create directory for lock: "+baseDir,
			"Check permissions on your home directory")
	}

	lockDir := filepath.Join(baseDir, lockDirName)
	infoFile := filepath.Join(lockDir, "info.json")

	for attempt := 0; attempt < 2; attempt++ {
		err := os.Mkdir(lockDir, 0700)
		if err == nil {
			info := NewInfo()
			data, merr := info.Marshal()
			if merr != nil {
				os.RemoveAll(lockDir)
				return nil, errors.WrapWithCode(merr, errors.ErrLock,
					"Failed to serialize lock info", "")
			}
			if werr := os.WriteFile(infoFile, data, 0600); werr != nil {
				os.RemoveAll(lockDir)
				return nil, errors.WrapWithCode(werr, errors.ErrLock,
					"Failed to write lock info file",
					"Check disk space and permissions")
			}
			log.Debug("acquired %s", lockDir)
			return &Lock{Dir: lockDir, Info: info}, nil
		}

		if !os.IsExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrLock,
				"Could not create lock directory: "+lockDir,
				"Check permissions on "+baseDir)
		}

		// Lock held. Reclaim it if stale, otherwise report the holder.
		if isStale(infoFile, lockDir, stale) {
			log.Warn("removing stale lock %s", lockDir)
			if rerr := os.RemoveAll(lockDir); rerr == nil {
				continue
			}
		}

		return nil, errors.New(errors.ErrLock,
			"Another ghkey run is already in progress",
			fmt.Sprintf("Lock held by %s. Wait for it to finish or remove %s", holder(infoFile), lockDir))
	}

	return nil, errors.New(errors.ErrLock,
		"Could not acquire lock after removing a stale one",
		"Remove "+lockDir+" manually and re-run")
}

// Release removes the lock, allowing other runs to proceed.
func (l *Lock) Release() error {
	if l == nil || l.Dir == "" {
		return nil
	}
	log.Debug("released %s", l.Dir)
	return os.RemoveAll(l.Dir)
}

// isStale reports whether the lock should be reclaimed. A lock with an
// unreadable info file is judged by the directory's modification time.
func isStale(infoFile, lockDir string, stale time.Duration) bool {
	if stale <= 0 {
		return false
	}

	data, err := os.ReadFile(infoFile)
	if err == nil {
		if info, perr := ParseInfo(data); perr == nil {
			return info.Age() > stale
		}
	}

	fi, err := os.Stat(lockDir)
	if err != nil {
		return false
	}
	return time.Since(fi.ModTime()) > stale
}

// holder describes who holds the lock, for error messages.
func holder(infoFile string) string {
	data, err := os.ReadFile(infoFile)
	if err != nil {
		return "unknown"
	}
	info, err := ParseInfo(data)
	if err != nil {
		return "unknown"
	}
	return info.String()
}
