package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

// LockTimeout bounds how long [Real.Lock] waits for a competing process.
const LockTimeout = 2 * time.Second

const (
	lockPerms     = 0o600
	retryInterval = 10 * time.Millisecond
)

// Lock errors.
var (
	ErrLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)

// Real implements [FS] using the real filesystem.
type Real struct {
	timeout time.Duration
}

// NewReal returns a new [Real] filesystem.
func NewReal() *Real {
	return &Real{timeout: LockTimeout}
}

// A passthrough wrapper for [os.ReadFile].
func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic replaces path with data via temp file + rename, then
// applies perm.
func (r *Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	err := atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	return os.Chmod(path, perm)
}

// A passthrough wrapper for [os.MkdirAll].
func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Exists checks if a file exists using [os.Stat].
func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// realLock holds an exclusive flock on a sibling ".lock" file.
type realLock struct {
	file *os.File
}

func (l *realLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil

	return err
}

// Lock takes an exclusive flock on path+".lock", polling until the timeout.
// The lock file is left in place: unlinking it would let a waiter lock a
// stale inode.
func (r *Real) Lock(path string) (Locker, error) {
	lockPath := path + ".lock"

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockPerms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errLockFileOpen, err)
	}

	deadline := time.Now().Add(r.timeout)

	for {
		flockErr := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if flockErr == nil {
			return &realLock{file: file}, nil
		}

		if !errors.Is(flockErr, unix.EWOULDBLOCK) && !errors.Is(flockErr, unix.EINTR) {
			_ = file.Close()

			return nil, fmt.Errorf("flock %s: %w", lockPath, flockErr)
		}

		if time.Now().After(deadline) {
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}

		time.Sleep(retryInterval)
	}
}

// Compile-time interface check.
var _ FS = (*Real)(nil)
