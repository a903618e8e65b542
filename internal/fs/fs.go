// Package fs is the filesystem surface of the recent-queries store: whole
// file reads, atomic replacement, directory creation and an inter-process
// lock.
//
// [Real] talks to the OS. [Chaos] wraps any [FS] and injects faults so
// tests can check that a failed write never damages the stored file.
//
//	fsys := fs.NewReal()
//
//	lock, err := fsys.Lock(path)
//	if err != nil {
//	    return err
//	}
//	defer lock.Close()
//
//	err = fsys.WriteFileAtomic(path, data, 0o600)
package fs

import (
	"io"
	"os"
)

// Locker is a held lock. Close releases it.
type Locker interface {
	io.Closer
}

// FS is implemented by [Real] and [Chaos].
type FS interface {
	// ReadFile behaves like [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces path with data. Readers see either the old
	// or the new content, never a mix.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// MkdirAll behaves like [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Exists reports whether path exists. A missing path is (false, nil).
	Exists(path string) (bool, error)

	// Lock takes an exclusive lock associated with path, waiting at most
	// [LockTimeout] before failing with [ErrLockTimeout].
	Lock(path string) (Locker, error)
}
