package fs

import (
	"errors"
	iofs "io/fs"
	"sync"
)

// InjectedError wraps a non-errno fault produced by [Chaos], such as a lock
// timeout. errors.Is sees through it.
type InjectedError struct {
	Err error
}

func (e *InjectedError) Error() string { return e.Err.Error() }
func (e *InjectedError) Unwrap() error { return e.Err }

// IsInjected reports whether err came from [Chaos] rather than the OS.
//
// Errno faults are plain *fs.PathError values so os.IsPermission and
// errors.Is(err, syscall.EIO) work on them; Chaos remembers which ones it
// created.
func IsInjected(err error) bool {
	var injected *InjectedError
	if errors.As(err, &injected) {
		return true
	}

	var pathErr *iofs.PathError
	if !errors.As(err, &pathErr) {
		return false
	}

	_, ok := chaosPathErrors.Load(pathErr)

	return ok
}

// chaosPathErrors holds every *fs.PathError Chaos has returned.
var chaosPathErrors sync.Map

func markInjectedPathError(err *iofs.PathError) {
	chaosPathErrors.Store(err, struct{}{})
}

func inject(err error) error {
	if IsInjected(err) {
		return err
	}

	return &InjectedError{Err: err}
}
