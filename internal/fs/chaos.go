package fs

import (
	"io/fs"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
)

// ChaosConfig controls fault injection probabilities.
// Each rate is a float64 from 0.0 (never) to 1.0 (always).
type ChaosConfig struct {
	ReadFailRate  float64 // Fail ReadFile
	WriteFailRate float64 // Fail WriteFileAtomic before anything is written
	StatFailRate  float64 // Fail Exists
	MkdirFailRate float64 // Fail MkdirAll
	LockFailRate  float64 // Fail Lock with a timeout
}

// DefaultChaosConfig returns a config with reasonable fault rates for testing.
func DefaultChaosConfig() ChaosConfig {
	return ChaosConfig{
		ReadFailRate:  0.05,
		WriteFailRate: 0.1,
		StatFailRate:  0.02,
		MkdirFailRate: 0.02,
		LockFailRate:  0.05,
	}
}

// PathState tracks the fault state of a path for consistent error injection.
type PathState int

const (
	// PathNormal means no persistent fault. Untracked paths are normal.
	PathNormal PathState = iota
	// PathIOError is sticky: every operation on the path returns EIO.
	PathIOError
	// PathReadOnly is sticky for writes: WriteFileAtomic and Lock return EROFS.
	PathReadOnly
)

// ChaosMode controls how Chaos behaves.
type ChaosMode uint8

const (
	// ChaosModePassthrough behaves like the underlying FS and ignores sticky
	// path state without clearing it.
	ChaosModePassthrough ChaosMode = iota

	// ChaosModeInject enables fault-rate injection and sticky path state.
	ChaosModeInject

	// ChaosModeStickyOnly applies only sticky path state.
	ChaosModeStickyOnly
)

// Chaos wraps an [FS] and injects failures for testing.
//
// Injected errors are *fs.PathError values carrying a syscall.Errno, so
// errors.Is and os.IsNotExist behave as they would for real failures.
// [IsInjected] tells them apart from real OS errors.
//
// A failed write never touches the wrapped filesystem.
type Chaos struct {
	fs     FS
	config ChaosConfig
	mode   atomic.Uint32

	mu         sync.Mutex
	rng        *rand.Rand
	pathStates map[string]PathState

	readFails  atomic.Int64
	writeFails atomic.Int64
	statFails  atomic.Int64
	mkdirFails atomic.Int64
	lockFails  atomic.Int64
}

// NewChaos wraps fsys. The seed makes injection reproducible.
// A new Chaos starts in [ChaosModePassthrough].
func NewChaos(fsys FS, seed int64, config ChaosConfig) *Chaos {
	return &Chaos{
		fs:         fsys,
		config:     config,
		rng:        rand.New(rand.NewSource(seed)),
		pathStates: make(map[string]PathState),
	}
}

// SetMode updates Chaos behavior. Safe for concurrent use.
func (c *Chaos) SetMode(m ChaosMode) { c.mode.Store(uint32(m)) }

// SetPathState marks path as persistently faulty. [PathNormal] clears it.
func (c *Chaos) SetPathState(path string, state PathState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state == PathNormal {
		delete(c.pathStates, path)

		return
	}

	c.pathStates[path] = state
}

// ChaosStats contains counts of injected faults.
type ChaosStats struct {
	ReadFails  int64
	WriteFails int64
	StatFails  int64
	MkdirFails int64
	LockFails  int64
}

// Total returns the number of injected faults.
func (s ChaosStats) Total() int64 {
	return s.ReadFails + s.WriteFails + s.StatFails + s.MkdirFails + s.LockFails
}

// Stats returns the current fault injection counts.
func (c *Chaos) Stats() ChaosStats {
	return ChaosStats{
		ReadFails:  c.readFails.Load(),
		WriteFails: c.writeFails.Load(),
		StatFails:  c.statFails.Load(),
		MkdirFails: c.mkdirFails.Load(),
		LockFails:  c.lockFails.Load(),
	}
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if err := c.fault("read", path, c.config.ReadFailRate, false, &c.readFails); err != nil {
		return nil, err
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := c.fault("write", path, c.config.WriteFailRate, true, &c.writeFails); err != nil {
		return err
	}

	return c.fs.WriteFileAtomic(path, data, perm)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if err := c.fault("mkdir", path, c.config.MkdirFailRate, true, &c.mkdirFails); err != nil {
		return err
	}

	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if err := c.fault("stat", path, c.config.StatFailRate, false, &c.statFails); err != nil {
		return false, err
	}

	return c.fs.Exists(path)
}

func (c *Chaos) Lock(path string) (Locker, error) {
	mode := ChaosMode(c.mode.Load())

	if mode != ChaosModePassthrough {
		if errno, ok := c.sticky(path, true); ok {
			c.lockFails.Add(1)

			return nil, pathError("lock", path, errno)
		}
	}

	if mode == ChaosModeInject && c.randFloat() < c.config.LockFailRate {
		c.lockFails.Add(1)

		return nil, inject(ErrLockTimeout)
	}

	return c.fs.Lock(path)
}

// fault returns an injected error for op on path, or nil to pass through.
func (c *Chaos) fault(op, path string, rate float64, write bool, counter *atomic.Int64) error {
	mode := ChaosMode(c.mode.Load())
	if mode == ChaosModePassthrough {
		return nil
	}

	if errno, ok := c.sticky(path, write); ok {
		counter.Add(1)

		return pathError(op, path, errno)
	}

	if mode != ChaosModeInject || c.randFloat() >= rate {
		return nil
	}

	errno := c.pickError(write)

	// EIO on a write marks the path bad for good.
	if write && errno == syscall.EIO {
		c.SetPathState(path, PathIOError)
	}

	counter.Add(1)

	return pathError(op, path, errno)
}

func (c *Chaos) sticky(path string, write bool) (syscall.Errno, bool) {
	c.mu.Lock()
	state := c.pathStates[path]
	c.mu.Unlock()

	switch state {
	case PathIOError:
		return syscall.EIO, true
	case PathReadOnly:
		if write {
			return syscall.EROFS, true
		}
	}

	return 0, false
}

func (c *Chaos) pickError(write bool) syscall.Errno {
	errs := []syscall.Errno{syscall.EIO, syscall.EACCES}
	if write {
		errs = append(errs, syscall.ENOSPC, syscall.EROFS)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return errs[c.rng.Intn(len(errs))]
}

func (c *Chaos) randFloat() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rng.Float64()
}

// pathError builds an *fs.PathError the way the OS would and marks it injected.
func pathError(op, path string, errno syscall.Errno) error {
	pe := &fs.PathError{Op: op, Path: path, Err: errno}
	markInjectedPathError(pe)

	return pe
}

var _ FS = (*Chaos)(nil)
