package batch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"tvb/internal/fileutil"
)

const lockFileName = "tvb.lock"

// Lock enforces single-instance execution so two batches cannot interleave
// writes to the output tree or the stats store.
type Lock struct {
	path string
	fl   *flock.Flock
}

// AcquireLock takes the instance lock under dir, failing immediately when
// another batch holds it.
func AcquireLock(dir string) (*Lock, error) {
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}
	path := filepath.Join(dir, lockFileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another tvb instance is already running")
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
