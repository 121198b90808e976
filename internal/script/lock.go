package script

import (
	"fmt"

	"github.com/gofrs/flock"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

// OutputLock is an exclusive cross-process lock on <output>.lock that stops
// two runs from writing the same output at once. The lock file is left in
// place after Release so every run locks the same inode.
type OutputLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// LockPath returns the lock file used for output.
func LockPath(output string) string {
	return output + ".lock"
}

// AcquireOutputLock takes the lock for output without blocking. A lock held
// by another run fails with ErrCodeOutputLocked.
func AcquireOutputLock(output string) (*OutputLock, error) {
	l := &OutputLock{path: LockPath(output)}
	l.flock = flock.New(l.path)

	acquired, err := l.flock.TryLock()
	if err != nil {
		return nil, errors.New(errors.ErrCodeFilePermission, "failed to acquire output lock", err).
			WithDetail("lock", l.path)
	}
	if !acquired {
		return nil, errors.New(errors.ErrCodeOutputLocked, "output is being written by another run: "+output, nil).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for the other run to finish, or choose a different --output")
	}

	l.locked = true
	return l, nil
}

// LockOutput takes the output lock and then re-checks the output while
// holding it, so a run that finished since ValidateInputs is not
// overwritten without force. On error no lock is held.
func LockOutput(output string, force bool) (*OutputLock, error) {
	l, err := AcquireOutputLock(output)
	if err != nil {
		return nil, err
	}
	if err := checkOutput(output, force); err != nil {
		_ = l.Release()
		return nil, err
	}
	return l, nil
}

// Release unlocks the lock file.
// It's safe to call Release multiple times.
func (l *OutputLock) Release() error {
	if !l.locked {
		return nil
	}
	l.locked = false

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the path to the lock file.
func (l *OutputLock) Path() string {
	return l.path
}

// IsLocked returns true if the lock is currently held.
func (l *OutputLock) IsLocked() bool {
	return l.locked
}
