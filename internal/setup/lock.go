// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
)

// Lock is an advisory file lock held for the duration of the mutating setup
// stages, so two setup runs cannot interleave writes to the same
// installation.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the lock without blocking. A held lock is an immediate
// error, not a wait.
func AcquireLock(path string) (*Lock, error) {
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to acquire lock %s", path)
	}

	if !ok {
		return nil, errorx.ConcurrentUpdate.New(
			"another setup run holds %s, finish or abort it first", path)
	}

	return &Lock{fl: fl}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}

	if err := l.fl.Unlock(); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to release lock %s", l.fl.Path())
	}

	return nil
}
