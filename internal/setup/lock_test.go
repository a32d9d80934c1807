// SPDX-License-Identifier: Apache-2.0

package setup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireLock(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "nexusctl.lock")

	lock, err := AcquireLock(path)
	req.NoError(err)
	req.NotNil(lock)

	// a second acquisition fails fast instead of blocking
	_, err = AcquireLock(path)
	req.Error(err)

	req.NoError(lock.Release())

	relock, err := AcquireLock(path)
	req.NoError(err)
	req.NoError(relock.Release())
}

func TestLock_ReleaseNilIsSafe(t *testing.T) {
	var l *Lock
	require.NoError(t, l.Release())
}
