// SPDX-License-Identifier: Apache-2.0

// Package backup snapshots the mutable service state before setup touches
// it. A snapshot copies the environment file and the data directory into a
// timestamped directory under backup/.
package backup

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
)

// Snapshot describes a completed backup.
type Snapshot struct {
	Dir   string
	Files int
}

// Manager creates snapshots for one installation.
type Manager struct {
	layout core.Layout
	now    func() time.Time
}

func NewManager(layout core.Layout) *Manager {
	return &Manager{layout: layout, now: time.Now}
}

// Create copies the current environment file and data directory into a new
// timestamped snapshot directory. Sources that do not exist yet are skipped;
// any other I/O failure aborts the snapshot.
func (m *Manager) Create() (*Snapshot, error) {
	stamp := m.now().Format(core.BackupStampLayout)
	dir := filepath.Join(m.layout.BackupRoot(), stamp)

	if err := os.MkdirAll(dir, core.DefaultDirMode); err != nil {
		return nil, errorx.ExternalError.Wrap(err, "failed to create backup directory %s", dir)
	}

	snap := &Snapshot{Dir: dir}

	copied, err := copyFileIfExists(m.layout.EnvFile(), filepath.Join(dir, core.EnvFileName))
	if err != nil {
		return nil, err
	}

	if copied {
		snap.Files++
	}

	count, err := copyTreeIfExists(m.layout.DataDir(), filepath.Join(dir, core.DataDirName))
	if err != nil {
		return nil, err
	}

	snap.Files += count

	logx.As().Info().
		Str("dir", snap.Dir).
		Int("files", snap.Files).
		Msg("Created backup snapshot")

	return snap, nil
}

func copyFileIfExists(src, dst string) (bool, error) {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return false, nil
	}

	if err != nil {
		return false, errorx.ExternalError.Wrap(err, "failed to stat %s", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return false, errorx.ExternalError.Wrap(err, "failed to open %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return false, errorx.ExternalError.Wrap(err, "failed to create %s", dst)
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()

		return false, errorx.ExternalError.Wrap(err, "failed to copy %s", src)
	}

	if err = out.Close(); err != nil {
		return false, errorx.ExternalError.Wrap(err, "failed to close %s", dst)
	}

	return true, nil
}

func copyTreeIfExists(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0

	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, core.DefaultDirMode)
		}

		copied, err := copyFileIfExists(path, target)
		if err != nil {
			return err
		}

		if copied {
			count++
		}

		return nil
	})
	if err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to copy %s", src)
	}

	return count, nil
}
