// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/core"
)

func TestManager_Create(t *testing.T) {
	req := require.New(t)

	installDir := t.TempDir()
	layout := core.NewLayout(installDir)

	req.NoError(os.WriteFile(layout.EnvFile(), []byte("PORT=3010\n"), 0644))
	req.NoError(os.MkdirAll(filepath.Join(layout.DataDir(), "nested"), 0755))
	req.NoError(os.WriteFile(layout.UsersFile(), []byte(`{"username":"admin"}`), 0644))
	req.NoError(os.WriteFile(filepath.Join(layout.DataDir(), "nested", "state.json"), []byte("{}"), 0644))

	mgr := NewManager(layout)
	mgr.now = func() time.Time { return time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC) }

	snap, err := mgr.Create()
	req.NoError(err)
	req.Equal(filepath.Join(layout.BackupRoot(), "20260827-103000"), snap.Dir)
	req.Equal(3, snap.Files)

	env, err := os.ReadFile(filepath.Join(snap.Dir, core.EnvFileName))
	req.NoError(err)
	req.Equal("PORT=3010\n", string(env))

	_, err = os.Stat(filepath.Join(snap.Dir, core.DataDirName, "nested", "state.json"))
	req.NoError(err)
}

func TestManager_Create_MissingSourcesAreSkipped(t *testing.T) {
	req := require.New(t)

	mgr := NewManager(core.NewLayout(t.TempDir()))

	snap, err := mgr.Create()
	req.NoError(err)
	req.Equal(0, snap.Files)

	_, err = os.Stat(snap.Dir)
	req.NoError(err)
}
