// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestInitialize_Defaults(t *testing.T) {
	req := require.New(t)

	req.NoError(Initialize(""))

	cfg := Get()
	req.Equal(".", cfg.InstallDir)
	req.Equal("docker", cfg.Mechanism)
}

func TestInitialize_FromFile(t *testing.T) {
	req := require.New(t)

	orig := Get()
	t.Cleanup(func() { _ = Set(&orig) })

	dir := t.TempDir()
	path := filepath.Join(dir, "nexusctl.yaml")
	content := "installDir: /opt/nexus\nmechanism: process\nlog:\n  level: Debug\n"
	req.NoError(os.WriteFile(path, []byte(content), 0644))

	req.NoError(Initialize(path))

	cfg := Get()
	req.Equal("/opt/nexus", cfg.InstallDir)
	req.Equal("process", cfg.Mechanism)
	req.Equal(filepath.Join("/opt/nexus", ".env"), cfg.Layout().EnvFile())
}

func TestInitialize_MissingFile(t *testing.T) {
	req := require.New(t)

	err := Initialize(filepath.Join(t.TempDir(), "absent.yaml"))
	req.Error(err)
	req.True(errorx.IsOfType(err, NotFoundError))
}

func TestInitialize_RejectsUnknownMechanism(t *testing.T) {
	req := require.New(t)

	orig := Get()
	t.Cleanup(func() { _ = Set(&orig) })

	dir := t.TempDir()
	path := filepath.Join(dir, "nexusctl.yaml")
	req.NoError(os.WriteFile(path, []byte("mechanism: kubernetes\n"), 0644))

	req.Error(Initialize(path))
}
