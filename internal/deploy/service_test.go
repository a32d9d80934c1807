// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/platform"
)

func TestService_StartProcess_RecordsPid(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)

	req.NoError(svc.StartProcess(context.Background()))

	pid, err := ReadPidFile(layout.PidFile())
	req.NoError(err)
	req.Equal(fake.NextPid, pid)

	running, gotPid := svc.Running()
	req.True(running)
	req.Equal(pid, gotPid)
}

func TestService_Stop_DetachedProcess(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)

	req.NoError(svc.StartProcess(context.Background()))
	req.NoError(svc.Stop(context.Background()))

	req.NotEmpty(fake.Signals)

	// pid file is cleaned up
	_, err := os.Stat(layout.PidFile())
	req.True(os.IsNotExist(err))
}

func TestService_Stop_NothingRunningIsAnError(t *testing.T) {
	req := require.New(t)

	svc, _ := newTestService(t, platform.NewFakeAdapter())

	err := svc.Stop(context.Background())
	req.Error(err)
	req.True(errorx.IsOfType(err, errorx.DataUnavailable))
}

func TestService_Stop_ComposeStack(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)
	writeManifest(t, layout)

	req.NoError(svc.Stop(context.Background()))
	req.Equal([]string{"docker compose down"}, fake.Calls)
}

func TestService_Logs(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)

	// nothing deployed yet
	req.Error(svc.Logs(context.Background(), false))

	writeManifest(t, layout)
	req.NoError(svc.Logs(context.Background(), true))
	req.Equal([]string{"docker compose logs -f"}, fake.Calls)
}

func TestPidFile(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "nexus.pid")

	_, err := ReadPidFile(path)
	req.True(errorx.IsOfType(err, errorx.DataUnavailable))

	req.NoError(WritePidFile(path, 1234))

	pid, err := ReadPidFile(path)
	req.NoError(err)
	req.Equal(1234, pid)

	req.NoError(os.WriteFile(path, []byte("junk"), 0644))
	_, err = ReadPidFile(path)
	req.Error(err)

	req.NoError(RemovePidFile(path))
	req.NoError(RemovePidFile(path)) // absence tolerated
}
