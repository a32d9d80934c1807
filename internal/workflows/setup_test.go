// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/admin"
	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/envfile"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
)

// setupStageOrder is the pipeline contract: the read-only prerequisite check
// runs first, the backup lands before any stage mutates the installation and
// dependencies are installed before configuration and deployment.
var setupStageOrder = []string{
	"check-prerequisites",
	"acquire-install-lock",
	"snapshot-existing-state",
	"install-dependencies",
	"configure-environment",
	"configure-admin-account",
	"deploy-service",
}

func fullToolingAdapter() *platform.FakeAdapter {
	adapter := platform.NewFakeAdapter()
	adapter.Paths = map[string]string{
		"node":   "/usr/bin/node",
		"npm":    "/usr/bin/npm",
		"docker": "/usr/bin/docker",
		"git":    "/usr/bin/git",
	}
	adapter.Outputs = map[string]string{
		"node --version":         "v20.11.1",
		"npm --version":          "10.2.4",
		"docker --version":       "Docker version 24.0.5, build ced0996",
		"docker compose version": "Docker Compose version v2.24.5",
		"git --version":          "git version 2.43.0",
	}

	return adapter
}

func TestSetupWorkflow_FreshInstallViaDocker(t *testing.T) {
	req := require.New(t)

	layout := core.NewLayout(t.TempDir())
	req.NoError(os.WriteFile(layout.ManifestFile(), []byte("services: {}\n"), 0644))

	adapter := fullToolingAdapter()
	script := &prompt.Scripted{
		Inputs:     []string{"", "", "ops"},
		Passwords:  []string{"tok-live-1", "hunter2"},
		Confirms:   []bool{false, false, false},
		Selections: []string{"round-robin", "Paste an existing Cursor session token", "docker"},
	}

	state := &setup.PipelineState{}
	defer func() {
		req.NoError(state.ReleaseLock())
	}()

	wb, err := NewSetupWorkflow(state, SetupOptions{
		Layout:    layout,
		Adapter:   adapter,
		Prompter:  script,
		Host:      platform.Host{OS: "darwin"},
		Preferred: deploy.MechanismDocker,
	}).Build()
	req.NoError(err)

	report := wb.Execute(context.Background())
	req.Equal(automa.StatusSuccess, report.Status)

	var order []string
	for _, stepReport := range report.StepReports {
		order = append(order, stepReport.Id)
		req.Equal(automa.StatusSuccess, stepReport.Status, "step %q failed: %v", stepReport.Id, stepReport.Error)
	}

	req.Equal(setupStageOrder, order)

	// the backup snapshot was taken before configuration wrote anything
	req.NotNil(state.Backup)
	req.Zero(state.Backup.Files)
	req.DirExists(state.Backup.Dir)

	doc, err := envfile.Load(layout.EnvFile())
	req.NoError(err)

	port, ok := doc.Get("PORT")
	req.True(ok)
	req.Equal("3010", port)

	raw, ok := doc.Get("API_KEYS")
	req.True(ok)

	tm, err := envfile.ParseTokenMap(raw)
	req.NoError(err)
	req.Len(tm, 1)
	for key, tokens := range tm {
		req.Equal(key, state.Credentials.ApiKey)
		req.Equal([]string{"tok-live-1"}, tokens)
	}

	rec, err := admin.Load(layout.UsersFile())
	req.NoError(err)
	req.Equal("ops", rec.Username)
	req.Equal("hunter2", rec.Password)
	req.True(state.AdminWritten)

	req.Equal(deploy.MechanismDocker, state.Mechanism)

	npmAt, composeAt := -1, -1
	for i, call := range adapter.Calls {
		switch call {
		case "npm install":
			npmAt = i
		case "docker compose up -d --build":
			composeAt = i
		}
	}

	req.GreaterOrEqual(npmAt, 0)
	req.Greater(composeAt, npmAt)
}

func TestSetupWorkflow_SecondRunCannotGrabTheLock(t *testing.T) {
	req := require.New(t)

	layout := core.NewLayout(t.TempDir())

	held, err := setup.AcquireLock(layout.LockFile())
	req.NoError(err)
	defer func() {
		req.NoError(held.Release())
	}()

	adapter := fullToolingAdapter()
	script := &prompt.Scripted{}

	state := &setup.PipelineState{}

	wb, err := NewSetupWorkflow(state, SetupOptions{
		Layout:    layout,
		Adapter:   adapter,
		Prompter:  script,
		Host:      platform.Host{OS: "darwin"},
		Preferred: deploy.MechanismDocker,
	}).Build()
	req.NoError(err)

	report := wb.Execute(context.Background())
	req.Equal(automa.StatusFailed, report.Status)

	// nothing past the lock stage ran
	req.Nil(state.Backup)
	req.NotContains(adapter.Calls, "npm install")
	req.NoFileExists(layout.EnvFile())
}
