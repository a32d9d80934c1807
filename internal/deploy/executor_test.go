// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
)

const composeUp = "docker compose up -d --build"

func newTestService(t *testing.T, fake *platform.FakeAdapter) (*Service, core.Layout) {
	t.Helper()

	layout := core.NewLayout(t.TempDir())
	svc := NewService(layout, fake)
	svc.sleep = func(time.Duration) {}

	return svc, layout
}

func writeManifest(t *testing.T, layout core.Layout) {
	t.Helper()
	require.NoError(t, os.WriteFile(layout.ManifestFile(), []byte("services: {}\n"), 0644))
}

func failN(n int) []error {
	errs := make([]error, n)
	for i := range errs {
		errs[i] = errorx.ExternalError.New("boom")
	}

	return errs
}

func TestExecutor_Deploy_SucceedsFirstAttempt(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)
	writeManifest(t, layout)

	script := &prompt.Scripted{}
	exec := NewExecutor(svc, script)

	req.NoError(exec.Deploy(context.Background(), MechanismDocker))
	req.Len(exec.Attempts(), 1)
	req.Empty(script.Asked)
}

func TestExecutor_Deploy_RetriesExactlyThreeTimes(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)
	writeManifest(t, layout)

	fake.Errs[composeUp] = failN(5)

	script := &prompt.Scripted{Confirms: []bool{false}} // decline fallback
	exec := NewExecutor(svc, script)

	err := exec.Deploy(context.Background(), MechanismDocker)
	req.Error(err)

	// exactly three attempts, not four, not five
	req.Len(exec.Attempts(), 3)
	for i, a := range exec.Attempts() {
		req.Equal(MechanismDocker, a.Mechanism)
		req.Equal(i+1, a.Number)
		req.Error(a.Err)
	}
}

func TestExecutor_Deploy_FallbackReachesOtherMechanism(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)
	writeManifest(t, layout)

	fake.Errs[composeUp] = failN(3)

	script := &prompt.Scripted{Confirms: []bool{true}} // accept fallback
	exec := NewExecutor(svc, script)

	req.NoError(exec.Deploy(context.Background(), MechanismDocker))

	attempts := exec.Attempts()
	req.Len(attempts, 4)
	req.Equal(MechanismProcess, attempts[3].Mechanism)
	req.Equal(1, attempts[3].Number)
	req.NoError(attempts[3].Err)

	// the detached process recorded its pid
	_, err := os.Stat(layout.PidFile())
	req.NoError(err)
}

func TestExecutor_Deploy_MissingManifestIsFatalNotRetried(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, _ := newTestService(t, fake) // no manifest written

	script := &prompt.Scripted{}
	exec := NewExecutor(svc, script)

	err := exec.Deploy(context.Background(), MechanismDocker)
	req.Error(err)
	req.True(errorx.IsOfType(err, ErrManifestMissing))

	// one attempt, no retries, no fallback offer
	req.Len(exec.Attempts(), 1)
	req.Empty(script.Asked)
	req.Empty(fake.Calls)
}

func TestExecutor_Deploy_FallbackAtMostOncePerDirection(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, layout := newTestService(t, fake)
	writeManifest(t, layout)

	fake.Errs[composeUp] = failN(6)
	fake.Errs["npm start"] = failN(3)

	script := &prompt.Scripted{Confirms: []bool{true, true, true}}
	exec := NewExecutor(svc, script)

	err := exec.Deploy(context.Background(), MechanismDocker)
	req.Error(err)

	// docker x3, process x3, docker x3 again via the reverse direction,
	// then the docker->process direction is spent and the run stops
	req.Len(exec.Attempts(), 9)
	req.Len(script.Asked, 2)
	req.Len(script.Confirms, 1) // third answer never consumed
}

func TestExecutor_Deploy_ProcessDeathDuringGraceFails(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	svc, _ := newTestService(t, fake)

	// the process dies while the executor waits out the grace period
	svc.sleep = func(time.Duration) { delete(fake.Alive, fake.NextPid) }

	script := &prompt.Scripted{Confirms: []bool{false}}
	exec := NewExecutor(svc, script)

	err := exec.Deploy(context.Background(), MechanismProcess)
	req.Error(err)
	req.True(errorx.IsOfType(err, ErrServiceDied))
	req.Len(exec.Attempts(), 3)
}
