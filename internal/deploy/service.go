// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/platform"
)

// stopGrace is how long a signalled process group gets to exit before it is
// killed.
const stopGrace = 3 * time.Second

// Service operates the deployed service: start, stop, logs.
type Service struct {
	layout  core.Layout
	adapter platform.Adapter

	grace time.Duration
	sleep func(time.Duration)
}

func NewService(layout core.Layout, adapter platform.Adapter) *Service {
	return &Service{
		layout:  layout,
		adapter: adapter,
		grace:   livenessGrace,
		sleep:   time.Sleep,
	}
}

// StartDocker brings the compose stack up. A missing manifest is fatal,
// retrying cannot fix it.
func (s *Service) StartDocker(ctx context.Context) error {
	manifest := s.layout.ManifestFile()
	if _, err := os.Stat(manifest); err != nil {
		return ErrManifestMissing.New("compose manifest %s not found", manifest)
	}

	return s.adapter.RunInteractive(ctx, s.layout.InstallDir(),
		"docker", "compose", "up", "-d", "--build")
}

// StartProcess launches the service as a detached npm process, waits a
// short grace period and records the pid once the process proves alive.
func (s *Service) StartProcess(_ context.Context) error {
	if err := os.MkdirAll(s.layout.LogsDir(), core.DefaultDirMode); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create %s", s.layout.LogsDir())
	}

	pid, err := s.adapter.StartDetached(s.layout.InstallDir(), s.layout.ServiceLogFile(),
		"npm", "start")
	if err != nil {
		return err
	}

	// give the process a moment to fail fast on startup errors
	s.sleep(s.grace)

	if !s.adapter.ProcessAlive(pid) {
		return ErrServiceDied.New("service process %d exited during startup, see %s",
			pid, s.layout.ServiceLogFile())
	}

	return WritePidFile(s.layout.PidFile(), pid)
}

// Start brings the service up through the given mechanism.
func (s *Service) Start(ctx context.Context, mech Mechanism) error {
	switch mech {
	case MechanismDocker:
		return s.StartDocker(ctx)
	case MechanismProcess:
		return s.StartProcess(ctx)
	default:
		return errorx.IllegalArgument.New("unknown deployment mechanism: %s", mech)
	}
}

// Stop shuts the service down. A pid file selects the detached process
// path; otherwise a compose manifest selects the stack path. Neither being
// present is an error.
func (s *Service) Stop(ctx context.Context) error {
	pid, err := ReadPidFile(s.layout.PidFile())
	if err == nil {
		return s.stopProcess(pid)
	}

	if !errorx.IsOfType(err, errorx.DataUnavailable) {
		return err
	}

	if _, serr := os.Stat(s.layout.ManifestFile()); serr == nil {
		return s.adapter.RunInteractive(ctx, s.layout.InstallDir(),
			"docker", "compose", "down")
	}

	return err
}

func (s *Service) stopProcess(pid int) error {
	if !s.adapter.ProcessAlive(pid) {
		logx.As().Info().Int("pid", pid).Msg("Service process already gone")

		return RemovePidFile(s.layout.PidFile())
	}

	if err := s.adapter.SignalGroup(pid, syscall.SIGTERM); err != nil {
		return err
	}

	s.sleep(stopGrace)

	if s.adapter.ProcessAlive(pid) {
		logx.As().Warn().Int("pid", pid).Msg("Service ignored SIGTERM, killing")

		if err := s.adapter.SignalGroup(pid, syscall.SIGKILL); err != nil {
			return err
		}
	}

	return RemovePidFile(s.layout.PidFile())
}

// Restart stops the service if it is running and starts it again through
// the given mechanism.
func (s *Service) Restart(ctx context.Context, mech Mechanism) error {
	if err := s.Stop(ctx); err != nil && !errorx.IsOfType(err, errorx.DataUnavailable) {
		return err
	}

	return s.Start(ctx, mech)
}

// Logs streams service output: compose logs for a stack deployment, the
// service log file otherwise.
func (s *Service) Logs(ctx context.Context, follow bool) error {
	if _, err := os.Stat(s.layout.PidFile()); err == nil {
		args := []string{}
		if follow {
			args = append(args, "-f")
		}

		args = append(args, s.layout.ServiceLogFile())

		return s.adapter.RunInteractive(ctx, s.layout.InstallDir(), "tail", args...)
	}

	if _, err := os.Stat(s.layout.ManifestFile()); err == nil {
		args := []string{"compose", "logs"}
		if follow {
			args = append(args, "-f")
		}

		return s.adapter.RunInteractive(ctx, s.layout.InstallDir(), "docker", args...)
	}

	return errorx.DataUnavailable.New("nothing to show logs for in %s", s.layout.InstallDir())
}

// Running reports whether a detached service process is alive, and its pid.
func (s *Service) Running() (bool, int) {
	pid, err := ReadPidFile(s.layout.PidFile())
	if err != nil {
		return false, 0
	}

	return s.adapter.ProcessAlive(pid), pid
}
