// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"context"
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog"
)

var logFields = struct {
	execCmd string
	execDir string
	execPid string
}{
	execCmd: "exec_cmd",
	execDir: "exec_dir",
	execPid: "exec_pid",
}

// CmdExecution executes a command and manages its lifecycle.
// It forcefully terminates the child process if ctx.Done() signal is received.
type CmdExecution struct {
	done   chan bool
	cmd    *exec.Cmd
	logger *zerolog.Logger
}

func NewCmdExecution(cmd *exec.Cmd, logger zerolog.Logger) *CmdExecution {
	sc := &CmdExecution{
		done:   make(chan bool),
		cmd:    cmd,
		logger: &logger,
	}

	return sc
}

// StopCmd stops monitoring the command execution.
func (sc *CmdExecution) StopCmd() {
	close(sc.done)
}

// RunCmd starts running the command while monitoring any ctx.Done() signal.
// The child is placed in its own process group so that a forced kill does not
// take the tool down with it.
func (sc *CmdExecution) RunCmd(ctx context.Context) error {
	curDir, err := os.Getwd()
	if err != nil {
		return err
	}

	defer func() {
		sc.StopCmd()
	}()

	sc.logger.Debug().
		Str(logFields.execCmd, sc.cmd.String()).
		Str(logFields.execDir, curDir).
		Msg("Executing command")

	sc.cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := sc.cmd.Start(); err != nil {
		return err
	}

	// monitor for interrupt signals to forcefully terminate the command process if needed
	go func() {
		select {
		case <-ctx.Done():
			sc.logger.Debug().
				Str(logFields.execCmd, sc.cmd.String()).
				Int(logFields.execPid, sc.cmd.Process.Pid).
				Msg("Force terminating command")

			err = syscall.Kill(-sc.cmd.Process.Pid, syscall.SIGKILL)
			if err != nil {
				sc.logger.Warn().
					Int(logFields.execPid, sc.cmd.Process.Pid).
					Err(err).
					Msg("Error occurred while terminating the process")
			}

			return
		case <-sc.done: // stop this coroutine
			return
		}
	}()

	sc.logger.Debug().
		Str(logFields.execCmd, sc.cmd.String()).
		Int(logFields.execPid, sc.cmd.Process.Pid).
		Msg("Waiting for command to finish execution")

	if err = sc.cmd.Wait(); err != nil {
		return err
	}

	return nil
}
