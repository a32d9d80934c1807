// SPDX-License-Identifier: Apache-2.0

// Package platform isolates every interaction with the host operating
// system: locating tools, running commands, spawning detached processes and
// opening a browser. Higher layers depend on the Adapter interface so tests
// can script host behaviour without touching the machine.
package platform

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/exc"
)

// Adapter is the host abstraction used by prerequisite checks, credential
// collection and deployment.
type Adapter interface {
	// LookPath reports the absolute path of an executable, or an error if
	// it is not on PATH.
	LookPath(name string) (string, error)

	// CaptureOutput runs a command and returns its combined output.
	CaptureOutput(ctx context.Context, dir string, name string, args ...string) (string, error)

	// RunInteractive runs a command attached to the tool's stdio and blocks
	// until it exits.
	RunInteractive(ctx context.Context, dir string, name string, args ...string) error

	// StartDetached launches a command in its own process group with stdout
	// and stderr appended to logPath, and returns the child pid without
	// waiting for it.
	StartDetached(dir string, logPath string, name string, args ...string) (int, error)

	// ProcessAlive reports whether a process with the given pid exists.
	ProcessAlive(pid int) bool

	// SignalGroup delivers a signal to the process group of pid.
	SignalGroup(pid int, sig syscall.Signal) error

	// OpenBrowser opens url in the host's default browser.
	OpenBrowser(ctx context.Context, url string) error
}

type local struct {
	host Host
}

// NewLocal returns an Adapter bound to the current host.
func NewLocal() Adapter {
	return &local{host: DetectHost()}
}

func (l *local) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errorx.DataUnavailable.Wrap(err, "executable %s not found on PATH", name)
	}

	return path, nil
}

func (l *local) CaptureOutput(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), errorx.IllegalState.Wrap(err, "command %s failed", cmd.String())
	}

	return string(out), nil
}

func (l *local) RunInteractive(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return exc.NewCmdExecution(cmd, *logx.As()).RunCmd(ctx)
}

func (l *local) StartDetached(dir string, logPath string, name string, args ...string) (int, error) {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, core.DefaultFileMode)
	if err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to open service log %s", logPath)
	}
	defer logFile.Close()

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return 0, errorx.ExternalError.Wrap(err, "failed to start %s", cmd.String())
	}

	pid := cmd.Process.Pid
	logx.As().Debug().Str("cmd", cmd.String()).Int("pid", pid).Msg("Started detached process")

	// Reap the child in the background so it does not linger as a zombie
	// while the tool is still running.
	go func() { _ = cmd.Wait() }()

	return pid, nil
}

func (l *local) ProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}

	// EPERM means the process exists but belongs to another user.
	return err == syscall.EPERM
}

func (l *local) SignalGroup(pid int, sig syscall.Signal) error {
	if err := syscall.Kill(-pid, sig); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to signal process group %d", pid)
	}

	return nil
}

func (l *local) OpenBrowser(ctx context.Context, url string) error {
	name, args := BrowserCommand(l.host, url)

	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to launch browser via %s", name)
	}

	go func() { _ = cmd.Wait() }()

	return nil
}

// Host identifies the operating system flavour relevant to command dispatch.
type Host struct {
	OS  string
	WSL bool
}

// DetectHost inspects the runtime platform. WSL is detected by the
// "microsoft" marker the WSL kernel puts in /proc/version.
func DetectHost() Host {
	return detectHost(osRelease())
}

func detectHost(procVersion string) Host {
	h := Host{OS: goos()}
	if h.OS == "linux" && strings.Contains(strings.ToLower(procVersion), "microsoft") {
		h.WSL = true
	}

	return h
}

func osRelease() string {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return ""
	}

	return string(data)
}
