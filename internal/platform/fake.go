// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"context"
	"strconv"
	"strings"
	"syscall"

	"github.com/joomcode/errorx"
)

// FakeAdapter is a scriptable Adapter for tests. Results are keyed by the
// full command line ("name arg1 arg2"). Unknown commands fail.
type FakeAdapter struct {
	// Paths maps executable names to their fake locations. Absent names
	// are reported as not found.
	Paths map[string]string

	// Outputs maps command lines to captured output.
	Outputs map[string]string

	// Errs maps command lines to forced failures. A command line may carry
	// a list of errors which are consumed one per invocation, so a test
	// can fail a command N times and then let it succeed.
	Errs map[string][]error

	// Calls records every executed command line in order.
	Calls []string

	// NextPid is returned by StartDetached.
	NextPid int

	// Alive lists pids considered running.
	Alive map[int]bool

	// Signals records every SignalGroup call as "sig:pid".
	Signals []string

	// BrowserURLs records every OpenBrowser call.
	BrowserURLs []string
}

func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		Paths:   map[string]string{},
		Outputs: map[string]string{},
		Errs:    map[string][]error{},
		Alive:   map[int]bool{},
		NextPid: 4242,
	}
}

func cmdline(name string, args ...string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func (f *FakeAdapter) takeErr(line string) error {
	errs := f.Errs[line]
	if len(errs) == 0 {
		return nil
	}

	err := errs[0]
	f.Errs[line] = errs[1:]

	return err
}

func (f *FakeAdapter) LookPath(name string) (string, error) {
	if path, ok := f.Paths[name]; ok {
		return path, nil
	}

	return "", errorx.DataUnavailable.New("executable %s not found on PATH", name)
}

func (f *FakeAdapter) CaptureOutput(_ context.Context, _ string, name string, args ...string) (string, error) {
	line := cmdline(name, args...)
	f.Calls = append(f.Calls, line)

	if err := f.takeErr(line); err != nil {
		return "", err
	}

	return f.Outputs[line], nil
}

func (f *FakeAdapter) RunInteractive(_ context.Context, _ string, name string, args ...string) error {
	line := cmdline(name, args...)
	f.Calls = append(f.Calls, line)

	return f.takeErr(line)
}

func (f *FakeAdapter) StartDetached(_ string, _ string, name string, args ...string) (int, error) {
	line := cmdline(name, args...)
	f.Calls = append(f.Calls, line)

	if err := f.takeErr(line); err != nil {
		return 0, err
	}

	f.Alive[f.NextPid] = true

	return f.NextPid, nil
}

func (f *FakeAdapter) ProcessAlive(pid int) bool {
	return f.Alive[pid]
}

func (f *FakeAdapter) SignalGroup(pid int, sig syscall.Signal) error {
	f.Signals = append(f.Signals, sig.String()+":"+strconv.Itoa(pid))
	if sig == syscall.SIGKILL || sig == syscall.SIGTERM {
		delete(f.Alive, pid)
	}

	return nil
}

func (f *FakeAdapter) OpenBrowser(_ context.Context, url string) error {
	f.BrowserURLs = append(f.BrowserURLs, url)

	return nil
}
