// SPDX-License-Identifier: Apache-2.0

// Package erx binds errors to process exit codes so a failing command can
// terminate with a code that tells scripts what class of failure occurred.
package erx

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/errbase"

	"github.com/cursor-nexus/nexusctl/pkg/exit"
)

const commandErrorMsg string = "%s - Exit Code: %d"

// CommandError binds an error with an exit.Code.
type CommandError struct {
	cause    error // Note: cause could be nil
	exitCode exit.Code
	msg      string
}

// NewCommandError is a constructor for creating a CommandError type
func NewCommandError(cause error, code exit.Code, msg string) error {
	if code < exit.MinValidExitCode || code > exit.MaxValidExitCode {
		code = exit.GeneralError
	}

	return &CommandError{cause: cause, exitCode: code, msg: msg}
}

func (e *CommandError) ExitCode() exit.Code {
	return e.exitCode
}

func (e *CommandError) Msg() string {
	return e.msg
}

// Error returns a human-friendly error message.
func (e *CommandError) Error() string {
	return fmt.Sprintf(commandErrorMsg, e.Msg(), e.ExitCode())
}

// Unwrap returns the error cause from an
// instance of CommandError.
func (e *CommandError) Unwrap() error {
	return e.cause
}

// Cause returns the root cause from an
// instance of error.
func (e *CommandError) Cause() error {
	return e.cause
}

// Is returns true if error is a CommandError.
func (e *CommandError) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(e)
}

// Format is called when printing errors via logging, etc
func (e *CommandError) Format(f fmt.State, verb rune) {
	errors.FormatError(e, f, verb)
}

// FormatError is called when printing errors via logging, etc
func (e *CommandError) FormatError(p errbase.Printer) error {
	if p.Detail() {
		p.Print(e.Error())
	}

	return e.cause
}

// SafeDetails emits a PII-safe slice.
func (e *CommandError) SafeDetails() []string {
	return []string{e.ExitCode().String(), e.Msg()}
}

// ExitCodeOf returns the exit code carried by err, or GeneralError when err
// carries none.
func ExitCodeOf(err error) exit.Code {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.ExitCode()
	}

	return exit.GeneralError
}
