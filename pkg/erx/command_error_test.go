// SPDX-License-Identifier: Apache-2.0

package erx

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/pkg/exit"
)

var testErrorMsg = "test error message"

func TestCommandError_ExitCode(t *testing.T) {
	req := require.New(t)

	err := NewCommandError(errors.New("port busy"), exit.DeploymentError, "deployment failed")
	req.Equal(exit.DeploymentError, err.(*CommandError).ExitCode())
}

func TestCommandError_ExitCodeOutOfRange(t *testing.T) {
	req := require.New(t)

	err := NewCommandError(errors.New(testErrorMsg), -1, testErrorMsg)
	req.Equal(exit.GeneralError, err.(*CommandError).ExitCode())

	err = NewCommandError(errors.New(testErrorMsg), 256, testErrorMsg)
	req.Equal(exit.GeneralError, err.(*CommandError).ExitCode())
}

func TestCommandError_Cause(t *testing.T) {
	req := require.New(t)

	originalErrMsg := "Original error message"

	err := NewCommandError(errors.New(originalErrMsg), 1, testErrorMsg)
	req.NotEmpty(err.(*CommandError).Cause())
	req.Equal(originalErrMsg, err.(*CommandError).Cause().Error())

	err = NewCommandError(nil, 1, testErrorMsg)
	req.Nil(err.(*CommandError).Cause())
	req.Equal(fmt.Sprintf(commandErrorMsg, testErrorMsg, 1), err.Error())
}

func TestCommandError_Unwrap(t *testing.T) {
	req := require.New(t)

	originalErrMsg := "Original error message"

	err := NewCommandError(errors.New(originalErrMsg), 1, testErrorMsg)
	req.NotEmpty(err.(*CommandError).Unwrap())
	req.Equal(originalErrMsg, err.(*CommandError).Unwrap().Error())
}

func TestCommandError_Is(t *testing.T) {
	req := require.New(t)

	cmdErr := NewCommandError(errors.New("node missing"), exit.PrerequisiteError, testErrorMsg)
	req.True(errors.Is(cmdErr, &CommandError{}))

	genericErr := errors.New(testErrorMsg)
	req.False(errors.Is(genericErr, &CommandError{}))
}

func TestExitCodeOf(t *testing.T) {
	req := require.New(t)

	err := NewCommandError(errors.New("held"), exit.LockContention, "lock held")
	req.Equal(exit.LockContention, ExitCodeOf(err))

	wrapped := errors.Wrap(err, "setup failed")
	req.Equal(exit.LockContention, ExitCodeOf(wrapped))

	req.Equal(exit.GeneralError, ExitCodeOf(errors.New("plain")))
}
