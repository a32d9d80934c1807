// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
	"github.com/cursor-nexus/nexusctl/pkg/erx"
	"github.com/cursor-nexus/nexusctl/pkg/exit"
)

const acquireLockStepId = "acquire-install-lock"

const lockInstructions = `Another setup run appears to be in progress for this installation.
Wait for it to finish, or remove the lock file if you are sure it is stale.`

// AcquireInstallLock takes the advisory lock before the first mutating
// stage. The lock is held on the pipeline state and released by the caller
// when the run ends.
func AcquireInstallLock(state *setup.PipelineState, layout core.Layout) automa.Builder {
	return automa.NewStepBuilder().
		WithId(acquireLockStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			lock, err := setup.AcquireLock(layout.LockFile())
			if err != nil {
				return automa.FailureReport(stp,
					automa.WithError(erx.NewCommandError(err, exit.LockContention, "could not lock the installation")),
					automa.WithMetadata(map[string]string{"instructions": lockInstructions}))
			}

			state.HoldLock(lock)

			return automa.SuccessReport(stp)
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := state.ReleaseLock(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Could not lock the installation")
		})
}
