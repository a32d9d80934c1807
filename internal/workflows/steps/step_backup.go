// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/backup"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
)

const snapshotStateStepId = "snapshot-existing-state"

// SnapshotExistingState backs up the environment file and data directory
// before any stage mutates them.
func SnapshotExistingState(state *setup.PipelineState, mgr *backup.Manager) automa.Builder {
	return automa.NewStepBuilder().
		WithId(snapshotStateStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			snap, err := mgr.Create()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			state.Backup = snap

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"backupDir":   snap.Dir,
				"backupFiles": strconv.Itoa(snap.Files),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Backing up existing configuration")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Backup complete")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Backup failed")
		})
}
