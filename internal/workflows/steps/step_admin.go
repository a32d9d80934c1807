// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/admin"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
)

const configureAdminStepId = "configure-admin-account"

// ConfigureAdminAccount prompts for the admin login and writes
// data/users.json. Keeping an existing record is a success, not a failure.
func ConfigureAdminAccount(state *setup.PipelineState, mgr *admin.Manager) automa.Builder {
	return automa.NewStepBuilder().
		WithId(configureAdminStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			rec, written, err := mgr.Configure()
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			state.Admin = rec
			state.AdminWritten = written

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"username": rec.Username,
				"written":  strconv.FormatBool(written),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Configuring the admin account")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Admin account ready")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Admin account configuration failed")
		})
}
