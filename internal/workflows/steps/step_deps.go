// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
)

const installDependenciesStepId = "install-dependencies"

const depsInstructions = `npm install kept failing. Common causes:
  - no network access to the npm registry
  - an unsupported node version (18 or newer is required)
Inspect the npm output above, fix the cause and run setup again.`

// InstallDependencies runs npm install with bounded retries.
func InstallDependencies(installer *deploy.DependencyInstaller) automa.Builder {
	return automa.NewStepBuilder().
		WithId(installDependenciesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if err := installer.Install(ctx); err != nil {
				return automa.FailureReport(stp,
					automa.WithError(err),
					automa.WithMetadata(map[string]string{"instructions": depsInstructions}))
			}

			return automa.SuccessReport(stp)
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Installing service dependencies")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Dependencies installed")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Dependency installation failed")
		})
}
