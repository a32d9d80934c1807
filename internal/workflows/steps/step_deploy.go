// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
	"github.com/cursor-nexus/nexusctl/pkg/erx"
	"github.com/cursor-nexus/nexusctl/pkg/exit"
)

const deployServiceStepId = "deploy-service"

const deployInstructions = `Deployment did not succeed with either mechanism.
  - docker: make sure the docker daemon is running and docker-compose.yml exists
  - process: inspect logs/nexus.log for startup errors
Fix the cause and run setup again, or start the service manually.`

// DeployService lets the operator pick a mechanism and brings the service
// up through the retry and fallback executor.
func DeployService(state *setup.PipelineState, svc *deploy.Service,
	prompter prompt.Prompter, preferred deploy.Mechanism) automa.Builder {
	return automa.NewStepBuilder().
		WithId(deployServiceStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			def := preferred
			if def == deploy.MechanismDocker && !state.DockerAvailable {
				def = deploy.MechanismProcess
			}

			choice, err := prompter.Select("Deployment mechanism", orderedWithDefault(
				[]string{string(deploy.MechanismDocker), string(deploy.MechanismProcess)},
				string(def)))
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			mech, err := deploy.ParseMechanism(choice)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			state.Mechanism = mech

			executor := deploy.NewExecutor(svc, prompter)
			deployErr := executor.Deploy(ctx, mech)

			attempts := executor.Attempts()
			metadata := map[string]string{
				"mechanism": string(mech),
				"attempts":  strconv.Itoa(len(attempts)),
			}

			if len(attempts) > 0 {
				metadata["finalMechanism"] = string(attempts[len(attempts)-1].Mechanism)
			}

			if deployErr != nil {
				metadata["instructions"] = deployInstructions

				return automa.FailureReport(stp,
					automa.WithError(erx.NewCommandError(deployErr, exit.DeploymentError, "deployment failed")),
					automa.WithMetadata(metadata))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(metadata))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Deploying the service")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Service deployed")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Service deployment failed")
		})
}
