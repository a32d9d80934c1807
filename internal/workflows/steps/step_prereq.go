// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prereq"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
	"github.com/cursor-nexus/nexusctl/pkg/erx"
	"github.com/cursor-nexus/nexusctl/pkg/exit"
)

const checkPrerequisitesStepId = "check-prerequisites"

const prereqInstructions = `Install the missing tools and run setup again:
  - node 18 or newer: https://nodejs.org
  - npm (ships with node)
Docker is optional and only needed for the docker deployment mechanism.`

// CheckPrerequisites probes the host tooling and records the outcome on the
// pipeline state. On Linux the operator may have missing required tools
// installed through the system package manager; anything still missing
// afterwards is an operator decision, continue without the tools or abort.
func CheckPrerequisites(state *setup.PipelineState, checker *prereq.Checker,
	prompter prompt.Prompter, host platform.Host) automa.Builder {
	return automa.NewStepBuilder().
		WithId(checkPrerequisitesStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			statuses := checker.CheckAll(ctx, prereq.DefaultTools())

			missing := prereq.MissingRequired(statuses)
			if len(missing) > 0 && host.OS == "linux" {
				var pkgs []string
				for _, tool := range missing {
					pkgs = append(pkgs, tool.Package)
				}

				install, err := prompter.Confirm(
					fmt.Sprintf("Install missing packages via the system package manager? (%s)",
						strings.Join(pkgs, ", ")), true)
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				if install {
					if err := prereq.InstallPackages(pkgs); err != nil {
						logx.As().Warn().Err(err).Msg("System package installation failed")
					}

					statuses = checker.CheckAll(ctx, prereq.DefaultTools())
					missing = prereq.MissingRequired(statuses)
				}
			}

			state.Prereqs = statuses
			state.DockerAvailable = state.HasPrereq("docker") && state.HasPrereq("docker compose")

			metadata := map[string]string{}
			for _, s := range statuses {
				if s.Found {
					metadata[s.Tool.Name] = s.Version
				}
			}

			if len(missing) > 0 {
				var names []string
				for _, tool := range missing {
					names = append(names, tool.Name)
				}
				missingList := strings.Join(names, ", ")

				cont, err := prompter.Confirm(
					fmt.Sprintf("Required tools are missing (%s). Continue setup anyway?", missingList), false)
				if err != nil {
					return automa.FailureReport(stp, automa.WithError(err))
				}

				if !cont {
					err := errorx.RejectedOperation.New("setup aborted, required tools missing: %s", missingList)

					return automa.FailureReport(stp,
						automa.WithError(erx.NewCommandError(err, exit.PrerequisiteError, "prerequisite check failed")),
						automa.WithMetadata(map[string]string{"instructions": prereqInstructions}))
				}

				logx.As().Warn().Str("missing", missingList).Msg("Continuing setup without required tools")
				metadata["missing"] = missingList
			}

			return automa.SuccessReport(stp, automa.WithMetadata(metadata))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking prerequisites")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Prerequisites satisfied")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Prerequisite check failed")
		})
}
