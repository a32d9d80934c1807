// SPDX-License-Identifier: Apache-2.0

// Package workflows assembles the setup pipeline from individual steps.
package workflows

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/admin"
	"github.com/cursor-nexus/nexusctl/internal/backup"
	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/credentials"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prereq"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
	"github.com/cursor-nexus/nexusctl/internal/workflows/steps"
)

// SetupOptions carries the collaborators for the setup workflow.
type SetupOptions struct {
	Layout   core.Layout
	Adapter  platform.Adapter
	Prompter prompt.Prompter
	Host     platform.Host

	// Preferred is the deployment mechanism offered first.
	Preferred deploy.Mechanism
}

// NewSetupWorkflow builds the full interactive setup pipeline. The read-only
// prerequisite check runs before the installation lock is taken; everything
// that mutates the installation runs after it.
func NewSetupWorkflow(state *setup.PipelineState, opts SetupOptions) *automa.WorkflowBuilder {
	checker := prereq.NewChecker(opts.Adapter)
	backupMgr := backup.NewManager(opts.Layout)
	collector := credentials.NewCollector(opts.Prompter, opts.Adapter)
	adminMgr := admin.NewManager(opts.Layout, opts.Prompter)
	installer := deploy.NewDependencyInstaller(opts.Layout, opts.Adapter, opts.Prompter)
	svc := deploy.NewService(opts.Layout, opts.Adapter)

	return automa.NewWorkflowBuilder().
		WithId("nexus-setup").Steps(
		steps.CheckPrerequisites(state, checker, opts.Prompter, opts.Host),
		steps.AcquireInstallLock(state, opts.Layout),
		steps.SnapshotExistingState(state, backupMgr),
		steps.InstallDependencies(installer),
		steps.ConfigureEnvironment(state, opts.Layout, collector, opts.Prompter),
		steps.ConfigureAdminAccount(state, adminMgr),
		steps.DeployService(state, svc, opts.Prompter, opts.Preferred),
	).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Starting Nexus setup")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Nexus setup failed")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Nexus setup completed successfully")
		})
}
