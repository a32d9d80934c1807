// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"

	"github.com/automa-saga/automa"

	"github.com/cursor-nexus/nexusctl/internal/doctor"
	"github.com/cursor-nexus/nexusctl/internal/workflows/steps"
	"github.com/spf13/cobra"
)

// RunWorkflow executes a workflow and handles error
func RunWorkflow(ctx context.Context, b automa.Builder) {
	wb, err := b.Build()
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	report := wb.Execute(ctx)
	CheckWorkflowReport(ctx, report)
}

func CheckWorkflowReport(ctx context.Context, report *automa.Report) {
	if report.Error != nil {
		doctor.CheckReportErr(ctx, report)
	}

	// For each step that failed, run the doctor to diagnose the error
	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			doctor.CheckReportErr(ctx, stepReport)
		}
	}

	steps.PrintWorkflowReport(report)
}

// DefaultRunE is a default RunE function that shows help message and provides a placeholder to add common behaviour.
func DefaultRunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}
