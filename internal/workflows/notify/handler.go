// SPDX-License-Identifier: Apache-2.0

// Package notify surfaces setup progress to the operator. The default
// handler prints one line per stage to the terminal and mirrors it into the
// structured log.
package notify

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/charmbracelet/lipgloss"
)

var (
	startMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render("•")
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("✓")
	failureMark = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("✗")
)

// Handler defines callbacks for stage events.
// Caller may pass a custom handler to route messages to a channel, a
// different logging mechanism or a webhook.
type Handler struct {
	StepStart      func(ctx context.Context, stp automa.Step, msg string, args ...interface{})
	StepCompletion func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
	StepFailure    func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{})
}

var handler = &Handler{
	StepStart: func(ctx context.Context, stp automa.Step, msg string, args ...interface{}) {
		fmt.Printf("%s %s\n", startMark, fmt.Sprintf(msg, args...))
		logx.As().Info().
			Str("step_id", stp.Id()).
			Msgf(msg, args...)
	},
	StepCompletion: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		fmt.Printf("%s %s\n", successMark, fmt.Sprintf(msg, args...))
		logx.As().Info().
			Str("step_id", stp.Id()).
			Str("status", report.Status.String()).
			Msgf(msg, args...)
	},
	StepFailure: func(ctx context.Context, stp automa.Step, report *automa.Report, msg string, args ...interface{}) {
		fmt.Printf("%s %s\n", failureMark, fmt.Sprintf(msg, args...))

		// find the root cause by going through nested step reports
		firstErrReport := report
		for _, stepReport := range report.StepReports {
			if stepReport.HasError() {
				firstErrReport = stepReport
				break
			}
		}

		l := logx.As().Error().Err(report.Error).
			Str("step_id", stp.Id()).
			Str("status", report.Status.String())
		if firstErrReport.Id != report.Id {
			l.
				Str("first_error", firstErrReport.Error.Error()).
				Str("first_error_step_id", firstErrReport.Id)
		}

		l.Msgf(msg, args...)
	},
}

// SetDefault sets the default callback handler for stage events.
// It only updates non-nil handlers to preserve existing defaults.
func SetDefault(h *Handler) {
	if h.StepStart != nil {
		handler.StepStart = h.StepStart
	}

	if h.StepCompletion != nil {
		handler.StepCompletion = h.StepCompletion
	}

	if h.StepFailure != nil {
		handler.StepFailure = h.StepFailure
	}
}

// As returns the current notification handler
func As() *Handler {
	return handler
}
