package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport prints a per-stage summary of the workflow run. The
// full report goes to the structured log for bug reports.
var PrintWorkflowReport = func(report *automa.Report) {
	if report == nil {
		return
	}

	fmt.Printf("\nSetup summary (%s):\n", report.Status.String())
	for _, stepReport := range report.StepReports {
		line := fmt.Sprintf("  %-28s %s", stepReport.Id, stepReport.Status.String())
		if details := formatMetadata(stepReport.Metadata); details != "" {
			line += "  " + details
		}

		fmt.Println(line)
	}

	if b, err := yaml.Marshal(report); err == nil {
		logx.As().Debug().Str("workflow_id", report.Id).Msgf("workflow report:\n%s", b)
	}
}

// formatMetadata renders step metadata as key=value pairs, skipping the
// multi-line instructions blob.
func formatMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		if k == "instructions" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+metadata[k])
	}

	return strings.Join(pairs, " ")
}
