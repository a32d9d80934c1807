package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/config"
	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/version"
	"github.com/cursor-nexus/nexusctl/pkg/erx"
)

type ErrorDiagnosis struct {
	Error      error    `yaml:"error" json:"error"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause" json:"cause"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	TraceId    string   `yaml:"traceId" json:"traceId"`
	Commit     string   `yaml:"commit" json:"commit"`
	Version    string   `yaml:"version" json:"version"`
	Pid        int      `yaml:"pid" json:"pid"`
	Code       int      `yaml:"code" json:"code"`
	Logfile    string   `yaml:"log" json:"log"`
	Stacktrace string   `yaml:"stacktrace" json:"stacktrace"`
	Resolution []string `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		return 10400
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure %q is provided.", arg.(string))}
		}
		return []string{"Ensure all required arguments are provided."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg.(string))}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// takeStacktraceSnapshot writes the failing stack into the logs directory so
// a bug report can carry it.
func takeStacktraceSnapshot(ex error) string {
	timestamp := time.Now().Format(core.BackupStampLayout)

	logsDir := config.Get().Layout().LogsDir()
	if err := os.MkdirAll(logsDir, core.DefaultDirMode); err != nil {
		return ""
	}

	path := filepath.Join(logsDir, "stacktrace-"+timestamp+".txt")
	f, err := os.Create(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	if ex != nil {
		_, _ = fmt.Fprintf(f, "%+v\n", ex)
	} else {
		buf := make([]byte, 1<<16)
		n := runtime.Stack(buf, true)
		_, _ = f.Write(buf[:n])
	}

	return path
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	var traceId string
	if ctx.Value("traceId") != nil {
		traceId = ctx.Value("traceId").(string)
	}

	msg, cause := toErrorMessage(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		Commit:     version.Commit(),
		Version:    version.Version(),
		Pid:        os.Getpid(),
		Logfile:    config.Get().Log.Filename,
		Stacktrace: takeStacktraceSnapshot(ex),
		Resolution: findResolution(ex),
	}
}

// CheckErr prints diagnosis and exits. The exit code is taken from the error
// when it carries one, otherwise the general error code is used.
// Optional instructions can be provided to give additional context to the user
func CheckErr(ctx context.Context, err error, instructions ...string) {
	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)

	errMark := errHeaderStyle.Render("*")
	hintMark := hintHeaderStyle.Render("*")

	fmt.Printf("\n%s\n", banner(errHeaderStyle, "Error Diagnostics"))
	fmt.Printf("%s\t%s %s\n", errMark, labelStyle.Render("Error:"), resp.Message)
	if resp.Cause != "" {
		fmt.Printf("%s\t%s %s\n", errMark, labelStyle.Render("Cause:"), resp.Cause)
	}
	fmt.Printf("%s\t%s %s\n", errMark, labelStyle.Render("Error Type:"), resp.ErrorType)
	fmt.Printf("%s\t%s %d\n", errMark, labelStyle.Render("Error Code:"), resp.Code)
	fmt.Printf("%s\t%s\n", errMark, dimStyle.Render(fmt.Sprintf("Commit: %s", resp.Commit)))
	fmt.Printf("%s\t%s\n", errMark, dimStyle.Render(fmt.Sprintf("Pid: %d", resp.Pid)))
	fmt.Printf("%s\t%s\n", errMark, dimStyle.Render(fmt.Sprintf("TraceId: %s", resp.TraceId)))
	fmt.Printf("%s\t%s\n", errMark, dimStyle.Render(fmt.Sprintf("Version: %s", resp.Version)))
	if resp.Logfile != "" {
		fmt.Printf("%s\t%s %s\n", errMark, fileStyle.Render("Logfile:"), resp.Logfile)
	}
	if resp.Stacktrace != "" {
		fmt.Printf("%s\t%s %s\n", errMark, fileStyle.Render("Stacktrace:"), resp.Stacktrace)
	}
	fmt.Printf("%s\n", rule(errHeaderStyle))
	fmt.Printf("\n%s\n", banner(hintHeaderStyle, "Resolution"))

	// Print custom instructions first if provided
	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				fmt.Printf("%s\n", hintMark)
			} else {
				fmt.Printf("%s\t%s\n", hintMark, labelStyle.Render(line))
			}
		}
		if len(resp.Resolution) > 0 {
			fmt.Printf("%s\n", hintMark)
		}
	}

	for _, r := range resp.Resolution {
		fmt.Printf("%s\t%s\n", hintMark, hintStyle.Render(r))
	}

	fmt.Printf("%s\n", rule(hintHeaderStyle))

	erx.ExitCodeOf(err).TerminateProcess()
}

// CheckReportErr inspects a workflow report and, if it failed, prints the
// diagnosis with any resolution instructions carried in the report metadata.
func CheckReportErr(ctx context.Context, report *automa.Report) {
	if report == nil || report.IsSuccess() {
		return
	}

	err := report.Error
	if err == nil {
		err = errorx.IllegalState.New("workflow %s failed without an error", report.Id)
	}

	CheckErr(ctx, err, GetInstructionsFromReport(report))
}

// GetInstructionsFromReport recursively searches for instructions in report metadata.
// Returns the first non-empty instructions found in the report tree, or an empty string if none exist.
func GetInstructionsFromReport(report *automa.Report) string {
	if report == nil {
		return ""
	}

	if instructions, ok := report.Metadata["instructions"]; ok {
		return instructions
	}

	for _, stepReport := range report.StepReports {
		if instructions := GetInstructionsFromReport(stepReport); instructions != "" {
			return instructions
		}
	}

	return ""
}
