// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"strconv"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/credentials"
	"github.com/cursor-nexus/nexusctl/internal/envfile"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows/notify"
)

const configureEnvStepId = "configure-environment"

// maxAnswerAttempts bounds validation re-prompts.
const maxAnswerAttempts = 5

// ConfigureEnvironment loads the .env document, walks the operator through
// the service settings, folds the collected credentials into API_KEYS and
// saves the result. Existing keys, comments and unknown lines survive.
func ConfigureEnvironment(state *setup.PipelineState, layout core.Layout,
	collector *credentials.Collector, prompter prompt.Prompter) automa.Builder {
	return automa.NewStepBuilder().
		WithId(configureEnvStepId).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			doc, err := envfile.Load(layout.EnvFile())
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := promptServiceSettings(doc, prompter); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			creds, err := collector.Collect(ctx)
			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := mergeCredentials(doc, creds); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			if err := doc.Save(layout.EnvFile()); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			state.Env = doc
			state.Credentials = creds

			return automa.SuccessReport(stp, automa.WithMetadata(map[string]string{
				"envFile": layout.EnvFile(),
				"apiKey":  creds.ApiKey,
				"tokens":  strconv.Itoa(len(creds.Tokens)),
			}))
		}).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Configuring the service environment")
			return ctx, nil
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepCompletion(ctx, stp, report, "Environment configured")
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, report *automa.Report) {
			notify.As().StepFailure(ctx, stp, report, "Environment configuration failed")
		})
}

func promptServiceSettings(doc *envfile.Document, prompter prompt.Prompter) error {
	port, err := promptPort(doc, prompter)
	if err != nil {
		return err
	}

	if err := doc.Upsert("PORT", port); err != nil {
		return err
	}

	strategy := currentOr(doc, "ROTATION_STRATEGY", "round-robin")
	strategy, err = prompter.Select("Token rotation strategy", orderedWithDefault(
		[]string{"round-robin", "random"}, strategy))
	if err != nil {
		return err
	}

	if err := doc.Upsert("ROTATION_STRATEGY", strategy); err != nil {
		return err
	}

	autoRefresh, err := prompter.Confirm("Enable automatic token refresh?",
		currentOr(doc, "AUTO_REFRESH", "false") == "true")
	if err != nil {
		return err
	}

	if err := doc.Upsert("AUTO_REFRESH", strconv.FormatBool(autoRefresh)); err != nil {
		return err
	}

	if autoRefresh {
		mode, err := prompter.Select("Refresh mode", orderedWithDefault(
			[]string{envfile.MergeAppend, envfile.MergeReplace},
			currentOr(doc, "REFRESH_MODE", envfile.MergeAppend)))
		if err != nil {
			return err
		}

		if err := doc.Upsert("REFRESH_MODE", mode); err != nil {
			return err
		}
	}

	proxy, err := prompter.Confirm("Route Cursor traffic through an outbound proxy?",
		currentOr(doc, "ENABLE_PROXY", "false") == "true")
	if err != nil {
		return err
	}

	if err := doc.Upsert("ENABLE_PROXY", strconv.FormatBool(proxy)); err != nil {
		return err
	}

	if proxy {
		plat, err := prompter.Select("Proxy platform", orderedWithDefault(
			[]string{"auto", "luminati", "oxylabs", "smartproxy"},
			currentOr(doc, "PROXY_PLATFORM", "auto")))
		if err != nil {
			return err
		}

		if err := doc.Upsert("PROXY_PLATFORM", plat); err != nil {
			return err
		}
	}

	return nil
}

func promptPort(doc *envfile.Document, prompter prompt.Prompter) (string, error) {
	current := currentOr(doc, "PORT", strconv.Itoa(core.DefaultServicePort))

	for attempt := 1; attempt <= maxAnswerAttempts; attempt++ {
		answer, err := prompter.Input("Service port",
			"Port the OpenAI-compatible API listens on.", current)
		if err != nil {
			return "", err
		}

		if n, err := strconv.Atoi(answer); err == nil && n > 0 && n <= 65535 {
			return answer, nil
		}
	}

	return "", errorx.RejectedOperation.New("no valid port provided after %d attempts", maxAnswerAttempts)
}

// mergeCredentials folds the collected tokens into API_KEYS. The merge mode
// follows REFRESH_MODE; append never drops a token already configured.
func mergeCredentials(doc *envfile.Document, creds *credentials.Credentials) error {
	raw, _ := doc.Get("API_KEYS")

	tm, err := envfile.ParseTokenMap(raw)
	if err != nil {
		return err
	}

	mode := currentOr(doc, "REFRESH_MODE", envfile.MergeAppend)
	if err := tm.Merge(creds.ApiKey, creds.Tokens, mode); err != nil {
		return err
	}

	encoded, err := tm.Encode()
	if err != nil {
		return err
	}

	return doc.Upsert("API_KEYS", encoded)
}

func currentOr(doc *envfile.Document, key, fallback string) string {
	if v, ok := doc.Get(key); ok && v != "" {
		return v
	}

	return fallback
}

// orderedWithDefault moves def to the front so the select prompt highlights
// the current value.
func orderedWithDefault(options []string, def string) []string {
	out := []string{def}
	for _, opt := range options {
		if opt != def {
			out = append(out, opt)
		}
	}

	return out
}
