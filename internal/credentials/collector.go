// SPDX-License-Identifier: Apache-2.0

package credentials

import (
	"context"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
)

const (
	// maxPromptAttempts bounds the re-prompt loop for an empty or invalid
	// answer so a scripted stdin cannot spin forever.
	maxPromptAttempts = 5

	cursorSettingsUrl = "https://www.cursor.com/settings"

	methodPaste   = "Paste an existing Cursor session token"
	methodBrowser = "Log in to Cursor in a browser and copy the token"
)

// Credentials is the outcome of a collection run.
type Credentials struct {
	ApiKey string
	Tokens []string
}

// Collector drives the interactive credential flow.
type Collector struct {
	prompter prompt.Prompter
	adapter  platform.Adapter
}

func NewCollector(prompter prompt.Prompter, adapter platform.Adapter) *Collector {
	return &Collector{prompter: prompter, adapter: adapter}
}

// Collect asks for an API key and at least one Cursor session token. An
// empty token never passes; after five failed attempts the flow aborts.
func (c *Collector) Collect(ctx context.Context) (*Credentials, error) {
	apiKey, err := c.collectApiKey()
	if err != nil {
		return nil, err
	}

	creds := &Credentials{ApiKey: apiKey}

	for {
		token, err := c.collectToken(ctx)
		if err != nil {
			return nil, err
		}

		creds.Tokens = append(creds.Tokens, token)

		more, err := c.prompter.Confirm("Add another Cursor token?", false)
		if err != nil {
			return nil, err
		}

		if !more {
			break
		}
	}

	return creds, nil
}

func (c *Collector) collectApiKey() (string, error) {
	generated, err := GenerateId()
	if err != nil {
		return "", err
	}

	answer, err := c.prompter.Input(
		"API key",
		"Clients authenticate to Nexus with this key. Press enter to accept the generated one.",
		EnsurePrefix(generated),
	)
	if err != nil {
		return "", err
	}

	return EnsurePrefix(strings.TrimSpace(answer)), nil
}

func (c *Collector) collectToken(ctx context.Context) (string, error) {
	method, err := c.prompter.Select("How do you want to provide the Cursor token?",
		[]string{methodPaste, methodBrowser})
	if err != nil {
		return "", err
	}

	if method == methodBrowser {
		if err := c.adapter.OpenBrowser(ctx, cursorSettingsUrl); err != nil {
			// the operator can still open the page by hand
			logx.As().Warn().Err(err).Str("url", cursorSettingsUrl).
				Msg("Could not open a browser, open the URL manually")
		}
	}

	for attempt := 1; attempt <= maxPromptAttempts; attempt++ {
		token, err := c.prompter.Password(
			"Cursor session token",
			"The WorkosCursorSessionToken cookie value from cursor.com.",
		)
		if err != nil {
			return "", err
		}

		token = strings.TrimSpace(token)
		if token != "" {
			return token, nil
		}

		logx.As().Warn().Int("attempt", attempt).Msg("Token cannot be empty")
	}

	return "", errorx.RejectedOperation.New("no token provided after %d attempts", maxPromptAttempts)
}
