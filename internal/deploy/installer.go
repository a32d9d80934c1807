// SPDX-License-Identifier: Apache-2.0

package deploy

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
)

// maxAttempts bounds retries for dependency installation and for each
// deployment mechanism.
const maxAttempts = 3

// DependencyInstaller runs npm install for the service.
type DependencyInstaller struct {
	layout   core.Layout
	adapter  platform.Adapter
	prompter prompt.Prompter
}

func NewDependencyInstaller(layout core.Layout, adapter platform.Adapter, prompter prompt.Prompter) *DependencyInstaller {
	return &DependencyInstaller{layout: layout, adapter: adapter, prompter: prompter}
}

// Install runs npm install, retrying up to three times. After the last
// failure the operator chooses between continuing with the dependencies
// already on disk and aborting setup.
func (i *DependencyInstaller) Install(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logx.As().Info().Int("attempt", attempt).Msg("Installing service dependencies")

		lastErr = i.adapter.RunInteractive(ctx, i.layout.InstallDir(), "npm", "install")
		if lastErr == nil {
			return nil
		}

		logx.As().Warn().Err(lastErr).Int("attempt", attempt).Msg("npm install failed")
	}

	cont, err := i.prompter.Confirm("Dependency installation failed three times. Continue setup anyway?", false)
	if err != nil {
		return err
	}

	if cont {
		logx.As().Warn().Msg("Continuing setup with possibly stale dependencies")

		return nil
	}

	return errorx.RejectedOperation.Wrap(lastErr, "dependency installation failed after %d attempts", maxAttempts)
}
