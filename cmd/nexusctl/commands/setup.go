// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cursor-nexus/nexusctl/cmd/nexusctl/commands/common"
	"github.com/cursor-nexus/nexusctl/internal/config"
	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
	"github.com/cursor-nexus/nexusctl/internal/workflows"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively deploy the Nexus service",
	Long: "Walks through prerequisite checks, credential collection, service configuration, " +
		"admin account creation, dependency installation and deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		state := &setup.PipelineState{}
		defer func() { _ = state.ReleaseLock() }()

		preferred, err := deploy.ParseMechanism(cfg.Mechanism)
		if err != nil {
			preferred = deploy.MechanismDocker
		}

		opts := workflows.SetupOptions{
			Layout:    cfg.Layout(),
			Adapter:   platform.NewLocal(),
			Prompter:  prompt.NewTerminal(),
			Host:      platform.DetectHost(),
			Preferred: preferred,
		}

		common.RunWorkflow(cmd.Context(), workflows.NewSetupWorkflow(state, opts))
		printCompletionBanner(cmd, state)

		return nil
	},
}

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("36")).
			Padding(1, 2)

	bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
)

func printCompletionBanner(cmd *cobra.Command, state *setup.PipelineState) {
	port := strconv.Itoa(core.DefaultServicePort)
	if state.Env != nil {
		if v, ok := state.Env.Get("PORT"); ok && v != "" {
			port = v
		}
	}

	lines := bannerTitleStyle.Render("Deployment Complete") + "\n\n"
	lines += fmt.Sprintf("API endpoint:   http://localhost:%s/v1\n", port)

	if state.Credentials != nil {
		lines += fmt.Sprintf("API key:        %s\n", state.Credentials.ApiKey)
	}

	if state.Admin != nil {
		lines += fmt.Sprintf("Admin console:  http://localhost:%s (user %q)\n", port, state.Admin.Username)
	}

	lines += fmt.Sprintf("Mechanism:      %s\n\n", state.Mechanism)
	lines += "Manage the service with:\n"
	lines += "  nexusctl status | logs -f | stop | restart"

	cmd.Println(bannerStyle.Render(lines))
}
