// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/cursor-nexus/nexusctl/internal/config"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
	"github.com/cursor-nexus/nexusctl/internal/platform"
)

var (
	flagMechanism  string
	flagFollowLogs bool
)

func newService() *deploy.Service {
	return deploy.NewService(config.Get().Layout(), platform.NewLocal())
}

func selectedMechanism() (deploy.Mechanism, error) {
	name := flagMechanism
	if name == "" {
		name = config.Get().Mechanism
	}

	if name == "" {
		name = string(deploy.MechanismDocker)
	}

	return deploy.ParseMechanism(name)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Nexus service",
	RunE: func(cmd *cobra.Command, args []string) error {
		mech, err := selectedMechanism()
		if err != nil {
			return err
		}

		return newService().Start(cmd.Context(), mech)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the Nexus service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newService().Stop(cmd.Context())
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the Nexus service",
	RunE: func(cmd *cobra.Command, args []string) error {
		mech, err := selectedMechanism()
		if err != nil {
			return err
		}

		return newService().Restart(cmd.Context(), mech)
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show service logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newService().Logs(cmd.Context(), flagFollowLogs)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the service is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		running, pid := newService().Running()
		if running {
			cmd.Printf("running (pid %d)\n", pid)
		} else {
			cmd.Println("not running as a detached process; for a docker deployment use 'docker compose ps'")
		}

		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&flagMechanism, "mechanism", "m", "", "deployment mechanism (docker|process)")
	restartCmd.Flags().StringVarP(&flagMechanism, "mechanism", "m", "", "deployment mechanism (docker|process)")
	logsCmd.Flags().BoolVarP(&flagFollowLogs, "follow", "f", false, "follow log output")
}
