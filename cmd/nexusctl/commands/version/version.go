// SPDX-License-Identifier: Apache-2.0

package version

import (
	"github.com/spf13/cobra"

	"github.com/cursor-nexus/nexusctl/internal/doctor"
	"github.com/cursor-nexus/nexusctl/internal/version"
)

var (
	flagOutputFormat string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Long:  "Show the version, prints the full build info when an output format is given",
		Run: func(cmd *cobra.Command, args []string) {
			if flagOutputFormat == "" {
				cmd.Println(version.Version())
				return
			}

			output, err := version.Get().Format(flagOutputFormat)
			if err != nil {
				doctor.CheckErr(cmd.Context(), err)
			}

			cmd.Println(output)
		},
	}
)

func init() {
	versionCmd.Flags().StringVarP(&flagOutputFormat, "output", "o", "", "Output format: yaml|json")
}

func GetCmd() *cobra.Command {
	return versionCmd
}

// PrintVersion prints the build info in the given format.
func PrintVersion(cmd *cobra.Command, format string) {
	output, err := version.Get().Format(format)
	if err != nil {
		doctor.CheckErr(cmd.Context(), err)
	}

	cmd.Println(output)
}
