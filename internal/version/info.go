// SPDX-License-Identifier: Apache-2.0

package version

import (
	"encoding/json"

	"github.com/joomcode/errorx"
	"gopkg.in/yaml.v3"
)

const (
	FormatYaml = "yaml"
	FormatJson = "json"
)

// Info describes a build of the tool.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Os        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// Format renders the info in the requested output format.
func (i Info) Format(format string) (string, error) {
	switch format {
	case FormatYaml, "":
		out, err := yaml.Marshal(i)
		if err != nil {
			return "", errorx.IllegalState.Wrap(err, "failed to marshal version info")
		}

		return string(out), nil
	case FormatJson:
		out, err := json.MarshalIndent(i, "", "  ")
		if err != nil {
			return "", errorx.IllegalState.Wrap(err, "failed to marshal version info")
		}

		return string(out), nil
	default:
		return "", errorx.IllegalArgument.New("unsupported output format: %s", format)
	}
}
