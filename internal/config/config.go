// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/deploy"
)

var (
	Errors = errorx.NewNamespace("config")

	// NotFoundError means the requested configuration file is absent or
	// unreadable.
	NotFoundError = Errors.NewType("not_found", errorx.NotFound())
)

// Config holds the global configuration for the tool.
type Config struct {
	// InstallDir is the root of the Nexus installation the tool operates
	// on. Defaults to the current working directory.
	InstallDir string `yaml:"installDir" json:"installDir"`

	// Mechanism is the preferred deployment mechanism: docker or process.
	Mechanism string `yaml:"mechanism" json:"mechanism"`

	Log logx.LoggingConfig `yaml:"log" json:"log"`
}

// Validate validates all configuration fields.
func (c Config) Validate() error {
	if c.Mechanism != "" {
		if _, err := deploy.ParseMechanism(c.Mechanism); err != nil {
			return err
		}
	}

	return nil
}

// Layout returns the filesystem layout for the configured installation.
func (c Config) Layout() core.Layout {
	return core.NewLayout(c.InstallDir)
}

var globalConfig = Config{
	InstallDir: ".",
	Mechanism:  string(deploy.MechanismDocker),
	Log: logx.LoggingConfig{
		Level:          "Info",
		ConsoleLogging: true,
		FileLogging:    false,
	},
}

// Initialize loads the configuration from the specified file. An empty path
// keeps the built-in defaults.
func Initialize(path string) error {
	if path != "" {
		globalConfig = Config{}
		viper.Reset()
		viper.SetConfigFile(path)
		viper.SetEnvPrefix("NEXUSCTL")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}

		if err := viper.Unmarshal(&globalConfig); err != nil {
			return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
				WithProperty(errorx.PropertyPayload(), path)
		}

		if globalConfig.InstallDir == "" {
			globalConfig.InstallDir = "."
		}
	}

	return globalConfig.Validate()
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

func Set(c *Config) error {
	globalConfig = *c
	return nil
}

// OverrideInstallDir points the tool at a different installation without a
// config file. Empty values are ignored.
func OverrideInstallDir(dir string) {
	if dir != "" {
		globalConfig.InstallDir = dir
	}
}

// OverrideMechanism sets the preferred deployment mechanism. Empty values
// are ignored.
func OverrideMechanism(mech string) {
	if mech != "" {
		globalConfig.Mechanism = mech
	}
}
