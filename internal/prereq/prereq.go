// SPDX-License-Identifier: Apache-2.0

// Package prereq verifies the host tooling the service depends on before
// setup proceeds. Node and npm are required; docker, docker compose and git
// unlock optional deployment paths.
package prereq

import (
	"context"

	"github.com/automa-saga/logx"

	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/pkg/semver"
)

// Tool describes one prerequisite probe.
type Tool struct {
	Name        string
	Probe       string
	VersionArgs []string

	// FallbackProbe covers tools with two command shapes, such as the
	// compose plugin versus the standalone docker-compose binary.
	FallbackProbe string
	FallbackArgs  []string

	// MinVersion below which the tool is flagged but still accepted.
	MinVersion string

	Required bool

	// Package is the system package that provides the tool.
	Package string
}

// Status is the outcome of probing one tool.
type Status struct {
	Tool         Tool
	Found        bool
	Path         string
	Version      string
	BelowMinimum bool
}

// DefaultTools returns the probe set for a Nexus installation.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "node",
			Probe:       "node",
			VersionArgs: []string{"--version"},
			MinVersion:  "18.0.0",
			Required:    true,
			Package:     "nodejs",
		},
		{
			Name:        "npm",
			Probe:       "npm",
			VersionArgs: []string{"--version"},
			Required:    true,
			Package:     "npm",
		},
		{
			Name:        "docker",
			Probe:       "docker",
			VersionArgs: []string{"--version"},
			Package:     "docker.io",
		},
		{
			Name:          "docker compose",
			Probe:         "docker",
			VersionArgs:   []string{"compose", "version"},
			FallbackProbe: "docker-compose",
			FallbackArgs:  []string{"--version"},
			Package:       "docker-compose",
		},
		{
			Name:        "git",
			Probe:       "git",
			VersionArgs: []string{"--version"},
			Package:     "git",
		},
	}
}

// Checker probes tools through a platform adapter.
type Checker struct {
	adapter platform.Adapter
}

func NewChecker(adapter platform.Adapter) *Checker {
	return &Checker{adapter: adapter}
}

// CheckAll probes every tool and returns one status each, in order.
func (c *Checker) CheckAll(ctx context.Context, tools []Tool) []Status {
	statuses := make([]Status, 0, len(tools))
	for _, tool := range tools {
		statuses = append(statuses, c.Check(ctx, tool))
	}

	return statuses
}

// Check probes a single tool. A found tool with an unmet minimum version is
// still reported as found; the gap is surfaced through BelowMinimum.
func (c *Checker) Check(ctx context.Context, tool Tool) Status {
	status := Status{Tool: tool}

	path, version, ok := c.probe(ctx, tool.Probe, tool.VersionArgs)
	if !ok && tool.FallbackProbe != "" {
		path, version, ok = c.probe(ctx, tool.FallbackProbe, tool.FallbackArgs)
	}

	if !ok {
		logx.As().Debug().Str("tool", tool.Name).Msg("Tool not found")

		return status
	}

	status.Found = true
	status.Path = path
	status.Version = version

	if tool.MinVersion != "" && version != "" {
		meets, err := semver.AtLeast(version, tool.MinVersion)
		if err == nil && !meets {
			status.BelowMinimum = true
			logx.As().Warn().
				Str("tool", tool.Name).
				Str("version", version).
				Str("minimum", tool.MinVersion).
				Msg("Tool version is below the supported minimum")
		}
	}

	logx.As().Debug().
		Str("tool", tool.Name).
		Str("path", path).
		Str("version", version).
		Msg("Tool found")

	return status
}

func (c *Checker) probe(ctx context.Context, name string, versionArgs []string) (string, string, bool) {
	path, err := c.adapter.LookPath(name)
	if err != nil {
		return "", "", false
	}

	out, err := c.adapter.CaptureOutput(ctx, "", name, versionArgs...)
	if err != nil {
		return "", "", false
	}

	version, err := semver.Extract(out)
	if err != nil {
		// tool exists but prints no recognizable version
		return path, "", true
	}

	return path, version, true
}

// MissingRequired filters statuses down to required tools that were not
// found.
func MissingRequired(statuses []Status) []Tool {
	var missing []Tool
	for _, s := range statuses {
		if s.Tool.Required && !s.Found {
			missing = append(missing, s.Tool)
		}
	}

	return missing
}
