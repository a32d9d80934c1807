// SPDX-License-Identifier: Apache-2.0

package prereq

import (
	"context"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/platform"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()

	for _, tool := range DefaultTools() {
		if tool.Name == name {
			return tool
		}
	}

	t.Fatalf("unknown tool %s", name)

	return Tool{}
}

func TestChecker_Check_Found(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	fake.Paths["node"] = "/usr/bin/node"
	fake.Outputs["node --version"] = "v18.17.0\n"

	status := NewChecker(fake).Check(context.Background(), toolByName(t, "node"))
	req.True(status.Found)
	req.Equal("/usr/bin/node", status.Path)
	req.Equal("18.17.0", status.Version)
	req.False(status.BelowMinimum)
}

func TestChecker_Check_BelowMinimumIsStillFound(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	fake.Paths["node"] = "/usr/bin/node"
	fake.Outputs["node --version"] = "v16.20.2\n"

	status := NewChecker(fake).Check(context.Background(), toolByName(t, "node"))
	req.True(status.Found)
	req.True(status.BelowMinimum)
}

func TestChecker_Check_Missing(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()

	status := NewChecker(fake).Check(context.Background(), toolByName(t, "npm"))
	req.False(status.Found)
}

func TestChecker_Check_ComposeFallback(t *testing.T) {
	req := require.New(t)

	// docker exists but the compose plugin is absent; the standalone
	// docker-compose binary should be picked up instead
	fake := platform.NewFakeAdapter()
	fake.Paths["docker"] = "/usr/bin/docker"
	fake.Paths["docker-compose"] = "/usr/local/bin/docker-compose"
	fake.Errs["docker compose version"] = []error{errorx.ExternalError.New("unknown command")}
	fake.Outputs["docker-compose --version"] = "docker-compose version 1.29.2, build 5becea4c\n"

	status := NewChecker(fake).Check(context.Background(), toolByName(t, "docker compose"))
	req.True(status.Found)
	req.Equal("/usr/local/bin/docker-compose", status.Path)
	req.Equal("1.29.2", status.Version)
}

func TestMissingRequired(t *testing.T) {
	req := require.New(t)

	fake := platform.NewFakeAdapter()
	fake.Paths["node"] = "/usr/bin/node"
	fake.Outputs["node --version"] = "v20.0.0"

	statuses := NewChecker(fake).CheckAll(context.Background(), DefaultTools())
	missing := MissingRequired(statuses)

	req.Len(missing, 1)
	req.Equal("npm", missing[0].Name)
}
