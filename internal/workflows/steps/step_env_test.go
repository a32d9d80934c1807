// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"os"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"

	"github.com/cursor-nexus/nexusctl/internal/core"
	"github.com/cursor-nexus/nexusctl/internal/credentials"
	"github.com/cursor-nexus/nexusctl/internal/envfile"
	"github.com/cursor-nexus/nexusctl/internal/platform"
	"github.com/cursor-nexus/nexusctl/internal/prompt"
	"github.com/cursor-nexus/nexusctl/internal/setup"
)

func TestConfigureEnvironment_AppendMergeKeepsExistingTokens(t *testing.T) {
	req := require.New(t)

	layout := core.NewLayout(t.TempDir())
	existing := "# tuned by hand\n" +
		"PORT=4100\n" +
		"REFRESH_MODE=append\n" +
		"API_KEYS={\"sk-cursor-seed\":\"tok-old\"}\n"
	req.NoError(os.WriteFile(layout.EnvFile(), []byte(existing), 0644))

	adapter := platform.NewFakeAdapter()
	script := &prompt.Scripted{
		Inputs:     []string{"", "sk-cursor-seed"},
		Passwords:  []string{"tok-new"},
		Confirms:   []bool{false, false, false},
		Selections: []string{"round-robin", "Paste an existing Cursor session token"},
	}

	state := &setup.PipelineState{}
	collector := credentials.NewCollector(script, adapter)

	step, err := ConfigureEnvironment(state, layout, collector, script).Build()
	req.NoError(err)

	report := step.Execute(context.Background())
	req.Equal(automa.StatusSuccess, report.Status)
	req.Equal("sk-cursor-seed", report.Metadata["apiKey"])
	req.Equal("1", report.Metadata["tokens"])

	doc, err := envfile.Load(layout.EnvFile())
	req.NoError(err)

	port, ok := doc.Get("PORT")
	req.True(ok)
	req.Equal("4100", port)

	raw, ok := doc.Get("API_KEYS")
	req.True(ok)

	tm, err := envfile.ParseTokenMap(raw)
	req.NoError(err)
	req.Equal([]string{"tok-old", "tok-new"}, tm["sk-cursor-seed"])

	data, err := os.ReadFile(layout.EnvFile())
	req.NoError(err)
	req.Contains(string(data), "# tuned by hand")

	req.NotNil(state.Env)
	req.NotNil(state.Credentials)
	req.Equal([]string{"tok-new"}, state.Credentials.Tokens)
}

func TestMergeCredentials_AppendNeverDropsAToken(t *testing.T) {
	req := require.New(t)

	doc, err := envfile.Parse([]byte("REFRESH_MODE=append\nAPI_KEYS={\"sk-a\":[\"t1\",\"t2\"]}\n"))
	req.NoError(err)

	creds := &credentials.Credentials{ApiKey: "sk-a", Tokens: []string{"t2", "t3"}}
	req.NoError(mergeCredentials(doc, creds))

	raw, _ := doc.Get("API_KEYS")
	tm, err := envfile.ParseTokenMap(raw)
	req.NoError(err)
	req.Equal([]string{"t1", "t2", "t3"}, tm["sk-a"])
}

func TestMergeCredentials_ReplaceOnlyTouchesItsOwnKey(t *testing.T) {
	req := require.New(t)

	doc, err := envfile.Parse([]byte("REFRESH_MODE=replace\nAPI_KEYS={\"sk-a\":[\"t1\",\"t2\"],\"sk-b\":\"keep\"}\n"))
	req.NoError(err)

	creds := &credentials.Credentials{ApiKey: "sk-a", Tokens: []string{"t3"}}
	req.NoError(mergeCredentials(doc, creds))

	raw, _ := doc.Get("API_KEYS")
	tm, err := envfile.ParseTokenMap(raw)
	req.NoError(err)
	req.Equal([]string{"t3"}, tm["sk-a"])
	req.Equal([]string{"keep"}, tm["sk-b"])
}

func TestPromptPort_BoundedAttempts(t *testing.T) {
	req := require.New(t)

	doc, err := envfile.Parse([]byte("PORT=3010\n"))
	req.NoError(err)

	script := &prompt.Scripted{Inputs: []string{"abc", "0", "65536", "-1", "port"}}

	_, err = promptPort(doc, script)
	req.Error(err)
	req.True(errorx.IsOfType(err, errorx.RejectedOperation))
	req.Empty(script.Inputs)
}
