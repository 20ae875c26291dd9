package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/chemlab-mcp/internal/reaction"
	"github.com/dshills/chemlab-mcp/internal/remote"
)

func TestMatchCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := matchCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cl", "Na"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2Na + Cl2 → 2NaCl")
	assert.Contains(t, out.String(), "Releases heat")
}

func TestMatchCmdNoReaction(t *testing.T) {
	var out bytes.Buffer
	cmd := matchCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Fe", "Cu"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No reaction found for these elements\n", out.String())
}

func TestMatchCmdUnknownSymbol(t *testing.T) {
	cmd := matchCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"Na", "Xx"})
	assert.Error(t, cmd.Execute())
}

func TestMatchCmdRemote(t *testing.T) {
	api := httptest.NewServer(remote.NewHandler(reaction.Default()))
	defer api.Close()
	t.Setenv(remote.EnvRemoteURL, api.URL)

	var out bytes.Buffer
	cmd := matchCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--remote", "H", "O"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Water Formation")
}

func TestElementsCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := elementsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--category", "noble-gas"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Helium")
	assert.Contains(t, out.String(), "Argon")
	assert.NotContains(t, out.String(), "Sodium")

	cmd = elementsCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--category", "plasma"})
	assert.Error(t, cmd.Execute())
}

func TestServeCmdRejectsNegativeDelay(t *testing.T) {
	cmd := serveCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--delay=-1s"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--delay must be a non-negative duration")
}
