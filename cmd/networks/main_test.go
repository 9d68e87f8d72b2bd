package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_networks/internal/config"
	"wallet_networks/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ForkChainIDEnv, "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Arbitrum")
	assert.Contains(t, out, "Bitcoin")
	assert.Contains(t, out, "1337")

	out, err = run(t, "list", "-o", "json")
	require.NoError(t, err)
	var networks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &networks))
	assert.Len(t, networks, 11)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show", "31")
	require.NoError(t, err)
	assert.Contains(t, out, "RSK")
	assert.Contains(t, out, "RSKExplorer")

	_, err = run(t, "show", "31337")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	out, err = run(t, "--fork-chain-id", "31337", "show", "31337", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"chainId": "31337"`)
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "10")
	require.NoError(t, err)
	assert.Equal(t, "chainId=10 known=true eip1559=false rollup=true\n", out)

	out, err = run(t, "classify", "garbage")
	require.NoError(t, err)
	assert.Equal(t, "chainId=garbage known=false eip1559=false rollup=false\n", out)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 11 networks, fork chain id 1337")

	out, err = run(t, "--fork-chain-id", "1", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "1 problem(s)")

	_, err = run(t, "--fork-chain-id", "1", "--strict", "list")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := run(t, "list", "-o", "yaml")
	assert.Error(t, err)
}
