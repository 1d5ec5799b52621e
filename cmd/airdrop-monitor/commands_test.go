package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/airdrop-monitor/internal/domain"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{
		"config", "env", "network", "block-range", "source", "wallets", "address",
		"name", "registry", "output", "workers", "call-timeout", "http-timeout",
		"include-claims", "debug",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"campaign", "token"}, names)
}

func TestRootCommand_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "unknown network",
			args: []string{"--network", "nope", "--address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		},
		{
			name: "unknown source",
			args: []string{"--source", "both", "--address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		},
		{
			name: "unknown output",
			args: []string{"--output", "xml", "--address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		},
		{
			name: "missing wallet file",
			args: []string{"--wallets", "does-not-exist.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(append([]string{"--env", t.TempDir()}, tt.args...))

			err := cmd.Execute()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Empty(t, out.String())
		})
	}
}

func TestRootCommand_IndexerSourceWithoutIndexer(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	configYAML := `
networks:
  devnet:
    rpc_url: http://127.0.0.1:1
    contracts:
      - "0x824c6A8FB6311379bf8Ba10e90C1843B16E3A4cE"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configYAML), 0644))

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--config", configFile,
		"--env", dir,
		"--network", "devnet",
		"--source", "indexer",
		"--address", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "indexer_url")
	assert.Empty(t, out.String())
}

func TestTokenCommand_InvalidAddress(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"token", "not-an-address"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestCampaignCommand_RequiresName(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"campaign"})

	assert.Error(t, cmd.Execute())
}
