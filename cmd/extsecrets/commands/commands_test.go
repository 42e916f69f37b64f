package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/extsecrets/internal/config"
	"github.com/systmms/extsecrets/internal/logging"
)

func writeTestConfig(t *testing.T, content string) *config.Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "extsecrets.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return &config.Config{
		Path:   configPath,
		Logger: logging.New(false, true),
	}
}

const literalConfig = `
version: 1
secretStores:
  local:
    type: literal
    values:
      db-password: hunter2
      api-key: abc123
`

func TestStoresCommand_ExecutesSuccessfully(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewStoresCommand(cfg)
	require.NoError(t, cmd.Execute())
}

func TestStoreDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		storeType    string
		wantContains string
	}{
		{"aws.secretsmanager", "AWS Secrets Manager"},
		{"literal", "inline"},
		{"mock", "testing"},
		{"unknown-store", "No description available"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.storeType, func(t *testing.T) {
			t.Parallel()
			assert.Contains(t, storeDescription(tt.storeType), tt.wantContains)
		})
	}
}

func TestCheckCommand_LiteralStore(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewCheckCommand(cfg)
	cmd.SetArgs([]string{"local"})
	require.NoError(t, cmd.Execute())
}

func TestCheckCommand_NoStores(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, "version: 1\nsecretStores: {}\n")
	cmd := NewCheckCommand(cfg)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No secret stores configured")
}

func TestSyncCommand_LiteralStore(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewSyncCommand(cfg)
	cmd.SetArgs([]string{"local"})
	require.NoError(t, cmd.Execute())
}

func TestSyncCommand_UnknownStore(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewSyncCommand(cfg)
	cmd.SetArgs([]string{"missing"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such secret store")
}

func TestGetCommand_RequiresStoreFlag(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"db-password"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store name is required")
}

func TestGetCommand_LiteralValue(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "local", "db-password"})
	require.NoError(t, cmd.Execute())
}

func TestGetCommand_MissingSecretSuggestsAvailable(t *testing.T) {
	t.Parallel()

	cfg := writeTestConfig(t, literalConfig)
	cmd := NewGetCommand(cfg)
	cmd.SetArgs([]string{"--store", "local", "nope"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in store 'local'")
	assert.Contains(t, err.Error(), "api-key")
}
