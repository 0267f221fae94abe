package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payra-dev/payra/internal/categorize"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Currency = "EUR"
	cfg.Rules = []categorize.Rule{{Keyword: "gym", Category: "Healthcare"}}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, "info", got.LogLevel)
	assert.Equal(t, "payra.db", got.StoreFile)
	assert.True(t, got.Import.MoveProcessed)
	require.Len(t, got.Rules, 1)
	assert.Equal(t, "gym", got.Rules[0].Keyword)
	assert.Equal(t, "Healthcare", got.Rules[0].Category)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "payra.db", cfg.StoreFile)
	assert.True(t, cfg.Import.MoveProcessed)
	assert.Empty(t, cfg.Rules)
	assert.Len(t, cfg.Matcher().Rules(), len(categorize.DefaultRules))
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: GBP\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP", cfg.Currency)
	assert.Equal(t, "payra.db", cfg.StoreFile)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("currency: [\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadHome_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, Save(filepath.Join(home, FileName), Default()))
	t.Setenv("PAYRA_LOG_LEVEL", "debug")

	cfg, err := LoadHome(home)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "USD", cfg.Currency, "unset variables leave the file value")
}

func TestLoadHome_DotEnv(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, Save(filepath.Join(home, FileName), Default()))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("PAYRA_STORE_FILE=other.db\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PAYRA_STORE_FILE") })

	cfg, err := LoadHome(home)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.StoreFile)
	assert.Equal(t, filepath.Join(home, "other.db"), cfg.StorePath(home))
}

func TestStorePath_Absolute(t *testing.T) {
	cfg := Default()
	cfg.StoreFile = filepath.Join(t.TempDir(), "abs.db")
	assert.Equal(t, cfg.StoreFile, cfg.StorePath("/somewhere/else"))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "store_file: payra.db")
	assert.Contains(t, contents, "move_processed: true")
	assert.NotContains(t, contents, "rules:")
}
