package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv(EnvSupabaseURL, "https://db.testproj.supabase.co")
	t.Setenv(EnvSupabaseKey, "secret-key")
	t.Setenv(EnvOpenRouterKey, "sk-or-test")
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "deepseek/deepseek-chat-v3-0324:free", cfg.AI.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.AI.BaseURL)
	assert.Equal(t, 200, cfg.Prompt.MaxRows)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadMissingSecrets(t *testing.T) {
	t.Setenv(EnvSupabaseURL, "")
	t.Setenv(EnvSupabaseKey, "")
	t.Setenv(EnvOpenRouterKey, "sk-or-test")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSupabaseURL)
	assert.Contains(t, err.Error(), EnvSupabaseKey)
	assert.NotContains(t, err.Error(), EnvOpenRouterKey)
}

func TestLoadYAMLOverrides(t *testing.T) {
	setSecrets(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
database:
  driver: mysql
  user: analyst
  name: sales
ai:
  model: qwen/qwen-2.5-72b-instruct
prompt:
  maxRows: 50
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "qwen/qwen-2.5-72b-instruct", cfg.AI.Model)
	assert.Equal(t, 50, cfg.Prompt.MaxRows)
}

func TestPostgresDSNFromEndpoint(t *testing.T) {
	setSecrets(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=db.testproj.supabase.co")
	assert.Contains(t, dsn, "password=secret-key")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "https://")
}

func TestMySQLDSN(t *testing.T) {
	setSecrets(t)
	t.Setenv(EnvSupabaseURL, "db.internal:3307")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: mysql\n  user: analyst\n  name: sales\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "analyst:secret-key@tcp(db.internal:3306)/sales?parseTime=true&charset=utf8mb4&loc=UTC", cfg.DSN())
}
