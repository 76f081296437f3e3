package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultDSN, cfg.DSN)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
dsn: "user:pw@tcp(db:3306)/app?parseTime=True"
redis_url: "redis://localhost:6379/0"
client_url: "http://localhost:5173"
assets:
  enable: true
  region: us-east-1
  bucket: avatars
chat_directory:
  enable: true
  endpoint: https://dir.example.com
  api_key: k
  api_secret: s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "user:pw@tcp(db:3306)/app?parseTime=True", cfg.DSN)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "http://localhost:5173", cfg.ClientURL)
	assert.True(t, cfg.Assets.Enable)
	assert.Equal(t, "avatars", cfg.Assets.Bucket)
	assert.True(t, cfg.ChatDir.Enable)
	assert.Equal(t, "https://dir.example.com", cfg.ChatDir.Endpoint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 8080\n")

	t.Setenv("LM_PORT", "9090")
	t.Setenv("LM_ENV", "production")
	t.Setenv("LM_JWT_SECRET", "env-secret")
	t.Setenv("LM_CLIENT_URL", "https://app.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "https://app.example.com", cfg.ClientURL)
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, "env: production\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownEnvFallsBackToDevelopment(t *testing.T) {
	path := writeConfig(t, "env: staging\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoad_AssetsValidation(t *testing.T) {
	path := writeConfig(t, `
assets:
  enable: true
  region: us-east-1
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ChatDirValidation(t *testing.T) {
	path := writeConfig(t, `
chat_directory:
  enable: true
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number\n")

	_, err := Load(path)
	assert.Error(t, err)
}
