package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
storage:
  type: redis
  key: custom:key
  redis:
    address: redis:6379
    db: 2
store:
  bcrypt_cost: 4
jwt:
  secret_key: topsecret
  access_token_ttl: 15
remote:
  host: db.internal
  database: quiz
`)
	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "custom:key", cfg.Storage.Key)
	assert.Equal(t, "redis:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, 4, cfg.Store.BcryptCost)
	assert.Equal(t, "2.0.0", cfg.Store.Version)
	assert.Equal(t, "admin@quizhub.local", cfg.Store.SeedAdmin.Email)
	assert.Equal(t, "topsecret", cfg.JWT.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, "db.internal", cfg.Remote.Host)
	assert.Equal(t, 500*time.Millisecond, cfg.Remote.MinLatency)
	assert.Equal(t, 1500*time.Millisecond, cfg.Remote.MaxLatency)
}

func TestLoadConfigFromFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "storage:\n  type: file\n")
	t.Setenv("STORAGE_TYPE", "memory")
	t.Setenv("JWT_SECRET_KEY", "from-env")

	cfg, err := LoadConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
}

func TestLoadConfigFromFile_InvalidStorage(t *testing.T) {
	path := writeConfig(t, "storage:\n  type: s3\n")
	_, err := LoadConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage type: s3")
}

func TestConfig_ValidateMulti(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Type: "multi", Key: "k"},
		Store:   StoreConfig{Version: "1"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Storage.Multi = []string{"file", "multi"}
	assert.Error(t, cfg.Validate())

	cfg.Storage.Multi = []string{"file", "redis"}
	assert.NoError(t, cfg.Validate())
}
