package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.APIServer.Port)
	assert.Equal(t, "/ws/notifications", cfg.NotifyServer.WebSocketPath)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, 8, cfg.FriendCode.Length)
	assert.Equal(t, 5*time.Minute, cfg.Cache.FriendListTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("API_SERVER_PORT", "9100")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("FRIEND_CODE_LENGTH", "10")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.APIServer.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 10, cfg.FriendCode.Length)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
API_SERVER:
  PORT: "8088"
AUTH:
  JWT_EXPIRY: 2h
CATALOG:
  EXERCISES_PATH: /srv/exercises.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.APIServer.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTExpiry)
	assert.Equal(t, "/srv/exercises.json", cfg.Catalog.ExercisesPath)
	// 文件中未出现的键仍然使用默认值
	assert.Equal(t, "ironmind-api", cfg.Auth.Issuer)
}
