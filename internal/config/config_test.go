package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 24*time.Hour, cfg.RoomTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SPLITPOT_PORT", "9090")
	t.Setenv("SPLITPOT_STORAGE_TYPE", "redis")
	t.Setenv("SPLITPOT_REDIS_URL", "redis://cache:6379")
	t.Setenv("SPLITPOT_ROOM_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.RoomTTL)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("SPLITPOT_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
