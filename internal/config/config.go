// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server configuration
type Config struct {
	Host     string `env:"SPLITPOT_HOST" envDefault:""`
	Port     int    `env:"SPLITPOT_PORT" envDefault:"8080"`
	LogLevel string `env:"SPLITPOT_LOG_LEVEL" envDefault:"info"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"SPLITPOT_STORAGE_TYPE" envDefault:"memory"`

	RedisURL  string        `env:"SPLITPOT_REDIS_URL" envDefault:"redis://localhost:6379"`
	RoomTTL   time.Duration `env:"SPLITPOT_ROOM_TTL" envDefault:"24h"`
	PlayerTTL time.Duration `env:"SPLITPOT_PLAYER_TTL" envDefault:"24h"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
