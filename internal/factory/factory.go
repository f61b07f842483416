package factory

import (
	"errors"
	"io"
	"log/slog"

	"splitpot/internal/broker"
	"splitpot/internal/config"
	"splitpot/internal/dependencies/clock"
	"splitpot/internal/dependencies/random"
	"splitpot/internal/services/payout"
	"splitpot/internal/services/room"
	"splitpot/internal/storage"
	"splitpot/internal/storage/memory"
	redisstorage "splitpot/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Calculator  *payout.Calculator
	Coordinator *room.Coordinator
	Broker      *broker.Broker
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.RoomTTL = cfg.RoomTTL
		redisCfg.PlayerTTL = cfg.PlayerTTL
		redisStore, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	calculator := payout.NewCalculator()
	coordinator := room.NewCoordinator(store, calculator, clk, rnd, logger)
	eventBroker := broker.New(logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Calculator:  calculator,
		Coordinator: coordinator,
		Broker:      eventBroker,
	}
}
