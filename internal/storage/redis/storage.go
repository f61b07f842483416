package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"splitpot/internal/model"
	"splitpot/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roomKey(room.Code), data, s.cfg.RoomTTL).Err()
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	indexKey := roomPlayersKey(code)

	playerIDs, err := s.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return err
	}

	// Delete the room, its players, and the index in one pipeline
	pipe := s.client.Pipeline()
	for _, id := range playerIDs {
		pipe.Del(ctx, playerKey(model.PlayerID(id)))
	}
	pipe.Del(ctx, indexKey)
	pipe.Del(ctx, roomKey(code))
	_, err = pipe.Exec(ctx)
	return err
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	indexKey := roomPlayersKey(player.RoomCode)
	known, err := s.inPlayerIndex(ctx, indexKey, player.ID)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL)
	if !known {
		pipe.RPush(ctx, indexKey, string(player.ID))
	}
	pipe.Expire(ctx, indexKey, s.cfg.RoomTTL) // Keep index TTL in sync
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.LRem(ctx, roomPlayersKey(player.RoomCode), 1, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context, code model.RoomCode) ([]*model.Player, error) {
	playerIDs, err := s.client.LRange(ctx, roomPlayersKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(playerIDs) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(playerIDs))
	for i, id := range playerIDs {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

// SaveRoomState writes the room and players in a single pipeline
func (s *Storage) SaveRoomState(ctx context.Context, room *model.Room, players []*model.Player) error {
	roomData, err := json.Marshal(room)
	if err != nil {
		return err
	}

	indexKey := roomPlayersKey(room.Code)
	indexed, err := s.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(indexed))
	for _, id := range indexed {
		known[id] = true
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.Code), roomData, s.cfg.RoomTTL)
	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerKey(p.ID), data, s.cfg.PlayerTTL)
		if !known[string(p.ID)] {
			pipe.RPush(ctx, indexKey, string(p.ID))
		}
	}
	pipe.Expire(ctx, indexKey, s.cfg.RoomTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) inPlayerIndex(ctx context.Context, indexKey string, id model.PlayerID) (bool, error) {
	pos, err := s.client.LPos(ctx, indexKey, string(id), redis.LPosArgs{}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return pos >= 0, nil
}
