package memory

import (
	"context"
	"sync"

	"splitpot/internal/model"
	"splitpot/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms   map[model.RoomCode]*model.Room
	players map[model.PlayerID]*model.Player
	// roomPlayers holds each room's player ids in join order
	roomPlayers map[model.RoomCode][]model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:       make(map[model.RoomCode]*model.Room),
		players:     make(map[model.PlayerID]*model.Player),
		roomPlayers: make(map[model.RoomCode][]model.PlayerID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.roomPlayers[code] {
		delete(s.players, id)
	}
	delete(s.roomPlayers, code)
	delete(s.rooms, code)
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savePlayerLocked(player)
	return nil
}

func (s *Storage) savePlayerLocked(player *model.Player) {
	if _, exists := s.players[player.ID]; !exists {
		s.roomPlayers[player.RoomCode] = append(s.roomPlayers[player.RoomCode], player.ID)
	}
	s.players[player.ID] = player
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil
	}
	delete(s.players, id)

	ids := s.roomPlayers[player.RoomCode]
	for i, pid := range ids {
		if pid == id {
			s.roomPlayers[player.RoomCode] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.roomPlayers[player.RoomCode]) == 0 {
		delete(s.roomPlayers, player.RoomCode)
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context, code model.RoomCode) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.roomPlayers[code]
	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.players[id]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}

// SaveRoomState writes the room and players under a single lock acquisition
func (s *Storage) SaveRoomState(ctx context.Context, room *model.Room, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Code] = room
	for _, p := range players {
		s.savePlayerLocked(p)
	}
	return nil
}
