package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"splitpot/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoomTTL = time.Hour
	cfg.PlayerTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) player(id model.PlayerID, room model.RoomCode, name string) *model.Player {
	return &model.Player{
		ID:          id,
		RoomCode:    room,
		DisplayName: name,
		JoinedAt:    time.Now().UTC(),
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:       "ABC123",
		MaxPlayers: 3,
		Status:     model.RoomStatusWaiting,
		CreatedAt:  time.Now().UTC(),
	}

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(room.MaxPlayers, retrieved.MaxPlayers)
	s.Equal(room.Status, retrieved.Status)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomExists() {
	room := &model.Room{Code: "ABC123", Status: model.RoomStatusWaiting}
	_ = s.storage.SaveRoom(s.ctx, room)

	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestRoomTTL() {
	room := &model.Room{Code: "ABC123", Status: model.RoomStatusWaiting}
	_ = s.storage.SaveRoom(s.ctx, room)

	ttl := s.mini.TTL(roomKey(room.Code))
	s.True(ttl > 0, "Room should have TTL")
}

func (s *StorageSuite) TestDeleteRoomCascadesToPlayers() {
	room := &model.Room{Code: "ABC123", Status: model.RoomStatusWaiting}
	_ = s.storage.SaveRoom(s.ctx, room)
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ABC123", "Alice"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ABC123", "Bob"))

	err := s.storage.DeleteRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
	_, err = s.storage.GetPlayer(s.ctx, "p1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Empty(players)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "ABC123", "Alice")
	a, b := 60, 40
	player.AllocationA = &a
	player.AllocationB = &b

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(60, *retrieved.AllocationA)
	s.Equal(40, *retrieved.AllocationB)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerTTL() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "ABC123", "Alice"))

	ttl := s.mini.TTL(playerKey("player-1"))
	s.True(ttl > 0, "Player should have TTL")
}

func (s *StorageSuite) TestPlayerIndexTTL() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "ABC123", "Alice"))

	ttl := s.mini.TTL(roomPlayersKey("ABC123"))
	s.True(ttl > 0, "Player index should have TTL")
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "ABC123", "Alice"))

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestDeletePlayerMissingIsNoop() {
	err := s.storage.DeletePlayer(s.ctx, "nonexistent")
	s.NoError(err)
}

func (s *StorageSuite) TestListPlayersJoinOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ABC123", "First"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ABC123", "Second"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p3", "ABC123", "Third"))

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
	s.Equal(model.PlayerID("p3"), players[2].ID)
}

func (s *StorageSuite) TestListPlayersScopedToRoom() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ROOMAA", "Alice"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ROOMBB", "Bob"))

	players, err := s.storage.ListPlayers(s.ctx, "ROOMAA")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("p1"), players[0].ID)
}

func (s *StorageSuite) TestListPlayersEmptyRoom() {
	players, err := s.storage.ListPlayers(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestResaveKeepsJoinOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ABC123", "First"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ABC123", "Second"))

	updated := s.player("p1", "ABC123", "First")
	a, b := 60, 40
	updated.AllocationA = &a
	updated.AllocationB = &b
	_ = s.storage.SavePlayer(s.ctx, updated)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(60, *players[0].AllocationA)
}

func (s *StorageSuite) TestListPlayersSkipsExpiredEntries() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ABC123", "Alice"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ABC123", "Bob"))

	// Simulate an expired player value while its index entry lingers
	s.mini.Del(playerKey("p1"))

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID("p2"), players[0].ID)
}

// SaveRoomState tests

func (s *StorageSuite) TestSaveRoomStateWritesRoomAndPlayers() {
	room := &model.Room{Code: "ABC123", MaxPlayers: 2, Status: model.RoomStatusCompleted}
	p1 := s.player("p1", "ABC123", "Alice")
	p2 := s.player("p2", "ABC123", "Bob")

	err := s.storage.SaveRoomState(s.ctx, room, []*model.Player{p1, p2})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusCompleted, retrieved.Status)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p2"), players[1].ID)
}

func (s *StorageSuite) TestSaveRoomStateDoesNotDuplicateIndexEntries() {
	room := &model.Room{Code: "ABC123", MaxPlayers: 2, Status: model.RoomStatusReady}
	p1 := s.player("p1", "ABC123", "Alice")
	_ = s.storage.SavePlayer(s.ctx, p1)

	a, b := 30, 70
	p1.AllocationA = &a
	p1.AllocationB = &b
	err := s.storage.SaveRoomState(s.ctx, room, []*model.Player{p1})
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(30, *players[0].AllocationA)
}
