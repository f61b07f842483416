package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"splitpot/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) player(id model.PlayerID, room model.RoomCode, name string) *model.Player {
	return &model.Player{
		ID:          id,
		RoomCode:    room,
		DisplayName: name,
		JoinedAt:    time.Now(),
	}
}

// Room tests

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := &model.Room{
		Code:       "ABC123",
		MaxPlayers: 3,
		Status:     model.RoomStatusWaiting,
		CreatedAt:  time.Now(),
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
	_, err = s.storage.GetPlayer(s.ctx, "p2")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := s.player("player-1", "ABC123", "Alice")

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, s.player("player-1", "ABC123", "Alice"))

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
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

	// Re-saving an existing player must not move them to the back
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

func (s *StorageSuite) TestDeletePlayerPreservesRemainingOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p1", "ABC123", "First"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p2", "ABC123", "Second"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p3", "ABC123", "Third"))

	err := s.storage.DeletePlayer(s.ctx, "p2")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p3"), players[1].ID)
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
	s.Len(players, 2)
}

func (s *StorageSuite) TestSaveRoomStateUpdatesExistingPlayers() {
	room := &model.Room{Code: "ABC123", MaxPlayers: 2, Status: model.RoomStatusReady}
	p1 := s.player("p1", "ABC123", "Alice")
	_ = s.storage.SaveRoom(s.ctx, room)
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
