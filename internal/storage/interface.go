package storage

import (
	"context"

	"splitpot/internal/model"
)

// Storage defines the interface for room and player persistence.
//
// Callers are expected to serialize mutations per room code (the room
// coordinator does this); implementations only guarantee that individual
// calls are atomic. SaveRoomState exists so a room and its players can be
// committed as one unit during join/submit/finalize.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)
	// DeleteRoom removes a room and all of its players in one unit
	DeleteRoom(ctx context.Context, code model.RoomCode) error

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	// ListPlayers returns a room's players in join order
	ListPlayers(ctx context.Context, code model.RoomCode) ([]*model.Player, error)

	// SaveRoomState writes a room and the given players atomically
	SaveRoomState(ctx context.Context, room *model.Room, players []*model.Player) error
}
