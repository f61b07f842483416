package redis

import (
	"fmt"

	"splitpot/internal/model"
)

// Key prefix for all room-related data
const keyPrefix = "splitpot"

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roomPlayersKey returns the Redis key for the LIST of a room's player ids,
// in join order
func roomPlayersKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:idx:room_players:%s", keyPrefix, code)
}
