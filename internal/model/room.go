package model

import "time"

// RoomCode uniquely identifies a room
type RoomCode string

// RoomStatus is the lifecycle state of a room
type RoomStatus string

const (
	// RoomStatusWaiting means the room has open seats
	RoomStatusWaiting RoomStatus = "waiting"
	// RoomStatusReady means every seat is filled
	RoomStatusReady RoomStatus = "ready"
	// RoomStatusCompleted means payouts have been finalized
	RoomStatusCompleted RoomStatus = "completed"
)

const (
	// MinPlayers is the minimum room capacity
	MinPlayers = 2
	// MaxPlayers is the maximum room capacity
	MaxPlayers = 4
)

// Room is a game session that players join and submit allocations to.
// Completed is terminal: a completed room never changes again.
type Room struct {
	Code       RoomCode   `json:"code"`
	MaxPlayers int        `json:"max_players"`
	Status     RoomStatus `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Completed reports whether the room has been finalized
func (r *Room) Completed() bool {
	return r.Status == RoomStatusCompleted
}
