package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

const (
	// DisplayNameMinLength is the minimum display name length
	DisplayNameMinLength = 1
	// DisplayNameMaxLength is the maximum display name length
	DisplayNameMaxLength = 64
)

// Player represents a participant in exactly one room.
// AllocationA/B and SubmittedAt are nil until the player submits;
// Payout is nil until the room is finalized.
type Player struct {
	ID          PlayerID         `json:"id"`
	RoomCode    RoomCode         `json:"room_code"`
	DisplayName string           `json:"display_name"`
	AllocationA *int             `json:"allocation_a"`
	AllocationB *int             `json:"allocation_b"`
	Payout      *decimal.Decimal `json:"payout"`
	SubmittedAt *time.Time       `json:"submitted_at"`
	JoinedAt    time.Time        `json:"joined_at"`
}

// Submitted reports whether the player has locked in an allocation
func (p *Player) Submitted() bool {
	return p.SubmittedAt != nil
}

// Info returns the event-payload view of the player
func (p *Player) Info() PlayerInfo {
	info := PlayerInfo{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Submitted:   p.Submitted(),
		AllocationA: p.AllocationA,
		AllocationB: p.AllocationB,
	}
	if p.Payout != nil {
		v := p.Payout.InexactFloat64()
		info.Payout = &v
	}
	return info
}
