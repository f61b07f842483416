package response

import (
	"time"

	"splitpot/internal/model"
)

// Room represents a room in API responses
type Room struct {
	Code       string    `json:"code"`
	MaxPlayers int       `json:"max_players"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	return Room{
		Code:       string(r.Code),
		MaxPlayers: r.MaxPlayers,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
	}
}

// Player represents a player in API responses
type Player struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Submitted   bool       `json:"submitted"`
	AllocationA *int       `json:"allocation_a"`
	AllocationB *int       `json:"allocation_b"`
	Payout      *float64   `json:"payout"`
	JoinedAt    time.Time  `json:"joined_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	resp := Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Submitted:   p.Submitted(),
		AllocationA: p.AllocationA,
		AllocationB: p.AllocationB,
		JoinedAt:    p.JoinedAt,
		SubmittedAt: p.SubmittedAt,
	}
	if p.Payout != nil {
		v := p.Payout.InexactFloat64()
		resp.Payout = &v
	}
	return resp
}

// RoomDetail is a room together with its players in join order
type RoomDetail struct {
	Room
	Players []Player `json:"players"`
}

// RoomDetailFromModel converts a room and its players
func RoomDetailFromModel(r *model.Room, players []*model.Player) RoomDetail {
	ps := make([]Player, len(players))
	for i, p := range players {
		ps[i] = PlayerFromModel(p)
	}
	return RoomDetail{
		Room:    RoomFromModel(r),
		Players: ps,
	}
}
