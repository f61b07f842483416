package model

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerSubmitted EventType = "player_submitted"
	EventPlayerLeft      EventType = "player_left"
	EventResultsReady    EventType = "results_ready"
)

// Event is a room state-change notification delivered to subscribers.
// It is serialized as-is onto the SSE stream.
type Event struct {
	Type     EventType `json:"type"`
	RoomCode RoomCode  `json:"room_code"`
	Payload  any       `json:"payload"`
}

// PlayerInfo is the wire view of a player embedded in event payloads
type PlayerInfo struct {
	ID          PlayerID `json:"id"`
	DisplayName string   `json:"display_name"`
	Submitted   bool     `json:"submitted"`
	AllocationA *int     `json:"allocation_a"`
	AllocationB *int     `json:"allocation_b"`
	Payout      *float64 `json:"payout"`
}

// PlayerPayload contains data for player_joined and player_submitted events
type PlayerPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload contains data for player_left events
type PlayerLeftPayload struct {
	PlayerID PlayerID   `json:"player_id"`
	Status   RoomStatus `json:"status"`
}

// PayoutInfo is one player's computed payout inside a results_ready payload
type PayoutInfo struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	Payout      float64  `json:"payout"`
}

// ResultsReadyPayload contains data for results_ready events
type ResultsReadyPayload struct {
	TotalBPool  float64      `json:"total_b_pool"`
	BoostedPool float64      `json:"boosted_pool"`
	Players     []PayoutInfo `json:"players"`
}
