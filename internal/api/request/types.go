package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	MaxPlayers int `json:"max_players"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	DisplayName string `json:"display_name"`
}

// SubmitAllocationRequest is the request body for submitting an allocation.
// The wire names the allocations by asset; responses report them as
// allocation_a/allocation_b.
type SubmitAllocationRequest struct {
	PlayerID string `json:"player_id"`
	AssetA   *int   `json:"asset_a"`
	AssetB   *int   `json:"asset_b"`
}
