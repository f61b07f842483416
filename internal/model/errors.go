package model

import "errors"

// Common errors used across the application
var (
	// Validation errors
	ErrInvalidMaxPlayers  = errors.New("max players must be between 2 and 4")
	ErrInvalidDisplayName = errors.New("display name must be 1-64 characters")
	ErrInvalidAllocation  = errors.New("allocations must be 0-100 and sum to 100")
	ErrMissingAllocation  = errors.New("player is missing an allocation")
	ErrNoPlayers          = errors.New("no players to settle")

	// Not-found errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Conflict errors
	ErrRoomFull            = errors.New("room is full")
	ErrAlreadySubmitted    = errors.New("allocation already submitted")
	ErrInsufficientPlayers = errors.New("need at least two players")
	ErrRoomCompleted       = errors.New("room already completed")
)
