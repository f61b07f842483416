package room

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"splitpot/internal/dependencies/clock"
	"splitpot/internal/dependencies/random"
	"splitpot/internal/model"
	"splitpot/internal/services/payout"
	"splitpot/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Coordinator owns the room lifecycle state machine: create, join, submit,
// leave, and the one-time finalization once every player has submitted.
//
// Every mutating operation takes the room's keyed mutex for its whole
// read-modify-write cycle, so exactly one mutation per room code commits at
// a time while distinct rooms proceed in parallel.
type Coordinator struct {
	storage    storage.Storage
	calculator *payout.Calculator
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	locks      *keyedMutex
}

// NewCoordinator creates a new room Coordinator
func NewCoordinator(
	store storage.Storage,
	calculator *payout.Calculator,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		storage:    store,
		calculator: calculator,
		clock:      clk,
		random:     rnd,
		logger:     logger.With(slog.String("component", "room-coordinator")),
		locks:      newKeyedMutex(),
	}
}

// CreateRoom creates a new waiting room with a freshly generated unique code
func (c *Coordinator) CreateRoom(ctx context.Context, maxPlayers int) (*model.Room, error) {
	if maxPlayers < model.MinPlayers || maxPlayers > model.MaxPlayers {
		return nil, model.ErrInvalidMaxPlayers
	}

	// Generate a unique room code, retrying on collision. The drawn code's
	// lock is held across the existence check and the save so a concurrent
	// create drawing the same code cannot overwrite this room.
	for {
		code := model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		unlock := c.locks.lock(code)

		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			unlock()
			return nil, err
		}
		if exists {
			unlock()
			continue
		}

		room := &model.Room{
			Code:       code,
			MaxPlayers: maxPlayers,
			Status:     model.RoomStatusWaiting,
			CreatedAt:  c.clock.Now(),
		}
		err = c.storage.SaveRoom(ctx, room)
		unlock()
		if err != nil {
			return nil, err
		}

		c.logger.Info("room created",
			slog.String("room", string(code)),
			slog.Int("max_players", maxPlayers))
		return room, nil
	}
}

// GetRoom retrieves a room by code
func (c *Coordinator) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// ListPlayers returns a room's players in join order
func (c *Coordinator) ListPlayers(ctx context.Context, code model.RoomCode) ([]*model.Player, error) {
	if _, err := c.storage.GetRoom(ctx, code); err != nil {
		return nil, err
	}
	return c.storage.ListPlayers(ctx, code)
}

// JoinRoom adds a player to a room. Filling the room to capacity moves it
// from waiting to ready in the same step.
func (c *Coordinator) JoinRoom(ctx context.Context, code model.RoomCode, displayName string) (*model.Player, model.Event, error) {
	nameLen := utf8.RuneCountInString(displayName)
	if nameLen < model.DisplayNameMinLength || nameLen > model.DisplayNameMaxLength {
		return nil, model.Event{}, model.ErrInvalidDisplayName
	}

	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, model.Event{}, err
	}
	if room.Completed() {
		return nil, model.Event{}, model.ErrRoomCompleted
	}

	players, err := c.storage.ListPlayers(ctx, code)
	if err != nil {
		return nil, model.Event{}, err
	}
	if len(players) >= room.MaxPlayers {
		return nil, model.Event{}, model.ErrRoomFull
	}

	player := &model.Player{
		ID:          model.PlayerID(c.random.UUID()),
		RoomCode:    code,
		DisplayName: displayName,
		JoinedAt:    c.clock.Now(),
	}

	if len(players)+1 == room.MaxPlayers {
		room.Status = model.RoomStatusReady
	}

	if err := c.storage.SaveRoomState(ctx, room, []*model.Player{player}); err != nil {
		return nil, model.Event{}, err
	}

	event := model.Event{
		Type:     model.EventPlayerJoined,
		RoomCode: code,
		Payload:  model.PlayerPayload{Player: player.Info()},
	}
	return player, event, nil
}

// SubmitAllocation records a player's allocation. If this was the last
// outstanding submission for a full room, the room is finalized in the same
// atomic step and a results_ready event follows the player_submitted event.
func (c *Coordinator) SubmitAllocation(ctx context.Context, code model.RoomCode, playerID model.PlayerID, a, b int) (*model.Player, []model.Event, error) {
	if a < 0 || a > 100 || b < 0 || b > 100 || a+b != 100 {
		return nil, nil, model.ErrInvalidAllocation
	}

	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	players, err := c.storage.ListPlayers(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	var player *model.Player
	for _, p := range players {
		if p.ID == playerID {
			player = p
			break
		}
	}
	if player == nil {
		return nil, nil, model.ErrPlayerNotFound
	}

	if len(players) < model.MinPlayers {
		return nil, nil, model.ErrInsufficientPlayers
	}
	if player.Submitted() {
		return nil, nil, model.ErrAlreadySubmitted
	}

	now := c.clock.Now()
	player.AllocationA = &a
	player.AllocationB = &b
	player.SubmittedAt = &now

	events := []model.Event{{
		Type:     model.EventPlayerSubmitted,
		RoomCode: code,
		Payload:  model.PlayerPayload{Player: player.Info()},
	}}

	if c.readyToFinalize(room, players) {
		result, err := c.finalize(ctx, room, players)
		if err != nil {
			return nil, nil, err
		}
		events = append(events, model.Event{
			Type:     model.EventResultsReady,
			RoomCode: code,
			Payload:  result.Payload(),
		})
	} else if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	return player, events, nil
}

// LeaveRoom removes a player from a room that has not completed. A ready
// room regresses to waiting when it drops below capacity.
func (c *Coordinator) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Player, *model.Room, model.Event, error) {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, nil, model.Event{}, err
	}
	if room.Completed() {
		return nil, nil, model.Event{}, model.ErrRoomCompleted
	}

	players, err := c.storage.ListPlayers(ctx, code)
	if err != nil {
		return nil, nil, model.Event{}, err
	}

	var player *model.Player
	for _, p := range players {
		if p.ID == playerID {
			player = p
			break
		}
	}
	if player == nil {
		return nil, nil, model.Event{}, model.ErrPlayerNotFound
	}

	if err := c.storage.DeletePlayer(ctx, playerID); err != nil {
		return nil, nil, model.Event{}, err
	}

	if room.Status == model.RoomStatusReady && len(players)-1 < room.MaxPlayers {
		room.Status = model.RoomStatusWaiting
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, nil, model.Event{}, err
		}
	}

	event := model.Event{
		Type:     model.EventPlayerLeft,
		RoomCode: code,
		Payload: model.PlayerLeftPayload{
			PlayerID: player.ID,
			Status:   room.Status,
		},
	}
	return player, room, event, nil
}

// readyToFinalize reports whether every seat is filled and every player has
// submitted. Completed acts as a one-way gate: a finalized room can never
// finalize again.
func (c *Coordinator) readyToFinalize(room *model.Room, players []*model.Player) bool {
	if room.Completed() {
		return false
	}
	if len(players) != room.MaxPlayers {
		return false
	}
	for _, p := range players {
		if !p.Submitted() {
			return false
		}
	}
	return true
}

// finalize computes payouts, writes them to every player, and marks the
// room completed, all as one storage write
func (c *Coordinator) finalize(ctx context.Context, room *model.Room, players []*model.Player) (*payout.Result, error) {
	result, err := c.calculator.Calculate(players)
	if err != nil {
		return nil, err
	}

	for i, p := range players {
		amount := result.Players[i].Payout
		p.Payout = &amount
	}
	room.Status = model.RoomStatusCompleted

	if err := c.storage.SaveRoomState(ctx, room, players); err != nil {
		return nil, err
	}

	c.logger.Info("room finalized",
		slog.String("room", string(room.Code)),
		slog.Int("players", len(players)))
	return result, nil
}

// Interface for dependency injection
type CoordinatorInterface interface {
	CreateRoom(ctx context.Context, maxPlayers int) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	ListPlayers(ctx context.Context, code model.RoomCode) ([]*model.Player, error)
	JoinRoom(ctx context.Context, code model.RoomCode, displayName string) (*model.Player, model.Event, error)
	SubmitAllocation(ctx context.Context, code model.RoomCode, playerID model.PlayerID, a, b int) (*model.Player, []model.Event, error)
	LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*model.Player, *model.Room, model.Event, error)
}

var _ CoordinatorInterface = (*Coordinator)(nil)
