package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"splitpot/internal/api/apierr"
	"splitpot/internal/api/request"
	"splitpot/internal/api/response"
	"splitpot/internal/broker"
	"splitpot/internal/model"
	"splitpot/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	coordinator room.CoordinatorInterface
	broker      *broker.Broker
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(coordinator room.CoordinatorInterface, b *broker.Broker) *RoomHandler {
	return &RoomHandler{
		coordinator: coordinator,
		broker:      b,
	}
}

// publish fans events out to the room's subscribers, in order
func (h *RoomHandler) publish(events ...model.Event) {
	for _, event := range events {
		h.broker.Publish(event.RoomCode, event)
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.coordinator.CreateRoom(r.Context(), req.MaxPlayers)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	found, err := h.coordinator.GetRoom(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	players, err := h.coordinator.ListPlayers(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomDetailFromModel(found, players))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	player, event, err := h.coordinator.JoinRoom(r.Context(), code, req.DisplayName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.publish(event)
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Submit handles POST /api/v1/rooms/{code}/submit
func (h *RoomHandler) Submit(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.SubmitAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id is required"))
		return
	}
	if req.AssetA == nil || req.AssetB == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("asset_a and asset_b are required"))
		return
	}

	player, events, err := h.coordinator.SubmitAllocation(
		r.Context(), code, model.PlayerID(req.PlayerID), *req.AssetA, *req.AssetB)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.publish(events...)
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Leave handles DELETE /api/v1/rooms/{code}/players/{player_id}
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := model.RoomCode(vars["code"])
	playerID := model.PlayerID(vars["player_id"])

	_, _, event, err := h.coordinator.LeaveRoom(r.Context(), code, playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.publish(event)
	response.NoContent(w)
}
