package handler

import (
	"net/http"

	"github.com/lagcraft/statusboard/internal/api/request"
	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/storage"
)

// PlayerHandler handles player read endpoints
type PlayerHandler struct {
	store storage.Store
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(store storage.Store) *PlayerHandler {
	return &PlayerHandler{store: store}
}

// List handles GET /api/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// ListOnline handles GET /api/players/online
func (h *PlayerHandler) ListOnline(w http.ResponseWriter, r *http.Request) {
	players, err := h.store.ListOnlinePlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	player, err := h.store.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
