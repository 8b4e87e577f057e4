package handler

import (
	"net/http"

	"github.com/lagcraft/statusboard/internal/api/request"
	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/storage"
)

// TeamHandler handles team read endpoints
type TeamHandler struct {
	store storage.Store
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(store storage.Store) *TeamHandler {
	return &TeamHandler{store: store}
}

// List handles GET /api/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamsFromModel(teams))
}

// Get handles GET /api/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	team, err := h.store.GetTeam(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}

// ListPlayers handles GET /api/teams/{id}/players
func (h *TeamHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := request.PathID(r, "id")
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	// 404 for unknown teams rather than an empty roster
	if _, err := h.store.GetTeam(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	players, err := h.store.ListPlayersByTeam(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}
