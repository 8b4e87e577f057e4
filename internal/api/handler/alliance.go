package handler

import (
	"net/http"

	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/storage"
)

// AllianceHandler handles alliance read endpoints
type AllianceHandler struct {
	store storage.Store
}

// NewAllianceHandler creates a new alliance handler
func NewAllianceHandler(store storage.Store) *AllianceHandler {
	return &AllianceHandler{store: store}
}

// List handles GET /api/alliances
func (h *AllianceHandler) List(w http.ResponseWriter, r *http.Request) {
	alliances, err := h.store.ListAlliances(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AlliancesFromModel(alliances))
}
