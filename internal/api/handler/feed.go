package handler

import (
	"net/http"

	"github.com/lagcraft/statusboard/internal/api/request"
	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/storage"
)

// FeedHandler handles the event and chat feed endpoints. Both feeds
// return newest-first and honor an optional limit query parameter.
type FeedHandler struct {
	store storage.Store
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(store storage.Store) *FeedHandler {
	return &FeedHandler{store: store}
}

// ListEvents handles GET /api/events
func (h *FeedHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := request.Limit(r)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	events, err := h.store.ListEvents(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ServerEventsFromModel(events))
}

// ListChat handles GET /api/chat
func (h *FeedHandler) ListChat(w http.ResponseWriter, r *http.Request) {
	limit, err := request.Limit(r)
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	messages, err := h.store.ListChatMessages(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ChatMessagesFromModel(messages))
}
