package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lagcraft/statusboard/internal/storage"
)

// WSHandler upgrades HTTP requests to WebSocket connections and attaches
// them to the hub
type WSHandler struct {
	hub        *Hub
	dispatcher *Dispatcher
	store      storage.Store
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewWSHandler creates the WebSocket upgrade handler
func NewWSHandler(hub *Hub, dispatcher *Dispatcher, store storage.Store, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:        hub,
		dispatcher: dispatcher,
		store:      store,
		logger:     logger.With(slog.String("component", "relay-ws")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The relay has a single trusted producer and public
			// read-only consumers; origin is not restricted
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	frame, err := h.snapshotFrame(r)
	if err != nil {
		h.logger.Error("initial state snapshot failed", slog.Any("error", err))
		_ = conn.Close()
		return
	}

	// The snapshot is written before the client joins the hub, so it is
	// always the first frame the client sees
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		h.logger.Warn("initial state write failed", slog.Any("error", err))
		_ = conn.Close()
		return
	}

	client := NewClient(h.hub, h.dispatcher, conn, h.logger)
	h.hub.Register(client)

	go client.writePump()
	go client.readPump()
}

// snapshotFrame builds the initial_state envelope from the store's
// current contents
func (h *WSHandler) snapshotFrame(r *http.Request) ([]byte, error) {
	ctx := r.Context()

	teams, err := h.store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	players, err := h.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	alliances, err := h.store.ListAlliances(ctx)
	if err != nil {
		return nil, err
	}
	events, err := h.store.ListEvents(ctx, storage.DefaultFeedLimit)
	if err != nil {
		return nil, err
	}
	chatMessages, err := h.store.ListChatMessages(ctx, storage.DefaultFeedLimit)
	if err != nil {
		return nil, err
	}

	snapshot := Snapshot{
		Teams:        emptyIfNil(teams),
		Players:      emptyIfNil(players),
		Alliances:    emptyIfNil(alliances),
		Events:       emptyIfNil(events),
		ChatMessages: emptyIfNil(chatMessages),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: TypeInitialState, Data: data})
}

// emptyIfNil keeps empty entity lists as [] rather than null on the wire
func emptyIfNil[T any](rows []*T) []*T {
	if rows == nil {
		return []*T{}
	}
	return rows
}
