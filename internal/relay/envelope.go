// Package relay implements the real-time fan-out channel: a single
// WebSocket endpoint that accepts typed mutation envelopes from the
// game-server producer, applies them to the store, and broadcasts the
// change notification to every connected dashboard client.
package relay

import (
	"encoding/json"

	"github.com/lagcraft/statusboard/internal/model"
)

// Entity kinds accepted on the wire
const (
	KindTeam     = "team"
	KindPlayer   = "player"
	KindAlliance = "alliance"
	KindEvent    = "event"
	KindChat     = "chat"
)

// Mutation actions accepted on the wire
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// TypeInitialState is the envelope type of the snapshot message sent to
// each client on connect
const TypeInitialState = "initial_state"

// Envelope is the wire frame for producer mutations and broadcast
// notifications. Broadcasts echo the producer's original data payload;
// clients treat them as invalidation signals and re-fetch over HTTP.
type Envelope struct {
	Type   string          `json:"type"`
	Action string          `json:"action,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Snapshot is the initial_state payload: the full current contents of
// every entity list, feeds capped at their default limit.
type Snapshot struct {
	Teams        []*model.Team        `json:"teams"`
	Players      []*model.Player      `json:"players"`
	Alliances    []*model.Alliance    `json:"alliances"`
	Events       []*model.ServerEvent `json:"events"`
	ChatMessages []*model.ChatMessage `json:"chatMessages"`
}
