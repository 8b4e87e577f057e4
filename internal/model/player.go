package model

import "time"

// Player represents a Minecraft player tracked on the dashboard.
// Name is globally unique. TeamID is nil for unaffiliated players.
// LastSeen is stamped at creation and refreshed on every online-status
// change.
type Player struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	TeamID   *int      `json:"teamId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// InsertPlayer carries the producer-settable fields of a Player.
// The id and lastSeen timestamp are assigned by the store.
type InsertPlayer struct {
	Name     string `json:"name"`
	TeamID   *int   `json:"teamId"`
	IsOnline bool   `json:"isOnline"`
}

// PlayerPatch is a partial update to a Player; nil fields are left unchanged
type PlayerPatch struct {
	Name     *string `json:"name,omitempty"`
	TeamID   *int    `json:"teamId,omitempty"`
	IsOnline *bool   `json:"isOnline,omitempty"`
}
