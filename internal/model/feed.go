package model

import "time"

// EventType identifies the kind of server event on the live feed
type EventType string

const (
	EventPvP             EventType = "pvp"
	EventAllianceCreated EventType = "alliance_created"
	EventAllianceBroken  EventType = "alliance_broken"
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
)

// ValidEventType reports whether t is one of the known event types
func ValidEventType(t EventType) bool {
	switch t {
	case EventPvP, EventAllianceCreated, EventAllianceBroken,
		EventPlayerJoined, EventPlayerLeft:
		return true
	}
	return false
}

// ServerEvent is an append-only live feed entry. Events are immutable
// once created; reads return most-recent-first.
type ServerEvent struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// InsertServerEvent carries the producer-settable fields of a ServerEvent
type InsertServerEvent struct {
	Type    EventType `json:"type"`
	Content string    `json:"content"`
}

// ChatMessage is an append-only in-game chat entry. Messages are
// immutable once created; reads return most-recent-first.
type ChatMessage struct {
	ID         int       `json:"id"`
	PlayerName string    `json:"playerName"`
	TeamID     *int      `json:"teamId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// InsertChatMessage carries the producer-settable fields of a ChatMessage
type InsertChatMessage struct {
	PlayerName string `json:"playerName"`
	TeamID     *int   `json:"teamId"`
	Message    string `json:"message"`
}
