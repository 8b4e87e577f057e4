package response

import (
	"time"

	"github.com/lagcraft/statusboard/internal/model"
)

// Team represents a team in API responses
type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Color  string `json:"color"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t *model.Team) Team {
	return Team{
		ID:     t.ID,
		Name:   t.Name,
		Prefix: t.Prefix,
		Color:  t.Color,
	}
}

// TeamsFromModel converts a team list; the result is never nil so empty
// lists serialize as []
func TeamsFromModel(teams []*model.Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamFromModel(t))
	}
	return out
}

// Player represents a player in API responses
type Player struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	TeamID   *int      `json:"teamId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       p.ID,
		Name:     p.Name,
		TeamID:   p.TeamID,
		IsOnline: p.IsOnline,
		LastSeen: p.LastSeen,
	}
}

// PlayersFromModel converts a player list
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerFromModel(p))
	}
	return out
}

// Alliance represents an alliance in API responses
type Alliance struct {
	ID        int       `json:"id"`
	Team1ID   int       `json:"team1Id"`
	Team2ID   int       `json:"team2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

// AllianceFromModel converts a model.Alliance to a response Alliance
func AllianceFromModel(a *model.Alliance) Alliance {
	return Alliance{
		ID:        a.ID,
		Team1ID:   a.Team1ID,
		Team2ID:   a.Team2ID,
		CreatedAt: a.CreatedAt,
	}
}

// AlliancesFromModel converts an alliance list
func AlliancesFromModel(alliances []*model.Alliance) []Alliance {
	out := make([]Alliance, 0, len(alliances))
	for _, a := range alliances {
		out = append(out, AllianceFromModel(a))
	}
	return out
}

// ServerEvent represents a live feed event in API responses
type ServerEvent struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerEventFromModel converts a model.ServerEvent
func ServerEventFromModel(e *model.ServerEvent) ServerEvent {
	return ServerEvent{
		ID:        e.ID,
		Type:      string(e.Type),
		Content:   e.Content,
		Timestamp: e.Timestamp,
	}
}

// ServerEventsFromModel converts an event list
func ServerEventsFromModel(events []*model.ServerEvent) []ServerEvent {
	out := make([]ServerEvent, 0, len(events))
	for _, e := range events {
		out = append(out, ServerEventFromModel(e))
	}
	return out
}

// ChatMessage represents a chat message in API responses
type ChatMessage struct {
	ID         int       `json:"id"`
	PlayerName string    `json:"playerName"`
	TeamID     *int      `json:"teamId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatMessageFromModel converts a model.ChatMessage
func ChatMessageFromModel(m *model.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:         m.ID,
		PlayerName: m.PlayerName,
		TeamID:     m.TeamID,
		Message:    m.Message,
		Timestamp:  m.Timestamp,
	}
}

// ChatMessagesFromModel converts a chat message list
func ChatMessagesFromModel(messages []*model.ChatMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, ChatMessageFromModel(m))
	}
	return out
}

// Health is the health check response body
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
