// Package update validates and normalizes mutation payloads sent by the
// game-server producer before they reach the store. Payloads arrive as
// loosely-typed JSON (the producer is a Skript integration that stringifies
// most values), so numeric and boolean fields tolerate their string forms.
package update

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lagcraft/statusboard/internal/model"
)

// FieldError describes a payload field that failed validation
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "invalid field " + e.Field + ": " + e.Reason
}

// flexInt decodes a JSON number or a numeric string
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// flexBool decodes a JSON bool or its string form
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*f = flexBool(v)
	return nil
}

func (f *flexInt) intPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Team validates a team creation payload
func Team(raw json.RawMessage) (model.InsertTeam, error) {
	var payload struct {
		Name   *string `json:"name"`
		Prefix *string `json:"prefix"`
		Color  *string `json:"color"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.InsertTeam{}, &FieldError{Field: "data", Reason: "malformed team payload"}
	}
	if payload.Name == nil || *payload.Name == "" {
		return model.InsertTeam{}, &FieldError{Field: "name", Reason: "required"}
	}
	if payload.Prefix == nil || *payload.Prefix == "" {
		return model.InsertTeam{}, &FieldError{Field: "prefix", Reason: "required"}
	}
	if payload.Color == nil || *payload.Color == "" {
		return model.InsertTeam{}, &FieldError{Field: "color", Reason: "required"}
	}
	return model.InsertTeam{Name: *payload.Name, Prefix: *payload.Prefix, Color: *payload.Color}, nil
}

// TeamPatch validates a partial team update payload. The id field is
// ignored; it is routed separately and never part of the patch.
func TeamPatch(raw json.RawMessage) (model.TeamPatch, error) {
	var payload struct {
		Name   *string `json:"name"`
		Prefix *string `json:"prefix"`
		Color  *string `json:"color"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.TeamPatch{}, &FieldError{Field: "data", Reason: "malformed team payload"}
	}
	return model.TeamPatch{Name: payload.Name, Prefix: payload.Prefix, Color: payload.Color}, nil
}

// Player validates a player creation payload
func Player(raw json.RawMessage) (model.InsertPlayer, error) {
	var payload struct {
		Name     *string   `json:"name"`
		TeamID   *flexInt  `json:"teamId"`
		IsOnline *flexBool `json:"isOnline"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.InsertPlayer{}, &FieldError{Field: "data", Reason: "malformed player payload"}
	}
	if payload.Name == nil || *payload.Name == "" {
		return model.InsertPlayer{}, &FieldError{Field: "name", Reason: "required"}
	}
	insert := model.InsertPlayer{Name: *payload.Name, TeamID: payload.TeamID.intPtr()}
	if payload.IsOnline != nil {
		insert.IsOnline = bool(*payload.IsOnline)
	}
	return insert, nil
}

// PlayerPatch validates a partial player update payload
func PlayerPatch(raw json.RawMessage) (model.PlayerPatch, error) {
	var payload struct {
		Name     *string   `json:"name"`
		TeamID   *flexInt  `json:"teamId"`
		IsOnline *flexBool `json:"isOnline"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.PlayerPatch{}, &FieldError{Field: "data", Reason: "malformed player payload"}
	}
	patch := model.PlayerPatch{Name: payload.Name, TeamID: payload.TeamID.intPtr()}
	if payload.IsOnline != nil {
		v := bool(*payload.IsOnline)
		patch.IsOnline = &v
	}
	return patch, nil
}

// Alliance validates an alliance creation payload
func Alliance(raw json.RawMessage) (model.InsertAlliance, error) {
	var payload struct {
		Team1ID *flexInt `json:"team1Id"`
		Team2ID *flexInt `json:"team2Id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.InsertAlliance{}, &FieldError{Field: "data", Reason: "malformed alliance payload"}
	}
	if payload.Team1ID == nil {
		return model.InsertAlliance{}, &FieldError{Field: "team1Id", Reason: "required"}
	}
	if payload.Team2ID == nil {
		return model.InsertAlliance{}, &FieldError{Field: "team2Id", Reason: "required"}
	}
	return model.InsertAlliance{Team1ID: int(*payload.Team1ID), Team2ID: int(*payload.Team2ID)}, nil
}

// Event validates a server event payload
func Event(raw json.RawMessage) (model.InsertServerEvent, error) {
	var payload struct {
		Type    *string `json:"type"`
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.InsertServerEvent{}, &FieldError{Field: "data", Reason: "malformed event payload"}
	}
	if payload.Type == nil || *payload.Type == "" {
		return model.InsertServerEvent{}, &FieldError{Field: "type", Reason: "required"}
	}
	eventType := model.EventType(*payload.Type)
	if !model.ValidEventType(eventType) {
		return model.InsertServerEvent{}, &FieldError{Field: "type", Reason: "unknown event type " + *payload.Type}
	}
	if payload.Content == nil || *payload.Content == "" {
		return model.InsertServerEvent{}, &FieldError{Field: "content", Reason: "required"}
	}
	return model.InsertServerEvent{Type: eventType, Content: *payload.Content}, nil
}

// Chat validates a chat message payload
func Chat(raw json.RawMessage) (model.InsertChatMessage, error) {
	var payload struct {
		PlayerName *string  `json:"playerName"`
		TeamID     *flexInt `json:"teamId"`
		Message    *string  `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.InsertChatMessage{}, &FieldError{Field: "data", Reason: "malformed chat payload"}
	}
	if payload.PlayerName == nil || *payload.PlayerName == "" {
		return model.InsertChatMessage{}, &FieldError{Field: "playerName", Reason: "required"}
	}
	if payload.Message == nil || *payload.Message == "" {
		return model.InsertChatMessage{}, &FieldError{Field: "message", Reason: "required"}
	}
	return model.InsertChatMessage{
		PlayerName: *payload.PlayerName,
		TeamID:     payload.TeamID.intPtr(),
		Message:    *payload.Message,
	}, nil
}

// ID extracts the numeric id field from a payload; ok is false when the
// field is absent or not numeric
func ID(raw json.RawMessage) (int, bool) {
	var payload struct {
		ID *flexInt `json:"id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ID == nil {
		return 0, false
	}
	return int(*payload.ID), true
}

// TeamPair extracts the team1Id/team2Id fields from a payload; ok is
// false unless both are present and numeric
func TeamPair(raw json.RawMessage) (team1ID, team2ID int, ok bool) {
	var payload struct {
		Team1ID *flexInt `json:"team1Id"`
		Team2ID *flexInt `json:"team2Id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Team1ID == nil || payload.Team2ID == nil {
		return 0, 0, false
	}
	return int(*payload.Team1ID), int(*payload.Team2ID), true
}

// OnlineShorthand extracts the name/isOnline pair used by the player
// online-status shorthand; ok is false unless both fields are present
func OnlineShorthand(raw json.RawMessage) (name string, isOnline bool, ok bool) {
	var payload struct {
		Name     *string   `json:"name"`
		IsOnline *flexBool `json:"isOnline"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Name == nil || payload.IsOnline == nil {
		return "", false, false
	}
	return *payload.Name, bool(*payload.IsOnline), true
}
