package update

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagcraft/statusboard/internal/model"
)

func TestTeam(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      model.InsertTeam
		wantField string
	}{
		{
			name:    "valid",
			payload: `{"name":"Red","prefix":"RED","color":"#FF0000"}`,
			want:    model.InsertTeam{Name: "Red", Prefix: "RED", Color: "#FF0000"},
		},
		{
			name:    "extra fields ignored",
			payload: `{"name":"Red","prefix":"RED","color":"#FF0000","id":7,"bogus":true}`,
			want:    model.InsertTeam{Name: "Red", Prefix: "RED", Color: "#FF0000"},
		},
		{
			name:      "missing name",
			payload:   `{"prefix":"RED","color":"#FF0000"}`,
			wantField: "name",
		},
		{
			name:      "empty prefix",
			payload:   `{"name":"Red","prefix":"","color":"#FF0000"}`,
			wantField: "prefix",
		},
		{
			name:      "missing color",
			payload:   `{"name":"Red","prefix":"RED"}`,
			wantField: "color",
		},
		{
			name:      "wrong type",
			payload:   `{"name":7,"prefix":"RED","color":"#FF0000"}`,
			wantField: "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Team(json.RawMessage(tt.payload))
			if tt.wantField != "" {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, tt.wantField, fieldErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayer(t *testing.T) {
	teamID := 3

	tests := []struct {
		name      string
		payload   string
		want      model.InsertPlayer
		wantField string
	}{
		{
			name:    "valid minimal",
			payload: `{"name":"Steve"}`,
			want:    model.InsertPlayer{Name: "Steve"},
		},
		{
			name:    "numeric team id",
			payload: `{"name":"Steve","teamId":3,"isOnline":true}`,
			want:    model.InsertPlayer{Name: "Steve", TeamID: &teamID, IsOnline: true},
		},
		{
			name:    "stringified values from skript",
			payload: `{"name":"Steve","teamId":"3","isOnline":"true"}`,
			want:    model.InsertPlayer{Name: "Steve", TeamID: &teamID, IsOnline: true},
		},
		{
			name:    "null team id",
			payload: `{"name":"Steve","teamId":null}`,
			want:    model.InsertPlayer{Name: "Steve"},
		},
		{
			name:      "missing name",
			payload:   `{"teamId":3}`,
			wantField: "name",
		},
		{
			name:      "non-numeric team id",
			payload:   `{"name":"Steve","teamId":"red"}`,
			wantField: "data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Player(json.RawMessage(tt.payload))
			if tt.wantField != "" {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, tt.wantField, fieldErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlliance(t *testing.T) {
	got, err := Alliance(json.RawMessage(`{"team1Id":"1","team2Id":2}`))
	require.NoError(t, err)
	assert.Equal(t, model.InsertAlliance{Team1ID: 1, Team2ID: 2}, got)

	_, err = Alliance(json.RawMessage(`{"team1Id":1}`))
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "team2Id", fieldErr.Field)
}

func TestEvent(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      model.InsertServerEvent
		wantField string
	}{
		{
			name:    "valid",
			payload: `{"type":"pvp","content":"Steve slew Alex"}`,
			want:    model.InsertServerEvent{Type: model.EventPvP, Content: "Steve slew Alex"},
		},
		{
			name:      "unknown type",
			payload:   `{"type":"earthquake","content":"rumble"}`,
			wantField: "type",
		},
		{
			name:      "missing content",
			payload:   `{"type":"player_joined"}`,
			wantField: "content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Event(json.RawMessage(tt.payload))
			if tt.wantField != "" {
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, tt.wantField, fieldErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChat(t *testing.T) {
	teamID := 2
	got, err := Chat(json.RawMessage(`{"playerName":"Steve","teamId":"2","message":"hello"}`))
	require.NoError(t, err)
	assert.Equal(t, model.InsertChatMessage{PlayerName: "Steve", TeamID: &teamID, Message: "hello"}, got)

	_, err = Chat(json.RawMessage(`{"playerName":"Steve"}`))
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "message", fieldErr.Field)
}

func TestID(t *testing.T) {
	id, ok := ID(json.RawMessage(`{"id":7}`))
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	id, ok = ID(json.RawMessage(`{"id":"7"}`))
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = ID(json.RawMessage(`{"name":"Steve"}`))
	assert.False(t, ok)

	_, ok = ID(json.RawMessage(`{"id":"seven"}`))
	assert.False(t, ok)
}

func TestOnlineShorthand(t *testing.T) {
	name, online, ok := OnlineShorthand(json.RawMessage(`{"name":"Steve","isOnline":"false"}`))
	assert.True(t, ok)
	assert.Equal(t, "Steve", name)
	assert.False(t, online)

	_, _, ok = OnlineShorthand(json.RawMessage(`{"name":"Steve"}`))
	assert.False(t, ok)
}
