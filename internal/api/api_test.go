package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagcraft/statusboard/internal/api"
	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/factory"
	"github.com/lagcraft/statusboard/internal/model"
	"github.com/lagcraft/statusboard/internal/testutil"
)

// testServer wires a router over a fresh in-memory app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Store:       app.Store,
		WSHandler:   app.WSHandler,
		StorageType: app.StorageType,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) seedTeam(t *testing.T, name, prefix string) *model.Team {
	t.Helper()
	team, err := ts.app.Store.CreateTeam(context.Background(), model.InsertTeam{
		Name:   name,
		Prefix: prefix,
		Color:  "#FF0000",
	})
	require.NoError(t, err)
	return team
}

func (ts *testServer) seedPlayer(t *testing.T, name string, teamID *int, online bool) *model.Player {
	t.Helper()
	player, err := ts.app.Store.CreatePlayer(context.Background(), model.InsertPlayer{
		Name:     name,
		TeamID:   teamID,
		IsOnline: online,
	})
	require.NoError(t, err)
	return player
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	var health response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "memory", health.Storage)
}

func TestListTeamsEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/teams")
	assert.Equal(t, http.StatusOK, rr.Code)
	// Empty lists serialize as [], never null
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestListTeams(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTeam(t, "Red", "RED")
	ts.seedTeam(t, "Blue", "BLU")

	rr := ts.get("/api/teams")
	assert.Equal(t, http.StatusOK, rr.Code)

	var teams []response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Red", teams[0].Name)
	assert.Equal(t, "Blue", teams[1].Name)
}

func TestGetTeam(t *testing.T) {
	ts := newTestServer(t)
	team := ts.seedTeam(t, "Red", "RED")

	rr := ts.get("/api/teams/1")
	assert.Equal(t, http.StatusOK, rr.Code)

	var got response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, team.ID, got.ID)
	assert.Equal(t, "RED", got.Prefix)
}

func TestGetTeamNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/teams/99")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TEAM_NOT_FOUND")
}

func TestListTeamPlayers(t *testing.T) {
	ts := newTestServer(t)
	team := ts.seedTeam(t, "Red", "RED")
	ts.seedPlayer(t, "Steve", &team.ID, true)
	ts.seedPlayer(t, "Alex", nil, false)

	rr := ts.get("/api/teams/1/players")
	assert.Equal(t, http.StatusOK, rr.Code)

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Steve", players[0].Name)
}

func TestListTeamPlayersUnknownTeam(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/teams/42/players")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListOnlinePlayers(t *testing.T) {
	ts := newTestServer(t)
	ts.seedPlayer(t, "Steve", nil, true)
	ts.seedPlayer(t, "Alex", nil, false)

	rr := ts.get("/api/players/online")
	assert.Equal(t, http.StatusOK, rr.Code)

	var players []response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Steve", players[0].Name)
	assert.True(t, players[0].IsOnline)
}

func TestListEventsNewestFirst(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := ts.app.Store.CreateEvent(ctx, model.InsertServerEvent{
			Type:    model.EventPvP,
			Content: content,
		})
		require.NoError(t, err)
		ts.app.MockClock.Advance(time.Second)
	}

	rr := ts.get("/api/events?limit=2")
	assert.Equal(t, http.StatusOK, rr.Code)

	var events []response.ServerEvent
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Content)
	assert.Equal(t, "second", events[1].Content)
}

func TestListEventsInvalidLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/events?limit=banana")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")

	rr = ts.get("/api/events?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListChat(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.app.Store.CreateChatMessage(ctx, model.InsertChatMessage{
		PlayerName: "Steve",
		Message:    "hello",
	})
	require.NoError(t, err)

	rr := ts.get("/api/chat")
	assert.Equal(t, http.StatusOK, rr.Code)

	var messages []response.ChatMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Message)
}

func TestListAlliances(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	red := ts.seedTeam(t, "Red", "RED")
	blue := ts.seedTeam(t, "Blue", "BLU")
	_, err := ts.app.Store.CreateAlliance(ctx, model.InsertAlliance{
		Team1ID: red.ID,
		Team2ID: blue.ID,
	})
	require.NoError(t, err)

	rr := ts.get("/api/alliances")
	assert.Equal(t, http.StatusOK, rr.Code)

	var alliances []response.Alliance
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alliances))
	require.Len(t, alliances, 1)
	assert.Equal(t, red.ID, alliances[0].Team1ID)
	assert.Equal(t, blue.ID, alliances[0].Team2ID)
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.get("/api/bogus")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
