package relay

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lagcraft/statusboard/internal/dependencies/mocks"
	"github.com/lagcraft/statusboard/internal/model"
	"github.com/lagcraft/statusboard/internal/storage/memory"
	"github.com/lagcraft/statusboard/internal/testutil"
)

type DispatchSuite struct {
	suite.Suite
	store      *memory.Storage
	dispatcher *Dispatcher
	ctx        context.Context
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}

func (s *DispatchSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.store = memory.New(clk)
	s.dispatcher = NewDispatcher(s.store, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *DispatchSuite) apply(raw string) ([]byte, bool) {
	return s.dispatcher.Apply(s.ctx, []byte(raw))
}

func (s *DispatchSuite) TestTeamCreateBroadcastsEcho() {
	frame, ok := s.apply(`{"type":"team","action":"create","data":{"name":"Red","prefix":"RED","color":"#FF0000"}}`)
	s.Require().True(ok)

	// The broadcast echoes the producer's data, not the stored row
	var env Envelope
	s.Require().NoError(json.Unmarshal(frame, &env))
	s.Equal("team", env.Type)
	s.Equal("create", env.Action)
	s.JSONEq(`{"name":"Red","prefix":"RED","color":"#FF0000"}`, string(env.Data))

	teams, err := s.store.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 1)
	s.Equal(1, teams[0].ID)
	s.Equal("Red", teams[0].Name)
}

func (s *DispatchSuite) TestMalformedJSONDropped() {
	_, ok := s.apply(`{not json`)
	s.False(ok)
}

func (s *DispatchSuite) TestUnknownTypeDropped() {
	_, ok := s.apply(`{"type":"dragon","action":"create","data":{}}`)
	s.False(ok)
}

func (s *DispatchSuite) TestUnknownActionDropped() {
	_, ok := s.apply(`{"type":"team","action":"upsert","data":{"name":"Red","prefix":"RED","color":"#F00"}}`)
	s.False(ok)
}

func (s *DispatchSuite) TestValidationFailureDropped() {
	_, ok := s.apply(`{"type":"team","action":"create","data":{"name":"Red"}}`)
	s.False(ok)

	teams, err := s.store.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *DispatchSuite) TestTeamUpdate() {
	_, ok := s.apply(`{"type":"team","action":"create","data":{"name":"Red","prefix":"RED","color":"#FF0000"}}`)
	s.Require().True(ok)

	frame, ok := s.apply(`{"type":"team","action":"update","data":{"id":1,"name":"Crimson"}}`)
	s.Require().True(ok)
	s.NotNil(frame)

	team, err := s.store.GetTeam(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Crimson", team.Name)
	s.Equal("RED", team.Prefix)
}

func (s *DispatchSuite) TestTeamUpdateMissingID() {
	_, ok := s.apply(`{"type":"team","action":"update","data":{"name":"Crimson"}}`)
	s.False(ok)
}

func (s *DispatchSuite) TestDeleteNonexistentTeamNoBroadcast() {
	_, ok := s.apply(`{"type":"team","action":"delete","data":{"id":99}}`)
	s.False(ok)
}

func (s *DispatchSuite) TestPlayerOnlineShorthand() {
	_, ok := s.apply(`{"type":"player","action":"create","data":{"name":"Steve"}}`)
	s.Require().True(ok)

	_, ok = s.apply(`{"type":"player","action":"update","data":{"name":"Steve","isOnline":"true"}}`)
	s.Require().True(ok)

	player, err := s.store.GetPlayerByName(s.ctx, "Steve")
	s.Require().NoError(err)
	s.True(player.IsOnline)
}

func (s *DispatchSuite) TestPlayerOnlineShorthandUnknownName() {
	_, ok := s.apply(`{"type":"player","action":"update","data":{"name":"Herobrine","isOnline":true}}`)
	s.False(ok)
}

func (s *DispatchSuite) TestPlayerUpdateByID() {
	_, ok := s.apply(`{"type":"player","action":"create","data":{"name":"Steve"}}`)
	s.Require().True(ok)

	_, ok = s.apply(`{"type":"player","action":"update","data":{"id":1,"name":"Steve2"}}`)
	s.Require().True(ok)

	player, err := s.store.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("Steve2", player.Name)
}

func (s *DispatchSuite) TestAllianceLifecycle() {
	_, ok := s.apply(`{"type":"team","action":"create","data":{"name":"Red","prefix":"RED","color":"#F00"}}`)
	s.Require().True(ok)
	_, ok = s.apply(`{"type":"team","action":"create","data":{"name":"Blue","prefix":"BLU","color":"#00F"}}`)
	s.Require().True(ok)

	_, ok = s.apply(`{"type":"alliance","action":"create","data":{"team1Id":1,"team2Id":2}}`)
	s.Require().True(ok)

	// Duplicate in reverse order is dropped
	_, ok = s.apply(`{"type":"alliance","action":"create","data":{"team1Id":2,"team2Id":1}}`)
	s.False(ok)

	// Delete by pair, reverse order
	_, ok = s.apply(`{"type":"alliance","action":"delete","data":{"team1Id":2,"team2Id":1}}`)
	s.True(ok)

	alliances, err := s.store.ListAlliances(s.ctx)
	s.Require().NoError(err)
	s.Empty(alliances)
}

func (s *DispatchSuite) TestEventImplicitCreate() {
	// Events accept an omitted action as create
	_, ok := s.apply(`{"type":"event","data":{"type":"pvp","content":"Steve slew Alex"}}`)
	s.Require().True(ok)

	_, ok = s.apply(`{"type":"event","action":"delete","data":{"id":1}}`)
	s.False(ok)

	events, err := s.store.ListEvents(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.EventPvP, events[0].Type)
}

func (s *DispatchSuite) TestChatCreate() {
	frame, ok := s.apply(`{"type":"chat","action":"create","data":{"playerName":"Steve","message":"hello"}}`)
	s.Require().True(ok)

	var env Envelope
	s.Require().NoError(json.Unmarshal(frame, &env))
	s.Equal("chat", env.Type)

	messages, err := s.store.ListChatMessages(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(messages, 1)
}

func (s *DispatchSuite) TestStringifiedProducerValues() {
	_, ok := s.apply(`{"type":"team","action":"create","data":{"name":"Red","prefix":"RED","color":"#F00"}}`)
	s.Require().True(ok)

	_, ok = s.apply(`{"type":"player","action":"create","data":{"name":"Steve","teamId":"1","isOnline":"true"}}`)
	s.Require().True(ok)

	player, err := s.store.GetPlayerByName(s.ctx, "Steve")
	s.Require().NoError(err)
	s.Require().NotNil(player.TeamID)
	s.Equal(1, *player.TeamID)
	s.True(player.IsOnline)
}
