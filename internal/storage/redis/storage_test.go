package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/lagcraft/statusboard/internal/dependencies/mocks"
	"github.com/lagcraft/statusboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = NewWithClient(client, DefaultConfig(), s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) createTeam(name, prefix string) *model.Team {
	team, err := s.storage.CreateTeam(s.ctx, model.InsertTeam{Name: name, Prefix: prefix, Color: "#FF0000"})
	s.Require().NoError(err)
	return team
}

// User tests

func (s *StorageSuite) TestCreateAndGetUserByUsername() {
	user, err := s.storage.CreateUser(s.ctx, model.InsertUser{Username: "admin", Password: "hunter2"})
	s.Require().NoError(err)
	s.Equal(1, user.ID)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)

	_, err = s.storage.CreateUser(s.ctx, model.InsertUser{Username: "admin", Password: "other"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

// Team tests

func (s *StorageSuite) TestCreateTeamAssignsSequentialIDs() {
	red := s.createTeam("Red", "RED")
	blue := s.createTeam("Blue", "BLU")
	s.Equal(1, red.ID)
	s.Equal(2, blue.ID)
}

func (s *StorageSuite) TestCreateTeamDuplicateName() {
	s.createTeam("Red", "RED")

	_, err := s.storage.CreateTeam(s.ctx, model.InsertTeam{Name: "Red", Prefix: "RD2", Color: "#AA0000"})
	s.ErrorIs(err, model.ErrTeamNameTaken)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 1)
}

func (s *StorageSuite) TestCreateTeamDuplicatePrefix() {
	s.createTeam("Red", "RED")

	_, err := s.storage.CreateTeam(s.ctx, model.InsertTeam{Name: "Crimson", Prefix: "RED", Color: "#AA0000"})
	s.ErrorIs(err, model.ErrTeamPrefixTaken)
}

func (s *StorageSuite) TestListTeamsOrderedByID() {
	s.createTeam("Red", "RED")
	s.createTeam("Blue", "BLU")
	s.createTeam("Green", "GRN")

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 3)
	s.Equal([]int{1, 2, 3}, []int{teams[0].ID, teams[1].ID, teams[2].ID})
}

func (s *StorageSuite) TestGetTeamByPrefix() {
	team := s.createTeam("Red", "RED")

	retrieved, err := s.storage.GetTeamByPrefix(s.ctx, "RED")
	s.Require().NoError(err)
	s.Equal(team.ID, retrieved.ID)
}

func (s *StorageSuite) TestUpdateTeamRewritesIndexes() {
	team := s.createTeam("Red", "RED")

	name := "Crimson"
	updated, err := s.storage.UpdateTeam(s.ctx, team.ID, model.TeamPatch{Name: &name})
	s.Require().NoError(err)
	s.Equal("Crimson", updated.Name)
	s.Equal("RED", updated.Prefix)

	// Old name index is gone, new one resolves
	s.False(s.mini.Exists(teamNameIndexKey("Red")))
	s.True(s.mini.Exists(teamNameIndexKey("Crimson")))
}

func (s *StorageSuite) TestUpdateTeamNotFound() {
	color := "#CC0000"
	_, err := s.storage.UpdateTeam(s.ctx, 99, model.TeamPatch{Color: &color})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestDeleteTeam() {
	team := s.createTeam("Red", "RED")

	deleted, err := s.storage.DeleteTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.True(deleted)
	s.False(s.mini.Exists(teamPrefixIndexKey("RED")))

	deleted, err = s.storage.DeleteTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

// Player tests

func (s *StorageSuite) TestCreatePlayerStampsLastSeen() {
	player, err := s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Steve"})
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, player.LastSeen)
}

func (s *StorageSuite) TestCreatePlayerUnknownTeam() {
	teamID := 42
	_, err := s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Steve", TeamID: &teamID})
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestUpdatePlayerOnlineStatus() {
	_, err := s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Steve"})
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)

	updated, err := s.storage.UpdatePlayerOnlineStatus(s.ctx, "Steve", true)
	s.Require().NoError(err)
	s.True(updated.IsOnline)
	s.Equal(s.clock.CurrentTime, updated.LastSeen)

	online, err := s.storage.ListOnlinePlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(online, 1)
}

func (s *StorageSuite) TestUpdatePlayerOnlineStatusUnknownName() {
	_, err := s.storage.UpdatePlayerOnlineStatus(s.ctx, "Herobrine", true)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestListPlayersByTeam() {
	team := s.createTeam("Red", "RED")
	_, err := s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Steve", TeamID: &team.ID})
	s.Require().NoError(err)
	_, err = s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Alex"})
	s.Require().NoError(err)

	players, err := s.storage.ListPlayersByTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Steve", players[0].Name)
}

func (s *StorageSuite) TestDeletePlayer() {
	player, err := s.storage.CreatePlayer(s.ctx, model.InsertPlayer{Name: "Steve"})
	s.Require().NoError(err)

	deleted, err := s.storage.DeletePlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.storage.DeletePlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

// Alliance tests

func (s *StorageSuite) TestAlliancePairSymmetry() {
	red := s.createTeam("Red", "RED")
	blue := s.createTeam("Blue", "BLU")

	alliance, err := s.storage.CreateAlliance(s.ctx, model.InsertAlliance{Team1ID: red.ID, Team2ID: blue.ID})
	s.Require().NoError(err)

	forward, err := s.storage.GetAllianceByTeams(s.ctx, red.ID, blue.ID)
	s.Require().NoError(err)
	reverse, err := s.storage.GetAllianceByTeams(s.ctx, blue.ID, red.ID)
	s.Require().NoError(err)
	s.Equal(alliance.ID, forward.ID)
	s.Equal(alliance.ID, reverse.ID)

	_, err = s.storage.CreateAlliance(s.ctx, model.InsertAlliance{Team1ID: blue.ID, Team2ID: red.ID})
	s.ErrorIs(err, model.ErrAllianceExists)
}

func (s *StorageSuite) TestDeleteAllianceByTeams() {
	red := s.createTeam("Red", "RED")
	blue := s.createTeam("Blue", "BLU")

	_, err := s.storage.CreateAlliance(s.ctx, model.InsertAlliance{Team1ID: red.ID, Team2ID: blue.ID})
	s.Require().NoError(err)

	deleted, err := s.storage.DeleteAllianceByTeams(s.ctx, blue.ID, red.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.storage.DeleteAllianceByTeams(s.ctx, red.ID, blue.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

// Feed tests

func (s *StorageSuite) TestListEventsNewestFirstWithLimit() {
	for _, content := range []string{"first", "second", "third"} {
		_, err := s.storage.CreateEvent(s.ctx, model.InsertServerEvent{Type: model.EventPvP, Content: content})
		s.Require().NoError(err)
		s.clock.Advance(time.Second)
	}

	events, err := s.storage.ListEvents(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("third", events[0].Content)
	s.Equal("second", events[1].Content)
}

func (s *StorageSuite) TestListChatMessagesDefaultLimit() {
	for i := 0; i < 60; i++ {
		_, err := s.storage.CreateChatMessage(s.ctx, model.InsertChatMessage{PlayerName: "Steve", Message: "hi"})
		s.Require().NoError(err)
	}

	messages, err := s.storage.ListChatMessages(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(messages, 50)
}

func (s *StorageSuite) TestGetEventNotFound() {
	_, err := s.storage.GetEvent(s.ctx, 99)
	s.ErrorIs(err, model.ErrEventNotFound)
}
