package storage

import (
	"context"

	"github.com/lagcraft/statusboard/internal/model"
)

// DefaultFeedLimit is the number of feed entries returned when no limit
// is given
const DefaultFeedLimit = 50

// Store defines the interface for data persistence.
//
// Create operations assign the next id for the entity kind (monotonically
// increasing, never reused) and stamp creation timestamps where the model
// carries one. Update operations on a missing id return the kind's
// not-found error; callers treat that as a no-op. Delete operations report
// whether a row existed and was removed.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, insert model.InsertUser) (*model.User, error)
	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Team operations
	ListTeams(ctx context.Context) ([]*model.Team, error)
	GetTeam(ctx context.Context, id int) (*model.Team, error)
	GetTeamByPrefix(ctx context.Context, prefix string) (*model.Team, error)
	CreateTeam(ctx context.Context, insert model.InsertTeam) (*model.Team, error)
	UpdateTeam(ctx context.Context, id int, patch model.TeamPatch) (*model.Team, error)
	DeleteTeam(ctx context.Context, id int) (bool, error)

	// Player operations
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	GetPlayer(ctx context.Context, id int) (*model.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*model.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*model.Player, error)
	ListOnlinePlayers(ctx context.Context) ([]*model.Player, error)
	CreatePlayer(ctx context.Context, insert model.InsertPlayer) (*model.Player, error)
	UpdatePlayer(ctx context.Context, id int, patch model.PlayerPatch) (*model.Player, error)
	UpdatePlayerOnlineStatus(ctx context.Context, name string, isOnline bool) (*model.Player, error)
	DeletePlayer(ctx context.Context, id int) (bool, error)

	// Alliance operations. The team pair is an unordered relation:
	// lookups and deletes by pair match regardless of argument order.
	ListAlliances(ctx context.Context) ([]*model.Alliance, error)
	GetAlliance(ctx context.Context, id int) (*model.Alliance, error)
	GetAllianceByTeams(ctx context.Context, team1ID, team2ID int) (*model.Alliance, error)
	CreateAlliance(ctx context.Context, insert model.InsertAlliance) (*model.Alliance, error)
	DeleteAlliance(ctx context.Context, id int) (bool, error)
	DeleteAllianceByTeams(ctx context.Context, team1ID, team2ID int) (bool, error)

	// Server event operations. Events are append-only; ListEvents
	// returns the limit most recent entries, newest first. A limit <= 0
	// means DefaultFeedLimit.
	ListEvents(ctx context.Context, limit int) ([]*model.ServerEvent, error)
	GetEvent(ctx context.Context, id int) (*model.ServerEvent, error)
	CreateEvent(ctx context.Context, insert model.InsertServerEvent) (*model.ServerEvent, error)

	// Chat operations. Messages are append-only; ListChatMessages
	// returns the limit most recent entries, newest first. A limit <= 0
	// means DefaultFeedLimit.
	ListChatMessages(ctx context.Context, limit int) ([]*model.ChatMessage, error)
	GetChatMessage(ctx context.Context, id int) (*model.ChatMessage, error)
	CreateChatMessage(ctx context.Context, insert model.InsertChatMessage) (*model.ChatMessage, error)
}
