package memory

import (
	"context"
	"sync"

	"github.com/lagcraft/statusboard/internal/dependencies/clock"
	"github.com/lagcraft/statusboard/internal/model"
	"github.com/lagcraft/statusboard/internal/storage"
)

// Storage is an in-memory implementation of the store interface.
// Ids are assigned from per-kind counters starting at 1.
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	users           map[int]*model.User
	usernameIndex   map[string]int
	teams           map[int]*model.Team
	teamNameIndex   map[string]int
	teamPrefixIndex map[string]int
	players         map[int]*model.Player
	playerNameIndex map[string]int
	alliances       map[int]*model.Alliance

	// Append-only feeds; an entry's id is its slice index + 1
	events       []*model.ServerEvent
	chatMessages []*model.ChatMessage

	userSeq     int
	teamSeq     int
	playerSeq   int
	allianceSeq int
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:           clk,
		users:           make(map[int]*model.User),
		usernameIndex:   make(map[string]int),
		teams:           make(map[int]*model.Team),
		teamNameIndex:   make(map[string]int),
		teamPrefixIndex: make(map[string]int),
		players:         make(map[int]*model.Player),
		playerNameIndex: make(map[string]int),
		alliances:       make(map[int]*model.Alliance),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, insert model.InsertUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usernameIndex[insert.Username]; ok {
		return nil, model.ErrUsernameTaken
	}
	s.userSeq++
	user := &model.User{
		ID:       s.userSeq,
		Username: insert.Username,
		Password: insert.Password,
	}
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.users[id], nil
}

// Team operations

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teams))
	for id := 1; id <= s.teamSeq; id++ {
		if team, ok := s.teams[id]; ok {
			teams = append(teams, team)
		}
	}
	return teams, nil
}

func (s *Storage) GetTeam(ctx context.Context, id int) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) GetTeamByPrefix(ctx context.Context, prefix string) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.teamPrefixIndex[prefix]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return s.teams[id], nil
}

func (s *Storage) CreateTeam(ctx context.Context, insert model.InsertTeam) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teamNameIndex[insert.Name]; ok {
		return nil, model.ErrTeamNameTaken
	}
	if _, ok := s.teamPrefixIndex[insert.Prefix]; ok {
		return nil, model.ErrTeamPrefixTaken
	}
	s.teamSeq++
	team := &model.Team{
		ID:     s.teamSeq,
		Name:   insert.Name,
		Prefix: insert.Prefix,
		Color:  insert.Color,
	}
	s.teams[team.ID] = team
	s.teamNameIndex[team.Name] = team.ID
	s.teamPrefixIndex[team.Prefix] = team.ID
	return team, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, id int, patch model.TeamPatch) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}

	updated := *team
	if patch.Name != nil {
		if other, ok := s.teamNameIndex[*patch.Name]; ok && other != id {
			return nil, model.ErrTeamNameTaken
		}
		updated.Name = *patch.Name
	}
	if patch.Prefix != nil {
		if other, ok := s.teamPrefixIndex[*patch.Prefix]; ok && other != id {
			return nil, model.ErrTeamPrefixTaken
		}
		updated.Prefix = *patch.Prefix
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}

	delete(s.teamNameIndex, team.Name)
	delete(s.teamPrefixIndex, team.Prefix)
	s.teams[id] = &updated
	s.teamNameIndex[updated.Name] = id
	s.teamPrefixIndex[updated.Prefix] = id
	return &updated, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	if !ok {
		return false, nil
	}
	delete(s.teams, id)
	delete(s.teamNameIndex, team.Name)
	delete(s.teamPrefixIndex, team.Prefix)
	return true, nil
}

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for id := 1; id <= s.playerSeq; id++ {
		if player, ok := s.players[id]; ok {
			players = append(players, player)
		}
	}
	return players, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id int) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.playerNameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return s.players[id], nil
}

func (s *Storage) ListPlayersByTeam(ctx context.Context, teamID int) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for id := 1; id <= s.playerSeq; id++ {
		if player, ok := s.players[id]; ok && player.TeamID != nil && *player.TeamID == teamID {
			players = append(players, player)
		}
	}
	return players, nil
}

func (s *Storage) ListOnlinePlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for id := 1; id <= s.playerSeq; id++ {
		if player, ok := s.players[id]; ok && player.IsOnline {
			players = append(players, player)
		}
	}
	return players, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, insert model.InsertPlayer) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playerNameIndex[insert.Name]; ok {
		return nil, model.ErrPlayerNameTaken
	}
	if insert.TeamID != nil {
		if _, ok := s.teams[*insert.TeamID]; !ok {
			return nil, model.ErrTeamNotFound
		}
	}
	s.playerSeq++
	player := &model.Player{
		ID:       s.playerSeq,
		Name:     insert.Name,
		TeamID:   insert.TeamID,
		IsOnline: insert.IsOnline,
		LastSeen: s.clock.Now(),
	}
	s.players[player.ID] = player
	s.playerNameIndex[player.Name] = player.ID
	return player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id int, patch model.PlayerPatch) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}

	updated := *player
	if patch.Name != nil {
		if other, ok := s.playerNameIndex[*patch.Name]; ok && other != id {
			return nil, model.ErrPlayerNameTaken
		}
		updated.Name = *patch.Name
	}
	if patch.TeamID != nil {
		if _, ok := s.teams[*patch.TeamID]; !ok {
			return nil, model.ErrTeamNotFound
		}
		updated.TeamID = patch.TeamID
	}
	if patch.IsOnline != nil && *patch.IsOnline != player.IsOnline {
		updated.IsOnline = *patch.IsOnline
		updated.LastSeen = s.clock.Now()
	}

	delete(s.playerNameIndex, player.Name)
	s.players[id] = &updated
	s.playerNameIndex[updated.Name] = id
	return &updated, nil
}

func (s *Storage) UpdatePlayerOnlineStatus(ctx context.Context, name string, isOnline bool) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.playerNameIndex[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	updated := *s.players[id]
	updated.IsOnline = isOnline
	updated.LastSeen = s.clock.Now()
	s.players[id] = &updated
	return &updated, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return false, nil
	}
	delete(s.players, id)
	delete(s.playerNameIndex, player.Name)
	return true, nil
}

// Alliance operations

func (s *Storage) ListAlliances(ctx context.Context) ([]*model.Alliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alliances := make([]*model.Alliance, 0, len(s.alliances))
	for id := 1; id <= s.allianceSeq; id++ {
		if alliance, ok := s.alliances[id]; ok {
			alliances = append(alliances, alliance)
		}
	}
	return alliances, nil
}

func (s *Storage) GetAlliance(ctx context.Context, id int) (*model.Alliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alliance, ok := s.alliances[id]
	if !ok {
		return nil, model.ErrAllianceNotFound
	}
	return alliance, nil
}

func (s *Storage) GetAllianceByTeams(ctx context.Context, team1ID, team2ID int) (*model.Alliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alliance := s.findAllianceByTeams(team1ID, team2ID)
	if alliance == nil {
		return nil, model.ErrAllianceNotFound
	}
	return alliance, nil
}

// findAllianceByTeams must be called with the lock held
func (s *Storage) findAllianceByTeams(team1ID, team2ID int) *model.Alliance {
	for _, alliance := range s.alliances {
		if alliance.Matches(team1ID, team2ID) {
			return alliance
		}
	}
	return nil
}

func (s *Storage) CreateAlliance(ctx context.Context, insert model.InsertAlliance) (*model.Alliance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[insert.Team1ID]; !ok {
		return nil, model.ErrTeamNotFound
	}
	if _, ok := s.teams[insert.Team2ID]; !ok {
		return nil, model.ErrTeamNotFound
	}
	if s.findAllianceByTeams(insert.Team1ID, insert.Team2ID) != nil {
		return nil, model.ErrAllianceExists
	}
	s.allianceSeq++
	alliance := &model.Alliance{
		ID:        s.allianceSeq,
		Team1ID:   insert.Team1ID,
		Team2ID:   insert.Team2ID,
		CreatedAt: s.clock.Now(),
	}
	s.alliances[alliance.ID] = alliance
	return alliance, nil
}

func (s *Storage) DeleteAlliance(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.alliances[id]; !ok {
		return false, nil
	}
	delete(s.alliances, id)
	return true, nil
}

func (s *Storage) DeleteAllianceByTeams(ctx context.Context, team1ID, team2ID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alliance := s.findAllianceByTeams(team1ID, team2ID)
	if alliance == nil {
		return false, nil
	}
	delete(s.alliances, alliance.ID)
	return true, nil
}

// Server event operations

func (s *Storage) ListEvents(ctx context.Context, limit int) ([]*model.ServerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = storage.DefaultFeedLimit
	}
	if limit > len(s.events) {
		limit = len(s.events)
	}
	events := make([]*model.ServerEvent, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		events = append(events, s.events[i])
	}
	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*model.ServerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.events) {
		return nil, model.ErrEventNotFound
	}
	return s.events[id-1], nil
}

func (s *Storage) CreateEvent(ctx context.Context, insert model.InsertServerEvent) (*model.ServerEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event := &model.ServerEvent{
		ID:        len(s.events) + 1,
		Type:      insert.Type,
		Content:   insert.Content,
		Timestamp: s.clock.Now(),
	}
	s.events = append(s.events, event)
	return event, nil
}

// Chat operations

func (s *Storage) ListChatMessages(ctx context.Context, limit int) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = storage.DefaultFeedLimit
	}
	if limit > len(s.chatMessages) {
		limit = len(s.chatMessages)
	}
	messages := make([]*model.ChatMessage, 0, limit)
	for i := len(s.chatMessages) - 1; i >= len(s.chatMessages)-limit; i-- {
		messages = append(messages, s.chatMessages[i])
	}
	return messages, nil
}

func (s *Storage) GetChatMessage(ctx context.Context, id int) (*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.chatMessages) {
		return nil, model.ErrChatMessageNotFound
	}
	return s.chatMessages[id-1], nil
}

func (s *Storage) CreateChatMessage(ctx context.Context, insert model.InsertChatMessage) (*model.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message := &model.ChatMessage{
		ID:         len(s.chatMessages) + 1,
		PlayerName: insert.PlayerName,
		TeamID:     insert.TeamID,
		Message:    insert.Message,
		Timestamp:  s.clock.Now(),
	}
	s.chatMessages = append(s.chatMessages, message)
	return message, nil
}
