package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lagcraft/statusboard/internal/dependencies/clock"
	"github.com/lagcraft/statusboard/internal/model"
	"github.com/lagcraft/statusboard/internal/storage"
)

// Storage is a Redis-backed implementation of the store interface.
// Rows are JSON values keyed by id; uniqueness constraints are index keys
// and the append-only feeds are id-scored sorted sets.
type Storage struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// nextID increments and returns the id sequence for an entity kind
func (s *Storage) nextID(ctx context.Context, kind string) (int, error) {
	id, err := s.client.Incr(ctx, seqKey(kind)).Result()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// getRow loads and unmarshals a JSON row, mapping redis.Nil to notFound
func (s *Storage) getRow(ctx context.Context, key string, notFound error, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// lookupID resolves an index key to an id, mapping redis.Nil to notFound
func (s *Storage) lookupID(ctx context.Context, key string, notFound error) (int, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, notFound
		}
		return 0, err
	}
	return strconv.Atoi(val)
}

// indexTaken reports whether an index key exists and points at a
// different id than the one given (0 means any existing entry counts)
func (s *Storage) indexTaken(ctx context.Context, key string, selfID int) (bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return false, err
	}
	return id != selfID, nil
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, insert model.InsertUser) (*model.User, error) {
	taken, err := s.indexTaken(ctx, usernameIndexKey(insert.Username), 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrUsernameTaken
	}

	id, err := s.nextID(ctx, "user")
	if err != nil {
		return nil, err
	}

	user := &model.User{ID: id, Username: insert.Username, Password: insert.Password}
	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(id), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), strconv.Itoa(id), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	if err := s.getRow(ctx, userKey(id), model.ErrUserNotFound, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.lookupID(ctx, usernameIndexKey(username), model.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// Team operations

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	keys, err := s.memberRowKeys(ctx, teamsIndexKey(), teamKey)
	if err != nil {
		return nil, err
	}
	teams := make([]*model.Team, 0, len(keys))
	if err := s.fetchRows(ctx, keys, func(data []byte) error {
		var team model.Team
		if err := json.Unmarshal(data, &team); err != nil {
			return err
		}
		teams = append(teams, &team)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (s *Storage) GetTeam(ctx context.Context, id int) (*model.Team, error) {
	var team model.Team
	if err := s.getRow(ctx, teamKey(id), model.ErrTeamNotFound, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) GetTeamByPrefix(ctx context.Context, prefix string) (*model.Team, error) {
	id, err := s.lookupID(ctx, teamPrefixIndexKey(prefix), model.ErrTeamNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetTeam(ctx, id)
}

func (s *Storage) CreateTeam(ctx context.Context, insert model.InsertTeam) (*model.Team, error) {
	if taken, err := s.indexTaken(ctx, teamNameIndexKey(insert.Name), 0); err != nil {
		return nil, err
	} else if taken {
		return nil, model.ErrTeamNameTaken
	}
	if taken, err := s.indexTaken(ctx, teamPrefixIndexKey(insert.Prefix), 0); err != nil {
		return nil, err
	} else if taken {
		return nil, model.ErrTeamPrefixTaken
	}

	id, err := s.nextID(ctx, "team")
	if err != nil {
		return nil, err
	}

	team := &model.Team{ID: id, Name: insert.Name, Prefix: insert.Prefix, Color: insert.Color}
	data, err := json.Marshal(team)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamKey(id), data, 0)
	pipe.Set(ctx, teamNameIndexKey(team.Name), strconv.Itoa(id), 0)
	pipe.Set(ctx, teamPrefixIndexKey(team.Prefix), strconv.Itoa(id), 0)
	pipe.SAdd(ctx, teamsIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, id int, patch model.TeamPatch) (*model.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *team
	if patch.Name != nil {
		if taken, err := s.indexTaken(ctx, teamNameIndexKey(*patch.Name), id); err != nil {
			return nil, err
		} else if taken {
			return nil, model.ErrTeamNameTaken
		}
		updated.Name = *patch.Name
	}
	if patch.Prefix != nil {
		if taken, err := s.indexTaken(ctx, teamPrefixIndexKey(*patch.Prefix), id); err != nil {
			return nil, err
		} else if taken {
			return nil, model.ErrTeamPrefixTaken
		}
		updated.Prefix = *patch.Prefix
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}

	data, err := json.Marshal(&updated)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	if updated.Name != team.Name {
		pipe.Del(ctx, teamNameIndexKey(team.Name))
		pipe.Set(ctx, teamNameIndexKey(updated.Name), strconv.Itoa(id), 0)
	}
	if updated.Prefix != team.Prefix {
		pipe.Del(ctx, teamPrefixIndexKey(team.Prefix))
		pipe.Set(ctx, teamPrefixIndexKey(updated.Prefix), strconv.Itoa(id), 0)
	}
	pipe.Set(ctx, teamKey(id), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id int) (bool, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, teamKey(id))
	pipe.Del(ctx, teamNameIndexKey(team.Name))
	pipe.Del(ctx, teamPrefixIndexKey(team.Prefix))
	pipe.SRem(ctx, teamsIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.memberRowKeys(ctx, playersIndexKey(), playerKey)
	if err != nil {
		return nil, err
	}
	players := make([]*model.Player, 0, len(keys))
	if err := s.fetchRows(ctx, keys, func(data []byte) error {
		var player model.Player
		if err := json.Unmarshal(data, &player); err != nil {
			return err
		}
		players = append(players, &player)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id int) (*model.Player, error) {
	var player model.Player
	if err := s.getRow(ctx, playerKey(id), model.ErrPlayerNotFound, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayerByName(ctx context.Context, name string) (*model.Player, error) {
	id, err := s.lookupID(ctx, playerNameIndexKey(name), model.ErrPlayerNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, id)
}

func (s *Storage) ListPlayersByTeam(ctx context.Context, teamID int) ([]*model.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*model.Player
	for _, player := range players {
		if player.TeamID != nil && *player.TeamID == teamID {
			matched = append(matched, player)
		}
	}
	return matched, nil
}

func (s *Storage) ListOnlinePlayers(ctx context.Context) ([]*model.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	var online []*model.Player
	for _, player := range players {
		if player.IsOnline {
			online = append(online, player)
		}
	}
	return online, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, insert model.InsertPlayer) (*model.Player, error) {
	if taken, err := s.indexTaken(ctx, playerNameIndexKey(insert.Name), 0); err != nil {
		return nil, err
	} else if taken {
		return nil, model.ErrPlayerNameTaken
	}
	if insert.TeamID != nil {
		if err := s.teamExists(ctx, *insert.TeamID); err != nil {
			return nil, err
		}
	}

	id, err := s.nextID(ctx, "player")
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		ID:       id,
		Name:     insert.Name,
		TeamID:   insert.TeamID,
		IsOnline: insert.IsOnline,
		LastSeen: s.clock.Now(),
	}
	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(id), data, 0)
	pipe.Set(ctx, playerNameIndexKey(player.Name), strconv.Itoa(id), 0)
	pipe.SAdd(ctx, playersIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id int, patch model.PlayerPatch) (*model.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *player
	if patch.Name != nil {
		if taken, err := s.indexTaken(ctx, playerNameIndexKey(*patch.Name), id); err != nil {
			return nil, err
		} else if taken {
			return nil, model.ErrPlayerNameTaken
		}
		updated.Name = *patch.Name
	}
	if patch.TeamID != nil {
		if err := s.teamExists(ctx, *patch.TeamID); err != nil {
			return nil, err
		}
		updated.TeamID = patch.TeamID
	}
	if patch.IsOnline != nil && *patch.IsOnline != player.IsOnline {
		updated.IsOnline = *patch.IsOnline
		updated.LastSeen = s.clock.Now()
	}

	data, err := json.Marshal(&updated)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	if updated.Name != player.Name {
		pipe.Del(ctx, playerNameIndexKey(player.Name))
		pipe.Set(ctx, playerNameIndexKey(updated.Name), strconv.Itoa(id), 0)
	}
	pipe.Set(ctx, playerKey(id), data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Storage) UpdatePlayerOnlineStatus(ctx context.Context, name string, isOnline bool) (*model.Player, error) {
	player, err := s.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, err
	}

	player.IsOnline = isOnline
	player.LastSeen = s.clock.Now()

	data, err := json.Marshal(player)
	if err != nil {
		return nil, err
	}
	if err := s.client.Set(ctx, playerKey(player.ID), data, 0).Err(); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id int) (bool, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return false, nil
		}
		return false, err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.Del(ctx, playerNameIndexKey(player.Name))
	pipe.SRem(ctx, playersIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// teamExists maps a missing team row to ErrTeamNotFound
func (s *Storage) teamExists(ctx context.Context, id int) error {
	exists, err := s.client.Exists(ctx, teamKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrTeamNotFound
	}
	return nil
}

// Alliance operations

func (s *Storage) ListAlliances(ctx context.Context) ([]*model.Alliance, error) {
	keys, err := s.memberRowKeys(ctx, alliancesIndexKey(), allianceKey)
	if err != nil {
		return nil, err
	}
	alliances := make([]*model.Alliance, 0, len(keys))
	if err := s.fetchRows(ctx, keys, func(data []byte) error {
		var alliance model.Alliance
		if err := json.Unmarshal(data, &alliance); err != nil {
			return err
		}
		alliances = append(alliances, &alliance)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Slice(alliances, func(i, j int) bool { return alliances[i].ID < alliances[j].ID })
	return alliances, nil
}

func (s *Storage) GetAlliance(ctx context.Context, id int) (*model.Alliance, error) {
	var alliance model.Alliance
	if err := s.getRow(ctx, allianceKey(id), model.ErrAllianceNotFound, &alliance); err != nil {
		return nil, err
	}
	return &alliance, nil
}

func (s *Storage) GetAllianceByTeams(ctx context.Context, team1ID, team2ID int) (*model.Alliance, error) {
	id, err := s.lookupID(ctx, alliancePairIndexKey(team1ID, team2ID), model.ErrAllianceNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetAlliance(ctx, id)
}

func (s *Storage) CreateAlliance(ctx context.Context, insert model.InsertAlliance) (*model.Alliance, error) {
	if err := s.teamExists(ctx, insert.Team1ID); err != nil {
		return nil, err
	}
	if err := s.teamExists(ctx, insert.Team2ID); err != nil {
		return nil, err
	}

	pairKey := alliancePairIndexKey(insert.Team1ID, insert.Team2ID)
	if taken, err := s.indexTaken(ctx, pairKey, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, model.ErrAllianceExists
	}

	id, err := s.nextID(ctx, "alliance")
	if err != nil {
		return nil, err
	}

	alliance := &model.Alliance{
		ID:        id,
		Team1ID:   insert.Team1ID,
		Team2ID:   insert.Team2ID,
		CreatedAt: s.clock.Now(),
	}
	data, err := json.Marshal(alliance)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, allianceKey(id), data, 0)
	pipe.Set(ctx, pairKey, strconv.Itoa(id), 0)
	pipe.SAdd(ctx, alliancesIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return alliance, nil
}

func (s *Storage) DeleteAlliance(ctx context.Context, id int) (bool, error) {
	alliance, err := s.GetAlliance(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAllianceNotFound) {
			return false, nil
		}
		return false, err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, allianceKey(id))
	pipe.Del(ctx, alliancePairIndexKey(alliance.Team1ID, alliance.Team2ID))
	pipe.SRem(ctx, alliancesIndexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) DeleteAllianceByTeams(ctx context.Context, team1ID, team2ID int) (bool, error) {
	id, err := s.lookupID(ctx, alliancePairIndexKey(team1ID, team2ID), model.ErrAllianceNotFound)
	if err != nil {
		if errors.Is(err, model.ErrAllianceNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.DeleteAlliance(ctx, id)
}

// Server event operations

func (s *Storage) ListEvents(ctx context.Context, limit int) ([]*model.ServerEvent, error) {
	ids, err := s.timelineIDs(ctx, eventTimelineKey(), limit)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = eventKey(id)
	}
	events := make([]*model.ServerEvent, 0, len(keys))
	if err := s.fetchRows(ctx, keys, func(data []byte) error {
		var event model.ServerEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return err
		}
		events = append(events, &event)
		return nil
	}); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int) (*model.ServerEvent, error) {
	var event model.ServerEvent
	if err := s.getRow(ctx, eventKey(id), model.ErrEventNotFound, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Storage) CreateEvent(ctx context.Context, insert model.InsertServerEvent) (*model.ServerEvent, error) {
	id, err := s.nextID(ctx, "event")
	if err != nil {
		return nil, err
	}

	event := &model.ServerEvent{
		ID:        id,
		Type:      insert.Type,
		Content:   insert.Content,
		Timestamp: s.clock.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, eventKey(id), data, 0)
	pipe.ZAdd(ctx, eventTimelineKey(), redis.Z{Score: float64(id), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

// Chat operations

func (s *Storage) ListChatMessages(ctx context.Context, limit int) ([]*model.ChatMessage, error) {
	ids, err := s.timelineIDs(ctx, chatTimelineKey(), limit)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = chatKey(id)
	}
	messages := make([]*model.ChatMessage, 0, len(keys))
	if err := s.fetchRows(ctx, keys, func(data []byte) error {
		var message model.ChatMessage
		if err := json.Unmarshal(data, &message); err != nil {
			return err
		}
		messages = append(messages, &message)
		return nil
	}); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Storage) GetChatMessage(ctx context.Context, id int) (*model.ChatMessage, error) {
	var message model.ChatMessage
	if err := s.getRow(ctx, chatKey(id), model.ErrChatMessageNotFound, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *Storage) CreateChatMessage(ctx context.Context, insert model.InsertChatMessage) (*model.ChatMessage, error) {
	id, err := s.nextID(ctx, "chat")
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ID:         id,
		PlayerName: insert.PlayerName,
		TeamID:     insert.TeamID,
		Message:    insert.Message,
		Timestamp:  s.clock.Now(),
	}
	data, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, chatKey(id), data, 0)
	pipe.ZAdd(ctx, chatTimelineKey(), redis.Z{Score: float64(id), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return message, nil
}

// memberRowKeys resolves a SET of ids into row keys
func (s *Storage) memberRowKeys(ctx context.Context, indexKey string, rowKey func(int) string) ([]string, error) {
	members, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		keys = append(keys, rowKey(id))
	}
	return keys, nil
}

// timelineIDs returns the limit most recent ids from an id-scored ZSET,
// newest first
func (s *Storage) timelineIDs(ctx context.Context, key string, limit int) ([]int, error) {
	if limit <= 0 {
		limit = storage.DefaultFeedLimit
	}
	members, err := s.client.ZRevRange(ctx, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchRows MGETs the given keys and invokes decode for each present value
func (s *Storage) fetchRows(ctx context.Context, keys []string, decode func([]byte) error) error {
	if len(keys) == 0 {
		return nil
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return err
	}
	for _, val := range values {
		if val == nil {
			continue
		}
		if err := decode([]byte(val.(string))); err != nil {
			continue // Skip invalid data
		}
	}
	return nil
}
