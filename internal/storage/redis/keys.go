package redis

import "fmt"

// Key prefix for all dashboard data
const keyPrefix = "statusboard"

// Key generation functions for each entity kind

// seqKey returns the Redis key holding the id sequence for a kind
func seqKey(kind string) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, kind)
}

// userKey returns the Redis key for a User row
func userKey(id int) string {
	return fmt.Sprintf("%s:user:%d", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// teamKey returns the Redis key for a Team row
func teamKey(id int) string {
	return fmt.Sprintf("%s:team:%d", keyPrefix, id)
}

// teamsIndexKey returns the Redis key for the SET of all team ids
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

// teamNameIndexKey returns the Redis key for the name -> team id index
func teamNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:team_name:%s", keyPrefix, name)
}

// teamPrefixIndexKey returns the Redis key for the prefix -> team id index
func teamPrefixIndexKey(prefix string) string {
	return fmt.Sprintf("%s:idx:team_prefix:%s", keyPrefix, prefix)
}

// playerKey returns the Redis key for a Player row
func playerKey(id int) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// playerNameIndexKey returns the Redis key for the name -> player id index
func playerNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:player_name:%s", keyPrefix, name)
}

// allianceKey returns the Redis key for an Alliance row
func allianceKey(id int) string {
	return fmt.Sprintf("%s:alliance:%d", keyPrefix, id)
}

// alliancesIndexKey returns the Redis key for the SET of all alliance ids
func alliancesIndexKey() string {
	return fmt.Sprintf("%s:idx:alliances", keyPrefix)
}

// alliancePairIndexKey returns the Redis key for the team pair -> alliance
// id index. The pair is normalized so that (A,B) and (B,A) map to the same
// key.
func alliancePairIndexKey(team1ID, team2ID int) string {
	if team2ID < team1ID {
		team1ID, team2ID = team2ID, team1ID
	}
	return fmt.Sprintf("%s:idx:alliance_pair:%d:%d", keyPrefix, team1ID, team2ID)
}

// eventKey returns the Redis key for a ServerEvent row
func eventKey(id int) string {
	return fmt.Sprintf("%s:event:%d", keyPrefix, id)
}

// eventTimelineKey returns the Redis key for the ZSET of event ids,
// scored by id so that newest-first reads are a reverse range
func eventTimelineKey() string {
	return fmt.Sprintf("%s:idx:events", keyPrefix)
}

// chatKey returns the Redis key for a ChatMessage row
func chatKey(id int) string {
	return fmt.Sprintf("%s:chat:%d", keyPrefix, id)
}

// chatTimelineKey returns the Redis key for the ZSET of chat message ids
func chatTimelineKey() string {
	return fmt.Sprintf("%s:idx:chat", keyPrefix)
}
