package model

import "time"

// Alliance is a symmetric relation between two teams: the pair (A,B) is
// the same alliance as (B,A), and at most one alliance exists per
// unordered pair.
type Alliance struct {
	ID        int       `json:"id"`
	Team1ID   int       `json:"team1Id"`
	Team2ID   int       `json:"team2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Matches reports whether this alliance joins the given pair of teams,
// in either order.
func (a *Alliance) Matches(team1ID, team2ID int) bool {
	return (a.Team1ID == team1ID && a.Team2ID == team2ID) ||
		(a.Team1ID == team2ID && a.Team2ID == team1ID)
}

// InsertAlliance carries the producer-settable fields of an Alliance.
// The id and createdAt timestamp are assigned by the store.
type InsertAlliance struct {
	Team1ID int `json:"team1Id"`
	Team2ID int `json:"team2Id"`
}
