package model

// Team represents a faction on the Minecraft server.
// Name and prefix are each globally unique.
type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Color  string `json:"color"`
}

// InsertTeam carries the producer-settable fields of a Team
type InsertTeam struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Color  string `json:"color"`
}

// TeamPatch is a partial update to a Team; nil fields are left unchanged
type TeamPatch struct {
	Name   *string `json:"name,omitempty"`
	Prefix *string `json:"prefix,omitempty"`
	Color  *string `json:"color,omitempty"`
}
