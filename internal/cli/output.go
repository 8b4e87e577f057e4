package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []Team:
		o.printTeams(v)
	case Team:
		o.printTeam(v)
	case []Player:
		o.printPlayers(v)
	case Player:
		o.printPlayer(v)
	case []Alliance:
		o.printAlliances(v)
	case []ServerEvent:
		o.printEvents(v)
	case []ChatMessage:
		o.printChat(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Team response type (matches API)
type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Color  string `json:"color"`
}

// Player response type
type Player struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	TeamID   *int      `json:"teamId"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
}

// Alliance response type
type Alliance struct {
	ID        int       `json:"id"`
	Team1ID   int       `json:"team1Id"`
	Team2ID   int       `json:"team2Id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ServerEvent response type
type ServerEvent struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessage response type
type ChatMessage struct {
	ID         int       `json:"id"`
	PlayerName string    `json:"playerName"`
	TeamID     *int      `json:"teamId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (o *Output) printTeam(t Team) {
	fmt.Printf("[%d] %s (%s) %s\n", t.ID, t.Name, t.Prefix, t.Color)
}

func (o *Output) printTeams(teams []Team) {
	if len(teams) == 0 {
		fmt.Println("No teams")
		return
	}
	for _, t := range teams {
		o.printTeam(t)
	}
}

func (o *Output) printPlayer(p Player) {
	status := "offline"
	if p.IsOnline {
		status = "online"
	}
	team := "-"
	if p.TeamID != nil {
		team = fmt.Sprintf("team %d", *p.TeamID)
	}
	fmt.Printf("[%d] %s (%s, %s) last seen %s\n",
		p.ID, p.Name, status, team, p.LastSeen.Format(time.RFC3339))
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	for _, p := range players {
		o.printPlayer(p)
	}
}

func (o *Output) printAlliances(alliances []Alliance) {
	if len(alliances) == 0 {
		fmt.Println("No alliances")
		return
	}
	for _, a := range alliances {
		fmt.Printf("[%d] team %d <-> team %d (since %s)\n",
			a.ID, a.Team1ID, a.Team2ID, a.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printEvents(events []ServerEvent) {
	if len(events) == 0 {
		fmt.Println("No events")
		return
	}
	for _, e := range events {
		fmt.Printf("[%s] %s: %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Content)
	}
}

func (o *Output) printChat(messages []ChatMessage) {
	if len(messages) == 0 {
		fmt.Println("No chat messages")
		return
	}
	for _, m := range messages {
		fmt.Printf("[%s] <%s> %s\n", m.Timestamp.Format("15:04:05"), m.PlayerName, m.Message)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Storage: %s\n", h.Storage)
}
