package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

// envelope mirrors the relay wire frame
type envelope struct {
	Type   string          `json:"type"`
	Action string          `json:"action,omitempty"`
	Data   json.RawMessage `json:"data"`
}

func newSendCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "send <type> <action> <data-json>",
		Short: "Send one mutation envelope over the relay",
		Long: `Connect to the relay WebSocket, send a single mutation envelope,
and wait for the broadcast echo that confirms the mutation was applied.

Types: team, player, alliance, event, chat
Actions: create, update, delete (event/chat accept only create)

Examples:
  mcfeed send team create '{"name":"Red","prefix":"RED","color":"#FF0000"}'
  mcfeed send player update '{"name":"Steve","isOnline":true}'
  mcfeed send alliance delete '{"team1Id":1,"team2Id":2}'
  mcfeed send chat create '{"playerName":"Steve","message":"hello"}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, action, data := args[0], args[1], args[2]
			if !json.Valid([]byte(data)) {
				return fmt.Errorf("data is not valid JSON: %s", data)
			}
			return sendEnvelope(envelope{
				Type:   kind,
				Action: action,
				Data:   json.RawMessage(data),
			}, wait)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 5*time.Second, "How long to wait for the broadcast echo")

	return cmd
}

func sendEnvelope(env envelope, wait time.Duration) error {
	wsURL, err := cfg.WSURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// The first frame is always the initial_state snapshot
	if _, _, err := conn.ReadMessage(); err != nil {
		return fmt.Errorf("failed to read initial state: %w", err)
	}

	if err := conn.WriteJSON(env); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}

	// A successful mutation is echoed to every client including us; no
	// echo within the deadline means the relay dropped the message
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("no broadcast received - the relay likely rejected the message")
	}

	out := NewOutput(cfg.Output)
	if cfg.Output == "json" {
		fmt.Println(string(frame))
		return nil
	}

	var echo envelope
	if err := json.Unmarshal(frame, &echo); err != nil {
		return fmt.Errorf("unexpected broadcast frame: %w", err)
	}
	out.PrintMessage(fmt.Sprintf("Applied %s %s", echo.Type, echo.Action))
	return nil
}
