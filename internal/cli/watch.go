package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream relay broadcasts in real time",
		Long: `Connect to the relay WebSocket and print every frame as it arrives.

The first frame is the initial_state snapshot; every following frame is
a mutation broadcast caused by producer traffic.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRelay(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output frames as JSON lines")

	return cmd
}

func watchRelay(jsonOutput bool) error {
	wsURL, err := cfg.WSURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	// Handle interrupt by closing the connection, which unblocks the
	// read loop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			_ = conn.Close()
		case <-done:
		}
	}()
	defer func() {
		close(done)
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Printf("Connected to %s\n", wsURL)
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		printFrame(frame, jsonOutput)
	}
}

func printFrame(frame []byte, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(string(frame))
		return
	}

	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		fmt.Printf("[%s] unparsable frame: %s\n", time.Now().Format("15:04:05"), string(frame))
		return
	}

	label := env.Type
	if env.Action != "" {
		label += " " + env.Action
	}

	// Truncate payloads for display
	data := strings.ReplaceAll(string(env.Data), "\n", " ")
	if len(data) > 100 {
		data = data[:100] + "..."
	}
	fmt.Printf("[%s] %s: %s\n", time.Now().Format("15:04:05"), label, data)
}
