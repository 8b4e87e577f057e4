package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTeamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams [id]",
		Short: "List teams, or show one team by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("team id must be an integer: %q", args[0])
				}
				var team Team
				if err := client.Get(fmt.Sprintf("/api/teams/%d", id), &team); err != nil {
					return err
				}
				out.Print(team)
				return nil
			}

			var teams []Team
			if err := client.Get("/api/teams", &teams); err != nil {
				return err
			}
			out.Print(teams)
			return nil
		},
	}

	return cmd
}

func newPlayersCmd() *cobra.Command {
	var online bool
	var teamID int

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/players"
			if online {
				path = "/api/players/online"
			}
			if teamID > 0 {
				path = fmt.Sprintf("/api/teams/%d/players", teamID)
			}

			var players []Player
			if err := client.Get(path, &players); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(players)
			return nil
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "Only show players currently online")
	cmd.Flags().IntVar(&teamID, "team", 0, "Only show players on the given team id")

	return cmd
}

func newAlliancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alliances",
		Short: "List alliances",
		RunE: func(cmd *cobra.Command, args []string) error {
			var alliances []Alliance
			if err := client.Get("/api/alliances", &alliances); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(alliances)
			return nil
		},
	}
}

func newEventsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the live event feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/events"
			if limit > 0 {
				path = fmt.Sprintf("/api/events?limit=%d", limit)
			}

			var events []ServerEvent
			if err := client.Get(path, &events); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(events)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of events to fetch")

	return cmd
}

func newChatCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Show the chat log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/chat"
			if limit > 0 {
				path = fmt.Sprintf("/api/chat?limit=%d", limit)
			}

			var messages []ChatMessage
			if err := client.Get(path, &messages); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(messages)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of messages to fetch")

	return cmd
}
