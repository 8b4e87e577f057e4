package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "mcfeed",
		Short: "CLI tool for the status dashboard API and relay",
		Long: `mcfeed is a CLI tool for the Minecraft status dashboard.

It reads the JSON API (teams, players, alliances, events, chat), streams
relay broadcasts, and can send producer mutation envelopes for testing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: MCFEED_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newTeamsCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newAlliancesCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
