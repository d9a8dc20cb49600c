package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for antenna.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "antenna",
		Short: "Announce new terminal transmissions to Discord",
		Long: `antenna checks the terminal page for newly appended transmissions and
posts each one to a Discord webhook, oldest first, exactly once.

Announced transmissions are stored (SQLite by default, MongoDB optionally)
so repeated runs never announce the same transmission twice.

The webhook URL is a secret: set ANTENNA_DISCORD_WEBHOOK in the environment
or in a .env file in the current directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .antenna in current directory or $XDG_CONFIG_HOME/antenna/config.yaml)")
	cmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
