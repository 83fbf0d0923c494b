package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	playerID   int
	playerName string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sanctuary",
		Short: "Sanctuary CLI - Tend your garden, guild and expeditions",
		Long: `Sanctuary CLI runs the progression engine against the configured database.

Each command loads one player, applies a single operation atomically and
prints the outcome. The daemon settles finished expeditions in the background;
'expedition reconcile' does the same on demand.

Examples:
  sanctuary player register --name ash
  sanctuary garden plant --item wheat
  sanctuary garden harvest <growable-id>
  sanctuary guild hire --role SCOUT
  sanctuary expedition launch --expedition meadow_survey --member <member-id>
  sanctuary state
  sanctuary ledger list --limit 20`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&playerID, "player-id", 0,
		"Player ID (required if player name not specified)")
	rootCmd.PersistentFlags().StringVar(&playerName, "player", "",
		"Player name (alternative to player-id)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewGardenCommand())
	rootCmd.AddCommand(NewGuildCommand())
	rootCmd.AddCommand(NewExpeditionCommand())
	rootCmd.AddCommand(NewStateCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewCatalogCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
