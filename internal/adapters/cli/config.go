package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Sanctuary configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SANCTUARY_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default player) are stored in ~/.sanctuary/config.json

Examples:
  sanctuary config show
  sanctuary config set-player --player ash
  sanctuary config set-player --player-id 1
  sanctuary config clear-player`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Sanctuary Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultPlayerID != nil {
				fmt.Fprintf(out, "  Default Player:   ID=%d\n", *userCfg.DefaultPlayerID)
			} else if userCfg.DefaultPlayerName != "" {
				fmt.Fprintf(out, "  Default Player:   Name=%s\n", userCfg.DefaultPlayerName)
			} else {
				fmt.Fprintf(out, "  Default Player:   (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.Type == "postgres":
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nEconomy:")
			fmt.Fprintf(out, "  Hire Cost:        %s\n", formatCurrency(cfg.Economy.HireCost))
			fmt.Fprintf(out, "  Upgrade Base:     %s x level\n", formatCurrency(cfg.Economy.UpgradeBaseCost))
			fmt.Fprintf(out, "  Harvest Fallback: %s\n", formatCurrency(cfg.Economy.HarvestFallbackCurrency))
			fmt.Fprintf(out, "  Expedition Pay:   %s\n", formatCurrency(cfg.Economy.ExpeditionCompletionCurrency))
			fmt.Fprintf(out, "  Starting Balance: %s\n", formatCurrency(cfg.Economy.StartingCurrency))

			fmt.Fprintln(out, "\nCatalog:")
			if cfg.Catalog.Path != "" {
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Catalog.Path)
			} else {
				fmt.Fprintf(out, "  Path:             (built-in)\n")
			}
			fmt.Fprintf(out, "  Strict Members:   %t\n", cfg.Expeditions.StrictMembers)
			fmt.Fprintf(out, "  Known Only:       %t\n", cfg.Expeditions.RequireKnownDefinition)

			fmt.Fprintln(out, "\nDaemon:")
			fmt.Fprintf(out, "  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Fprintf(out, "  Reconcile Every:  %s\n", cfg.Daemon.ReconcileInterval)
			fmt.Fprintf(out, "  Reconcile Rate:   %.1f/s (burst: %d)\n", cfg.Daemon.ReconcileRate, cfg.Daemon.ReconcileBurst)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Address:          %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-player",
		Short: "Set default player",
		Long: `Set the default player to use for commands.

Specify the player using either --player-id or --player flag. The player must
exist in the configured database.

Examples:
  sanctuary config set-player --player-id 1
  sanctuary config set-player --player ash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 && playerName == "" {
				return fmt.Errorf("either --player-id or --player flag is required")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			query := &queries.GetPlayerQuery{Name: playerName}
			if playerID > 0 {
				query = &queries.GetPlayerQuery{PlayerID: &playerID}
			}
			response, err := app.Mediator.Send(context.Background(), query)
			if err != nil {
				return fmt.Errorf("player not found: %w", err)
			}
			p := response.(*queries.GetPlayerResponse).Player

			if err := userConfigHandler.SetDefaultPlayerName(p.Name); err != nil {
				return fmt.Errorf("failed to set default player name: %w", err)
			}
			if err := userConfigHandler.SetDefaultPlayer(p.ID.Value()); err != nil {
				return fmt.Errorf("failed to set default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player set successfully")
			fmt.Fprintf(out, "  Player ID: %d\n", p.ID.Value())
			fmt.Fprintf(out, "  Name:      %s\n", p.Name)
			fmt.Fprintf(out, "\nCommands will now use this player by default.\n")
			fmt.Fprintf(out, "Override with --player-id or --player flags.\n")

			return nil
		},
	}
}

func newConfigClearPlayerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-player",
		Short: "Clear default player setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultPlayer(); err != nil {
				return fmt.Errorf("failed to clear default player: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Default player cleared")
			fmt.Fprintln(out, "\nYou must now specify --player-id or --player for all commands.")

			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	return u.String()
}
