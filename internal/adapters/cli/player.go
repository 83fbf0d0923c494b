package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/player/commands"
	"github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
		Long: `Register, list, inspect and delete players in the local database.

Examples:
  sanctuary player register --name ash --currency 500 --item wheat=3
  sanctuary player list
  sanctuary player info --player ash
  sanctuary player delete --player-id 1 --yes`,
	}

	cmd.AddCommand(newPlayerRegisterCommand())
	cmd.AddCommand(newPlayerListCommand())
	cmd.AddCommand(newPlayerInfoCommand())
	cmd.AddCommand(newPlayerDeleteCommand())

	return cmd
}

func newPlayerRegisterCommand() *cobra.Command {
	var (
		name      string
		currency  int
		inventory map[string]int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player",
		Long: `Register a new player with an optional starting balance and inventory.

Without --currency the configured economy.starting_currency is used.

Example:
  sanctuary player register --name ash --item sunflower_seed=5 --item oak_sapling=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name flag is required")
			}

			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			command := &commands.RegisterPlayerCommand{
				Name:              name,
				StartingInventory: inventory,
			}
			if cmd.Flags().Changed("currency") {
				command.StartingCurrency = &currency
			}

			response, err := app.Mediator.Send(context.Background(), command)
			if err != nil {
				return fmt.Errorf("failed to register player: %w", err)
			}
			p := response.(*commands.RegisterPlayerResponse).Player

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Player registered successfully")
			fmt.Fprintf(out, "  Name:      %s\n", p.Name)
			fmt.Fprintf(out, "  Player ID: %d\n", p.ID.Value())
			fmt.Fprintf(out, "  Currency:  %s\n", formatCurrency(p.Currency))
			fmt.Fprintf(out, "\nSet as default player with: sanctuary config set-player --player %s\n", p.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().IntVar(&currency, "currency", 0, "Starting currency (default from config)")
	cmd.Flags().StringToIntVar(&inventory, "item", nil, "Starting inventory as item=quantity (repeatable)")

	return cmd
}

func newPlayerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()

			response, err := app.Mediator.Send(context.Background(), &queries.ListPlayersQuery{})
			if err != nil {
				return fmt.Errorf("failed to list players: %w", err)
			}
			players := response.(*queries.ListPlayersResponse).Players

			out := cmd.OutOrStdout()
			if len(players) == 0 {
				fmt.Fprintln(out, "No players registered.")
				fmt.Fprintln(out, "\nRegister a player with: sanctuary player register --name <name>")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tXP\tCREATED")
			fmt.Fprintln(w, "--\t----\t--------\t--\t-------")
			for _, p := range players {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
					p.ID.Value(),
					p.Name,
					formatCurrency(p.Currency),
					p.TotalXP,
					p.CreatedAt.Format("2006-01-02"),
				)
			}
			return w.Flush()
		},
	}
}

func newPlayerInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show a player's summary",
		Long: `Show a short summary of one player.

Use 'sanctuary state' for the full snapshot including growables and expeditions.

Examples:
  sanctuary player info --player-id 1
  sanctuary player info --player ash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &queries.GetPlayerQuery{PlayerID: &id})
				if err != nil {
					return fmt.Errorf("failed to get player: %w", err)
				}
				p := response.(*queries.GetPlayerResponse).Player

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Player Information\n")
				fmt.Fprintf(out, "==================\n\n")
				fmt.Fprintf(out, "Player ID:     %d\n", p.ID.Value())
				fmt.Fprintf(out, "Name:          %s\n", p.Name)
				fmt.Fprintf(out, "Currency:      %s\n", formatCurrency(p.Currency))
				fmt.Fprintf(out, "Total XP:      %d\n", p.TotalXP)
				fmt.Fprintf(out, "Item stacks:   %d\n", p.Inventory.Len())
				fmt.Fprintf(out, "Growables:     %d\n", len(p.Growables))
				fmt.Fprintf(out, "Guild members: %d\n", len(p.GuildMembers))
				fmt.Fprintf(out, "Expeditions:   %d\n", len(p.Expeditions))
				fmt.Fprintf(out, "Registered:    %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newPlayerDeleteCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a player and everything it owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete without --yes")
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				if _, err := app.Mediator.Send(ctx, &commands.DeletePlayerCommand{PlayerID: id}); err != nil {
					return fmt.Errorf("failed to delete player: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Player %d deleted\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deletion")

	return cmd
}
