package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

// NewGardenCommand creates the garden command with subcommands
func NewGardenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garden",
		Short: "Plant and harvest growables",
		Long: `Plant items from the inventory and harvest planted growables.

Planting consumes one unit of a plantable item. Harvesting removes the growable
and applies the reward its catalog entry defines, or the fallback currency
payout when none is defined.

Examples:
  sanctuary garden plant --item sunflower_seed
  sanctuary garden harvest 6f1c2d3e-...`,
	}

	cmd.AddCommand(newGardenPlantCommand())
	cmd.AddCommand(newGardenHarvestCommand())

	return cmd
}

func newGardenPlantCommand() *cobra.Command {
	var itemID string

	cmd := &cobra.Command{
		Use:   "plant",
		Short: "Plant one unit of an item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemID == "" {
				return fmt.Errorf("--item flag is required")
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.PlantCommand{PlayerID: id, DefinitionID: itemID})
				if err != nil {
					return fmt.Errorf("failed to plant %s: %w", itemID, err)
				}
				result := response.(*commands.PlantResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Planted %s\n", result.Growable.DefinitionID)
				fmt.Fprintf(out, "  Growable ID: %s\n", result.Growable.ID)
				fmt.Fprintf(out, "  Kind:        %s\n", result.Growable.Kind)
				fmt.Fprintf(out, "  Remaining:   %d\n", result.RemainingQuantity)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Catalog item ID to plant (required)")

	return cmd
}

func newGardenHarvestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest <growable-id>",
		Short: "Harvest a planted growable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			growableID := args[0]

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.HarvestCommand{PlayerID: id, GrowableID: growableID})
				if err != nil {
					return fmt.Errorf("failed to harvest %s: %w", growableID, err)
				}
				result := response.(*commands.HarvestResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Harvested %s (%s)\n", result.Outcome.DefinitionID, result.Outcome.Kind)
				if result.Outcome.UsedFallback {
					fmt.Fprintf(out, "  Reward:   %s (fallback)\n", result.Outcome.Reward)
				} else {
					fmt.Fprintf(out, "  Reward:   %s\n", result.Outcome.Reward)
				}
				fmt.Fprintf(out, "  Currency: %s\n", formatCurrency(result.Currency))
				return nil
			})
		},
	}
}
