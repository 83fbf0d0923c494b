package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

// NewExpeditionCommand creates the expedition command with subcommands
func NewExpeditionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expedition",
		Short: "Launch and settle expeditions",
		Long: `Send guild members on expeditions and settle the ones that have finished.

Members that are unknown or already away are skipped unless
expeditions.strict_members is set. Finished expeditions pay out when they are
reconciled, either here or by the daemon.

Examples:
  sanctuary expedition launch --expedition meadow_survey --member <id> --member <id>
  sanctuary expedition reconcile`,
	}

	cmd.AddCommand(newExpeditionLaunchCommand())
	cmd.AddCommand(newExpeditionReconcileCommand())

	return cmd
}

func newExpeditionLaunchCommand() *cobra.Command {
	var (
		definitionID string
		memberIDs    []string
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch an expedition with a party of members",
		RunE: func(cmd *cobra.Command, args []string) error {
			if definitionID == "" {
				return fmt.Errorf("--expedition flag is required")
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.LaunchExpeditionCommand{
					PlayerID:     id,
					DefinitionID: definitionID,
					MemberIDs:    memberIDs,
				})
				if err != nil {
					return fmt.Errorf("failed to launch %s: %w", definitionID, err)
				}
				result := response.(*commands.LaunchExpeditionResponse)
				e := result.Expedition

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Launched %s\n", e.DefinitionID)
				fmt.Fprintf(out, "  Expedition ID: %s\n", e.ID)
				fmt.Fprintf(out, "  Party:         %s\n", strings.Join(e.MemberIDs, ", "))
				fmt.Fprintf(out, "  Returns:       %s\n", e.EndTime.Format("2006-01-02 15:04:05"))
				if len(result.Skipped) > 0 {
					fmt.Fprintf(out, "  Skipped:       %s\n", strings.Join(result.Skipped, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&definitionID, "expedition", "", "Catalog expedition ID (required)")
	cmd.Flags().StringSliceVar(&memberIDs, "member", nil, "Guild member ID (repeatable)")

	return cmd
}

func newExpeditionReconcileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Settle every finished expedition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.ReconcileExpeditionsCommand{PlayerID: id})
				if err != nil {
					return fmt.Errorf("failed to reconcile expeditions: %w", err)
				}
				result := response.(*commands.ReconcileExpeditionsResponse)

				out := cmd.OutOrStdout()
				if len(result.Result.Settled) == 0 {
					fmt.Fprintln(out, "No finished expeditions.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "EXPEDITION\tDEFINITION\tMEMBERS\tXP\tCURRENCY")
				fmt.Fprintln(w, "----------\t----------\t-------\t--\t--------")
				for _, s := range result.Result.Settled {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
						s.ExpeditionID,
						s.DefinitionID,
						len(s.MemberIDs),
						s.XPAwarded,
						formatAmount(s.CurrencyAwarded),
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintf(out, "\nCurrency: %s  Total XP: %d\n", formatCurrency(result.Currency), result.TotalXP)
				return nil
			})
		},
	}
}
