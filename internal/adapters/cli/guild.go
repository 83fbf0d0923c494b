package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

// NewGuildCommand creates the guild command with subcommands
func NewGuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Hire and upgrade guild members",
		Long: `Hire guild members and raise their level.

Hiring costs economy.hire_cost. An upgrade costs economy.upgrade_base_cost
multiplied by the member's current level.

Examples:
  sanctuary guild hire --role SCOUT
  sanctuary guild upgrade <member-id>`,
	}

	cmd.AddCommand(newGuildHireCommand())
	cmd.AddCommand(newGuildUpgradeCommand())

	return cmd
}

func newGuildHireCommand() *cobra.Command {
	var role string

	roles := make([]string, 0, len(guild.AllRoles()))
	for _, r := range guild.AllRoles() {
		roles = append(roles, r.String())
	}

	cmd := &cobra.Command{
		Use:   "hire",
		Short: "Hire a new guild member",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role == "" {
				return fmt.Errorf("--role flag is required")
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.HireGuildMemberCommand{PlayerID: id, Role: role})
				if err != nil {
					return fmt.Errorf("failed to hire %s: %w", role, err)
				}
				result := response.(*commands.HireGuildMemberResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Hired %s\n", result.Member.Name)
				fmt.Fprintf(out, "  Member ID: %s\n", result.Member.ID)
				fmt.Fprintf(out, "  Role:      %s\n", result.Member.Role)
				fmt.Fprintf(out, "  Cost:      %s\n", formatCurrency(result.Cost))
				fmt.Fprintf(out, "  Currency:  %s\n", formatCurrency(result.Currency))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role to hire: "+strings.Join(roles, ", ")+" (required)")

	return cmd
}

func newGuildUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <member-id>",
		Short: "Raise a guild member's level by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID := args[0]

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &commands.UpgradeGuildMemberCommand{PlayerID: id, MemberID: memberID})
				if err != nil {
					return fmt.Errorf("failed to upgrade %s: %w", memberID, err)
				}
				result := response.(*commands.UpgradeGuildMemberResponse)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ %s is now level %d\n", result.Member.Name, result.Member.Level)
				fmt.Fprintf(out, "  Cost:     %s\n", formatCurrency(result.Cost))
				fmt.Fprintf(out, "  Currency: %s\n", formatCurrency(result.Currency))
				return nil
			})
		},
	}
}
