package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/skills"
	"github.com/andrescamacho/sanctuary-go/internal/application/progression/queries"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

// NewStateCommand creates the state command
func NewStateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the full player snapshot",
		Long: `Show currency, experience, inventory, growables, guild members and
active expeditions for one player.

Example:
  sanctuary state --player ash`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				response, err := app.Mediator.Send(ctx, &queries.GetPlayerStateQuery{PlayerID: id})
				if err != nil {
					return fmt.Errorf("failed to get state: %w", err)
				}
				displayState(cmd, app.Skills, response.(*queries.GetPlayerStateResponse).State)
				return nil
			})
		},
	}
}

func displayState(cmd *cobra.Command, tracker *skills.Tracker, s *queries.PlayerStateDTO) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (player %d)\n", s.Name, s.PlayerID)
	fmt.Fprintf(out, "Currency: %s  Total XP: %d  As of: %s\n",
		formatCurrency(s.Currency), s.TotalXP, s.AsOf.Format("2006-01-02 15:04:05"))

	if len(s.SkillXP) > 0 {
		skillIDs := make([]string, 0, len(s.SkillXP))
		for id := range s.SkillXP {
			skillIDs = append(skillIDs, id)
		}
		sort.Strings(skillIDs)

		fmt.Fprintln(out, "\nSKILLS")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, id := range skillIDs {
			fmt.Fprintf(w, "  %s\tlevel %d\t%d xp\n", id, tracker.Level(s.SkillXP[id]), s.SkillXP[id])
		}
		w.Flush()
	}

	fmt.Fprintln(out, "\nINVENTORY")
	if len(s.Inventory) == 0 {
		fmt.Fprintln(out, "  (empty)")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, stack := range s.Inventory {
			fmt.Fprintf(w, "  %s\t%d\n", stack.ItemID, stack.Quantity)
		}
		w.Flush()
	}

	fmt.Fprintln(out, "\nGARDEN")
	if len(s.Growables) == 0 {
		fmt.Fprintln(out, "  (nothing planted)")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, g := range s.Growables {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", g.ID, g.DefinitionID, g.Kind, formatDuration(g.Age))
		}
		w.Flush()
	}

	fmt.Fprintln(out, "\nGUILD")
	if len(s.Members) == 0 {
		fmt.Fprintln(out, "  (no members)")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, m := range s.Members {
			status := "available"
			if m.OnExpedition {
				status = "on expedition"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\tlevel %d\t%s\tnext level %s\n",
				m.ID, m.Name, m.Role, m.Level, status, formatCurrency(m.UpgradeCost))
		}
		w.Flush()
	}

	fmt.Fprintln(out, "\nEXPEDITIONS")
	if len(s.Expeditions) == 0 {
		fmt.Fprintln(out, "  (none active)")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, e := range s.Expeditions {
			eta := "ready"
			if !e.Ready {
				eta = formatDuration(e.Remaining) + " left"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", e.ID, e.DefinitionID, strings.Join(e.MemberIDs, ","), eta)
		}
		w.Flush()
	}
}

// formatDuration rounds to the second, e.g. "1h2m3s"
func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
