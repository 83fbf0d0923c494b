package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogAdapter "github.com/andrescamacho/sanctuary-go/internal/adapters/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse item and expedition definitions",
		Long: `List the static definitions the engine resolves against.

The catalog is read from catalog.path, or the built-in catalog when unset.
No database connection is opened.

Examples:
  sanctuary catalog items
  sanctuary catalog expeditions`,
	}

	cmd.AddCommand(newCatalogItemsCommand())
	cmd.AddCommand(newCatalogExpeditionsCommand())

	return cmd
}

func newCatalogItemsCommand() *cobra.Command {
	var plantableOnly bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List item definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLANTABLE\tHARVEST REWARD")
			fmt.Fprintln(w, "--\t----\t---------\t--------------")
			for _, item := range cat.Items() {
				if plantableOnly && !item.IsPlantable() {
					continue
				}
				kind := "-"
				if item.IsPlantable() {
					kind = item.PlantableKind.String()
				}
				reward := "-"
				if item.HarvestReward != nil {
					reward = item.HarvestReward.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Name, kind, reward)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&plantableOnly, "plantable", false, "Only show plantable items")

	return cmd
}

func newCatalogExpeditionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expeditions",
		Short: "List expedition definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDURATION\tXP")
			fmt.Fprintln(w, "--\t----\t--------\t--")
			for _, e := range cat.Expeditions() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.ID, e.Name, e.Duration, e.XPReward)
			}
			return w.Flush()
		},
	}
}

func loadCatalog() (*catalog.StaticCatalog, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := catalogAdapter.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}
