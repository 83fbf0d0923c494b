package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/sanctuary-go/internal/application/ledger/queries"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
)

const dateLayout = "2006-01-02"

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Currency ledger operations",
		Long: `View the currency history of a player.

Every hire, upgrade, harvest payout and expedition payout is recorded with the
balance before and after it.

Examples:
  sanctuary ledger list --limit 20
  sanctuary ledger list --category GUILD_INVESTMENTS
  sanctuary ledger cash-flow --start-date 2025-01-01 --end-date 2025-01-31`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())

	return cmd
}

func newLedgerListCommand() *cobra.Command {
	var (
		startDate string
		endDate   string
		category  string
		txType    string
		limit     int
		offset    int
		ascending bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: fmt.Sprintf(`List currency transactions with optional filtering.

Results are ordered newest first unless --asc is given.

Categories:
  %s, %s, %s

Transaction Types:
  %s, %s,
  %s, %s,
  %s`,
			ledger.CategoryGuildInvestments, ledger.CategoryHarvestRevenue, ledger.CategoryExpeditionRevenue,
			ledger.TransactionTypeHireGuildMember, ledger.TransactionTypeUpgradeGuildMember,
			ledger.TransactionTypeHarvestReward, ledger.TransactionTypeHarvestFallback,
			ledger.TransactionTypeExpeditionPayout),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{
				StartDate: start,
				EndDate:   end,
				Limit:     limit,
				Offset:    offset,
			}
			if category != "" {
				query.Category = &category
			}
			if txType != "" {
				query.TransactionType = &txType
			}
			if ascending {
				query.OrderBy = ledger.OrderByTimestampAsc
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				query.PlayerID = id
				result, err := app.Mediator.Send(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to query transactions: %w", err)
				}
				displayTransactionList(cmd.OutOrStdout(), result.(*queries.GetTransactionsResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().BoolVar(&ascending, "asc", false, "Oldest first")

	return cmd
}

func newLedgerCashFlowCommand() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Summarize inflow and outflow per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			return withPlayer(func(ctx context.Context, app *bootstrap.App, id int) error {
				result, err := app.Mediator.Send(ctx, &queries.GetCashFlowQuery{
					PlayerID:  id,
					StartDate: *start,
					EndDate:   *end,
				})
				if err != nil {
					return fmt.Errorf("failed to generate cash flow report: %w", err)
				}
				displayCashFlow(cmd.OutOrStdout(), result.(*queries.GetCashFlowResponse))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD) [required]")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD) [required]")
	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("end-date")

	return cmd
}

// parseDateRange parses optional YYYY-MM-DD bounds; the end date covers its whole day
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date format: %w", err)
		}
		start = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date format: %w", err)
		}
		endOfDay := parsed.Add(24*time.Hour - time.Second)
		end = &endOfDay
	}
	return start, end, nil
}

func displayTransactionList(out io.Writer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Fprintln(out, "No transactions found")
		return
	}

	fmt.Fprintf(out, "\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tType\tCategory\tAmount\tBalance\tDescription")
	fmt.Fprintln(w, "─────────\t────\t────────\t──────\t───────\t───────────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Type,
			tx.Category,
			formatAmount(tx.Amount),
			formatCurrency(tx.BalanceAfter),
			tx.Description,
		)
	}

	w.Flush()
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
	fmt.Fprintf(out, "Total: %d transactions\n\n", response.Total)
}

func displayCashFlow(out io.Writer, response *queries.GetCashFlowResponse) {
	fmt.Fprintf(out, "\nCASH FLOW STATEMENT (By Category)\n")
	fmt.Fprintf(out, "Period: %s\n", response.Period)
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tInflow\tOutflow\tNet Flow\tTransactions")
	fmt.Fprintln(w, "────────\t──────\t───────\t────────\t────────────")

	totalInflow, totalOutflow, totalTransactions := 0, 0, 0
	for _, cat := range response.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			cat.Category,
			formatCurrency(cat.TotalInflow),
			formatCurrency(-cat.TotalOutflow),
			formatAmount(cat.NetFlow),
			cat.Transactions,
		)
		totalInflow += cat.TotalInflow
		totalOutflow += cat.TotalOutflow
		totalTransactions += cat.Transactions
	}

	fmt.Fprintln(w, "────────\t──────\t───────\t────────\t────────────")
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t%d\n",
		formatCurrency(totalInflow),
		formatCurrency(-totalOutflow),
		formatAmount(response.NetFlow),
		totalTransactions,
	)

	w.Flush()
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────────")
}

// formatAmount formats an amount with +/- sign
func formatAmount(amount int) string {
	if amount >= 0 {
		return fmt.Sprintf("+%s", formatCurrency(amount))
	}
	return formatCurrency(amount)
}

// formatCurrency formats currency with thousands separator
func formatCurrency(amount int) string {
	if amount < 0 {
		return "-" + addThousandsSeparator(-amount)
	}
	return addThousandsSeparator(amount)
}

// addThousandsSeparator adds commas to a number (e.g., 1234567 -> "1,234,567")
func addThousandsSeparator(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result []byte
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
