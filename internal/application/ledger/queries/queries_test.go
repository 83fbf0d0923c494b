package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/persistence"
	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/ledger/queries"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// seedLedger gives "fern" a hire, an upgrade, a harvest and an expedition payout on consecutive hours
func seedLedger(t *testing.T) (*persistence.MemoryRepository, int) {
	t.Helper()
	ctx := context.Background()
	repo := persistence.NewMemoryRepository()

	p := player.NewPlayer(shared.PlayerID{}, "fern", 1000, day)
	require.NoError(t, repo.Add(ctx, p))

	err := repo.Execute(ctx, p.ID, func(ctx context.Context, p *player.Player) error {
		if err := p.Debit(250, player.CurrencyEntry{Type: ledger.TransactionTypeHireGuildMember, At: day.Add(1 * time.Hour)}); err != nil {
			return err
		}
		if err := p.Debit(100, player.CurrencyEntry{Type: ledger.TransactionTypeUpgradeGuildMember, At: day.Add(2 * time.Hour)}); err != nil {
			return err
		}
		p.Credit(40, player.CurrencyEntry{Type: ledger.TransactionTypeHarvestReward, At: day.Add(3 * time.Hour)})
		p.Credit(100, player.CurrencyEntry{Type: ledger.TransactionTypeExpeditionPayout, At: day.Add(24 * time.Hour)})
		return nil
	})
	require.NoError(t, err)
	return repo, p.ID.Value()
}

func TestGetTransactions_FiltersAndPaginates(t *testing.T) {
	repo, id := seedLedger(t)
	handler := queries.NewGetTransactionsHandler(repo, common.NewPlayerResolver(repo))
	category := ledger.CategoryGuildInvestments.String()

	resp, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{
		PlayerID: id,
		Category: &category,
		Limit:    1,
	})

	require.NoError(t, err)
	result := resp.(*queries.GetTransactionsResponse)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "UPGRADE_GUILD_MEMBER", result.Transactions[0].Type)
	assert.Equal(t, -100, result.Transactions[0].Amount)
	assert.Equal(t, 650, result.Transactions[0].BalanceAfter)
}

func TestGetTransactions_ResolvesPlayerByName(t *testing.T) {
	repo, _ := seedLedger(t)
	handler := queries.NewGetTransactionsHandler(repo, common.NewPlayerResolver(repo))

	resp, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{
		PlayerName: "fern",
		OrderBy:    ledger.OrderByTimestampAsc,
	})

	require.NoError(t, err)
	result := resp.(*queries.GetTransactionsResponse)
	require.Len(t, result.Transactions, 4)
	assert.Equal(t, "HIRE_GUILD_MEMBER", result.Transactions[0].Type)
	assert.Equal(t, "EXPEDITION_PAYOUT", result.Transactions[3].Type)
}

func TestGetTransactions_RejectsBadInput(t *testing.T) {
	repo, id := seedLedger(t)
	handler := queries.NewGetTransactionsHandler(repo, common.NewPlayerResolver(repo))
	bogus := "LOTTERY"

	_, err := handler.Handle(context.Background(), &queries.GetTransactionsQuery{PlayerID: id, Category: &bogus})
	assert.ErrorContains(t, err, "invalid category")

	_, err = handler.Handle(context.Background(), &queries.GetTransactionsQuery{PlayerID: id, OrderBy: "random"})
	assert.ErrorContains(t, err, "invalid order")

	_, err = handler.Handle(context.Background(), &queries.GetTransactionsQuery{PlayerName: "nobody"})
	assert.Error(t, err)
}

func TestGetCashFlow_GroupsByCategoryWithinRange(t *testing.T) {
	repo, id := seedLedger(t)
	handler := queries.NewGetCashFlowHandler(repo)

	resp, err := handler.Handle(context.Background(), &queries.GetCashFlowQuery{
		PlayerID:  id,
		StartDate: day,
		EndDate:   day.Add(12 * time.Hour),
	})

	require.NoError(t, err)
	result := resp.(*queries.GetCashFlowResponse)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, "GUILD_INVESTMENTS", result.Categories[0].Category)
	assert.Equal(t, 350, result.Categories[0].TotalOutflow)
	assert.Equal(t, 2, result.Categories[0].Transactions)
	assert.Equal(t, "HARVEST_REVENUE", result.Categories[1].Category)
	assert.Equal(t, 40, result.Categories[1].TotalInflow)
	assert.Equal(t, -310, result.NetFlow)
	assert.Equal(t, "2025-03-10 to 2025-03-10", result.Period)
}

func TestGetCashFlow_RejectsInvertedRange(t *testing.T) {
	repo, id := seedLedger(t)
	handler := queries.NewGetCashFlowHandler(repo)

	_, err := handler.Handle(context.Background(), &queries.GetCashFlowQuery{
		PlayerID:  id,
		StartDate: day.Add(time.Hour),
		EndDate:   day,
	})

	assert.Error(t, err)
}
