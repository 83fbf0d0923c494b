package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

var ts = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestNewTransaction_DerivesCategoryFromType(t *testing.T) {
	tx, err := ledger.NewTransaction(shared.MustNewPlayerID(1), ts, ledger.TransactionTypeHireGuildMember,
		-250, 300, 50, "hired New Scout", "guild_member", "m1")

	require.NoError(t, err)
	assert.Equal(t, ledger.CategoryGuildInvestments, tx.Category())
	assert.False(t, tx.IsIncome())
	assert.False(t, tx.ID().IsZero())
}

func TestNewTransaction_RejectsBrokenBalance(t *testing.T) {
	_, err := ledger.NewTransaction(shared.MustNewPlayerID(1), ts, ledger.TransactionTypeExpeditionPayout,
		100, 50, 100, "", "", "")

	var balanceErr *ledger.ErrBalanceInvariantViolation
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, 150, balanceErr.Expected)
}

func TestNewTransaction_RejectsZeroAmountAndZeroPlayer(t *testing.T) {
	_, err := ledger.NewTransaction(shared.MustNewPlayerID(1), ts, ledger.TransactionTypeHarvestReward,
		0, 10, 10, "", "", "")
	var invalid *ledger.ErrInvalidTransaction
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "amount", invalid.Field)

	_, err = ledger.NewTransaction(shared.PlayerID{}, ts, ledger.TransactionTypeHarvestReward,
		10, 0, 10, "", "", "")
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "player_id", invalid.Field)
}

func TestParseTransactionType(t *testing.T) {
	for _, tt := range ledger.AllTransactionTypes() {
		parsed, err := ledger.ParseTransactionType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}

	_, err := ledger.ParseTransactionType("REFUEL")
	assert.Error(t, err)
}

func TestCategory_IsIncome(t *testing.T) {
	assert.True(t, ledger.CategoryHarvestRevenue.IsIncome())
	assert.True(t, ledger.CategoryExpeditionRevenue.IsIncome())
	assert.False(t, ledger.CategoryGuildInvestments.IsIncome())
}
