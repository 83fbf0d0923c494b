package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/domain/inventory"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

func TestLedger_ConsumeOne_DecrementsStack(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Grant("seed1", 3)

	err := ledger.ConsumeOne("seed1")

	require.NoError(t, err)
	assert.Equal(t, 2, ledger.Quantity("seed1"))
	assert.True(t, ledger.Has("seed1"))
}

func TestLedger_ConsumeOne_RemovesEmptiedStack(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Grant("seed1", 1)

	err := ledger.ConsumeOne("seed1")

	require.NoError(t, err)
	assert.False(t, ledger.Has("seed1"))
	assert.Equal(t, 0, ledger.Len())
}

func TestLedger_ConsumeOne_MissingStackFails(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Grant("other", 2)

	err := ledger.ConsumeOne("seed1")

	var qtyErr *shared.InsufficientQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, "seed1", qtyErr.ItemID)
	assert.Equal(t, 0, qtyErr.Available)
	assert.Equal(t, 2, ledger.Quantity("other"))
}

func TestLedger_Grant_MergesIntoExistingStack(t *testing.T) {
	ledger := inventory.NewLedger()

	ledger.Grant("herb", 2)
	ledger.Grant("herb", 5)

	assert.Equal(t, 7, ledger.Quantity("herb"))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_Grant_IgnoresNonPositiveQuantity(t *testing.T) {
	ledger := inventory.NewLedger()

	ledger.Grant("herb", 0)
	ledger.Grant("herb", -4)

	assert.False(t, ledger.Has("herb"))
}

func TestLedger_NeverHoldsZeroOrNegativeStacks(t *testing.T) {
	ledger := inventory.NewLedger()
	ops := []struct {
		grant int
		item  string
	}{
		{2, "a"}, {0, "a"}, {-1, "a"}, {1, "b"}, {0, "c"},
	}
	for _, op := range ops {
		if op.grant > 0 {
			ledger.Grant(op.item, op.grant)
		} else {
			_ = ledger.ConsumeOne(op.item)
		}
		for _, s := range ledger.Stacks() {
			assert.Greater(t, s.Quantity, 0, "stack %s", s.ItemID)
		}
	}

	assert.False(t, ledger.Has("a"))
	assert.Equal(t, 1, ledger.Quantity("b"))
}

func TestReconstructLedger_DropsEmptyAndMergesDuplicates(t *testing.T) {
	ledger := inventory.ReconstructLedger([]inventory.Stack{
		{ItemID: "a", Quantity: 2},
		{ItemID: "a", Quantity: 1},
		{ItemID: "b", Quantity: 0},
	})

	assert.Equal(t, []inventory.Stack{{ItemID: "a", Quantity: 3}}, ledger.Stacks())
}

func TestLedger_CloneIsIndependent(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Grant("a", 1)

	clone := ledger.Clone()
	clone.Grant("a", 4)

	assert.Equal(t, 1, ledger.Quantity("a"))
	assert.Equal(t, 5, clone.Quantity("a"))
}
