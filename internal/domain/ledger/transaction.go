package ledger

import (
	"fmt"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// Transaction is an immutable record of one currency change on a player
type Transaction struct {
	id                TransactionID
	playerID          shared.PlayerID
	timestamp         time.Time
	transactionType   TransactionType
	category          Category
	amount            int // Positive for income, negative for expenses
	balanceBefore     int
	balanceAfter      int
	description       string
	relatedEntityType string // e.g. "guild_member", "growable", "expedition"
	relatedEntityID   string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	playerID shared.PlayerID,
	timestamp time.Time,
	transactionType TransactionType,
	amount int,
	balanceBefore int,
	balanceAfter int,
	description string,
	relatedEntityType string,
	relatedEntityID string,
) (*Transaction, error) {
	if playerID.IsZero() {
		return nil, &ErrInvalidTransaction{
			Field:  "player_id",
			Reason: "player_id cannot be zero",
		}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: err.Error(),
		}
	}

	t := &Transaction{
		id:                NewTransactionID(),
		playerID:          playerID,
		timestamp:         timestamp,
		transactionType:   transactionType,
		category:          category,
		amount:            amount,
		balanceBefore:     balanceBefore,
		balanceAfter:      balanceAfter,
		description:       description,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(
	id TransactionID,
	playerID shared.PlayerID,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount int,
	balanceBefore int,
	balanceAfter int,
	description string,
	relatedEntityType string,
	relatedEntityID string,
) *Transaction {
	return &Transaction{
		id:                id,
		playerID:          playerID,
		timestamp:         timestamp,
		transactionType:   transactionType,
		category:          category,
		amount:            amount,
		balanceBefore:     balanceBefore,
		balanceAfter:      balanceAfter,
		description:       description,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 {
		return &ErrInvalidTransaction{
			Field:  "amount",
			Reason: "amount cannot be zero",
		}
	}

	expected := t.balanceBefore + t.amount
	if t.balanceAfter != expected {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.balanceAfter < 0 {
		return &ErrInvalidTransaction{
			Field:  "balance_after",
			Reason: fmt.Sprintf("balance cannot go negative: %d", t.balanceAfter),
		}
	}

	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) PlayerID() shared.PlayerID {
	return t.playerID
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) Amount() int {
	return t.amount
}

func (t *Transaction) BalanceBefore() int {
	return t.balanceBefore
}

func (t *Transaction) BalanceAfter() int {
	return t.balanceAfter
}

func (t *Transaction) Description() string {
	return t.description
}

func (t *Transaction) RelatedEntityType() string {
	return t.relatedEntityType
}

func (t *Transaction) RelatedEntityID() string {
	return t.relatedEntityID
}

// IsIncome returns true if this transaction increased the balance
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%d, balance=%d->%d]",
		t.id.String()[:8], t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
