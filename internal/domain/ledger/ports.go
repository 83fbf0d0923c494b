package ledger

import (
	"context"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// TransactionRepository reads the persisted currency history.
// Writes happen through the player unit of work, in the same commit as the balance change.
type TransactionRepository interface {
	FindByPlayer(ctx context.Context, playerID shared.PlayerID, opts QueryOptions) ([]*Transaction, error)
	CountByPlayer(ctx context.Context, playerID shared.PlayerID, opts QueryOptions) (int, error)
}

// Sort orders accepted by QueryOptions.OrderBy
const (
	OrderByTimestampDesc = "timestamp_desc"
	OrderByTimestampAsc  = "timestamp_asc"
)

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Category        *Category
	TransactionType *TransactionType

	RelatedEntityType *string
	RelatedEntityID   *string

	Limit   int
	Offset  int
	OrderBy string // "timestamp_desc" (default) or "timestamp_asc"
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50, OrderBy: OrderByTimestampDesc}
}

// Matches reports whether t passes every filter set on the options
func (o QueryOptions) Matches(t *Transaction) bool {
	if o.StartDate != nil && t.Timestamp().Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && t.Timestamp().After(*o.EndDate) {
		return false
	}
	if o.Category != nil && t.Category() != *o.Category {
		return false
	}
	if o.TransactionType != nil && t.TransactionType() != *o.TransactionType {
		return false
	}
	if o.RelatedEntityType != nil && t.RelatedEntityType() != *o.RelatedEntityType {
		return false
	}
	if o.RelatedEntityID != nil && t.RelatedEntityID() != *o.RelatedEntityID {
		return false
	}
	return true
}
