package player

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID shared.PlayerID) (*Player, error)
	FindByName(ctx context.Context, name string) (*Player, error)

	// ListSummaries returns the player rows ordered by id without loading owned collections
	ListSummaries(ctx context.Context) ([]Summary, error)

	// Add persists a new player and assigns its ID
	Add(ctx context.Context, player *Player) error

	// Delete removes the player and every entity it owns
	Delete(ctx context.Context, playerID shared.PlayerID) error
}

// Summary is the player row alone, used for listings
type Summary struct {
	ID        shared.PlayerID
	Name      string
	Currency  int
	TotalXP   int
	CreatedAt time.Time
}

// UnitOfWork runs fn against a freshly loaded player inside one scoped transaction.
// If fn returns an error nothing is persisted and the error is returned unchanged;
// if the commit itself fails the error is a *shared.TransactionFailedError.
type UnitOfWork interface {
	Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, p *Player) error) error
}

// NotFoundError is returned when no player matches the lookup
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player not found: %s", e.Key)
}
