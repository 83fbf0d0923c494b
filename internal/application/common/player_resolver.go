package common

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// PlayerResolver resolves a player from either a numeric id or a player name.
//
// Business rules:
//   - At least one of playerID or name must be provided
//   - If both are provided, playerID takes precedence
type PlayerResolver struct {
	playerRepo player.PlayerRepository
}

// NewPlayerResolver creates a new player resolver
func NewPlayerResolver(playerRepo player.PlayerRepository) *PlayerResolver {
	return &PlayerResolver{
		playerRepo: playerRepo,
	}
}

// ResolvePlayerID returns the id of the player identified by playerID or name
func (r *PlayerResolver) ResolvePlayerID(ctx context.Context, playerID *int, name string) (shared.PlayerID, error) {
	if playerID == nil && name == "" {
		return shared.PlayerID{}, fmt.Errorf("either player_id or player name must be provided")
	}

	if playerID != nil {
		pid, err := shared.NewPlayerID(*playerID)
		if err != nil {
			return shared.PlayerID{}, fmt.Errorf("invalid player ID: %w", err)
		}
		return pid, nil
	}

	p, err := r.playerRepo.FindByName(ctx, name)
	if err != nil {
		return shared.PlayerID{}, fmt.Errorf("failed to find player by name: %w", err)
	}

	return p.ID, nil
}
