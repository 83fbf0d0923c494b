package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// DeletePlayerCommand removes a player and everything it owns
type DeletePlayerCommand struct {
	PlayerID int
}

// DeletePlayerResponse is empty; success means the rows are gone
type DeletePlayerResponse struct{}

// DeletePlayerHandler handles the DeletePlayer command
type DeletePlayerHandler struct {
	playerRepo player.PlayerRepository
	locks      *common.PlayerLocks
}

// NewDeletePlayerHandler creates a handler that deletes under the player's write lock
func NewDeletePlayerHandler(playerRepo player.PlayerRepository, locks *common.PlayerLocks) *DeletePlayerHandler {
	if locks == nil {
		locks = common.NewPlayerLocks()
	}
	return &DeletePlayerHandler{playerRepo: playerRepo, locks: locks}
}

// Handle executes the DeletePlayer command
func (h *DeletePlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeletePlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DeletePlayerCommand")
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	release := h.locks.Lock(playerID)
	defer release()

	if err := h.playerRepo.Delete(ctx, playerID); err != nil {
		return nil, fmt.Errorf("failed to delete player: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Player deleted", map[string]interface{}{
		"player_id": cmd.PlayerID,
	})

	return &DeletePlayerResponse{}, nil
}
