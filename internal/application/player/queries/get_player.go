package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// GetPlayerQuery represents a query to get a player by ID or name
type GetPlayerQuery struct {
	PlayerID *int   // Optional: get by player ID
	Name     string // Optional: get by player name
}

// GetPlayerResponse represents the result of getting a player
type GetPlayerResponse struct {
	Player *player.Player
}

// GetPlayerHandler handles the GetPlayer query
type GetPlayerHandler struct {
	playerRepo player.PlayerRepository
}

// NewGetPlayerHandler creates a new GetPlayerHandler
func NewGetPlayerHandler(playerRepo player.PlayerRepository) *GetPlayerHandler {
	return &GetPlayerHandler{
		playerRepo: playerRepo,
	}
}

// Handle executes the GetPlayer query
func (h *GetPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerQuery")
	}

	if query.PlayerID == nil && query.Name == "" {
		return nil, fmt.Errorf("either player_id or name must be provided")
	}

	var p *player.Player
	var err error

	// Priority: PlayerID > Name
	if query.PlayerID != nil {
		playerID, idErr := shared.NewPlayerID(*query.PlayerID)
		if idErr != nil {
			return nil, fmt.Errorf("invalid player ID: %w", idErr)
		}
		p, err = h.playerRepo.FindByID(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find player by ID: %w", err)
		}
	} else {
		p, err = h.playerRepo.FindByName(ctx, query.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to find player by name: %w", err)
		}
	}

	return &GetPlayerResponse{
		Player: p,
	}, nil
}

// ListPlayersQuery lists every registered player without loading owned collections
type ListPlayersQuery struct{}

// ListPlayersResponse contains the registered players ordered by id
type ListPlayersResponse struct {
	Players []player.Summary
}

// ListPlayersHandler handles the ListPlayers query
type ListPlayersHandler struct {
	playerRepo player.PlayerRepository
}

// NewListPlayersHandler creates a new ListPlayersHandler
func NewListPlayersHandler(playerRepo player.PlayerRepository) *ListPlayersHandler {
	return &ListPlayersHandler{playerRepo: playerRepo}
}

// Handle executes the ListPlayers query
func (h *ListPlayersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListPlayersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListPlayersQuery")
	}

	players, err := h.playerRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	return &ListPlayersResponse{Players: players}, nil
}
