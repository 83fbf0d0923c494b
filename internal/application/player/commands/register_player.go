package commands

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// RegisterPlayerCommand represents a command to register a new player
type RegisterPlayerCommand struct {
	Name              string         `validate:"required,max=64"`
	StartingCurrency  *int           `validate:"omitempty,min=0"` // nil uses the configured default
	StartingInventory map[string]int `validate:"omitempty,dive,keys,required,endkeys,min=1"`
}

// RegisterPlayerResponse represents the result of registering a player
type RegisterPlayerResponse struct {
	Player *player.Player
}

// RegisterPlayerHandler handles the RegisterPlayer command
type RegisterPlayerHandler struct {
	playerRepo       player.PlayerRepository
	clock            shared.Clock
	startingCurrency int
	validate         *validator.Validate
}

// NewRegisterPlayerHandler creates a new RegisterPlayerHandler
func NewRegisterPlayerHandler(playerRepo player.PlayerRepository, clock shared.Clock, startingCurrency int) *RegisterPlayerHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RegisterPlayerHandler{
		playerRepo:       playerRepo,
		clock:            clock,
		startingCurrency: startingCurrency,
		validate:         validator.New(),
	}
}

// Handle executes the RegisterPlayer command
func (h *RegisterPlayerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RegisterPlayerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterPlayerCommand")
	}

	if err := h.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid register player command: %w", err)
	}

	if existing, err := h.playerRepo.FindByName(ctx, cmd.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("player %q already exists", cmd.Name)
	}

	currency := h.startingCurrency
	if cmd.StartingCurrency != nil {
		currency = *cmd.StartingCurrency
	}

	p := player.NewPlayer(shared.PlayerID{}, cmd.Name, currency, h.clock.Now())
	for itemID, qty := range cmd.StartingInventory {
		p.GrantItem(itemID, qty)
	}

	if err := h.playerRepo.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	common.LoggerFromContext(ctx).Log("INFO", "Player registered", map[string]interface{}{
		"player_id": p.ID.Value(),
		"name":      p.Name,
		"currency":  p.Currency,
	})

	return &RegisterPlayerResponse{
		Player: p,
	}, nil
}
