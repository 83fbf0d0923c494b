package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/garden"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// PlantCommand plants one unit of an owned plantable item
type PlantCommand struct {
	PlayerID     int    `validate:"gt=0"`
	DefinitionID string `validate:"required"`
}

// PlantResponse contains the newly planted growable
type PlantResponse struct {
	Growable          garden.PlantedGrowable
	RemainingQuantity int
}

// PlantHandler handles the Plant command
type PlantHandler struct {
	engineHandler
}

// NewPlantHandler creates a new PlantHandler
func NewPlantHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *PlantHandler {
	return &PlantHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the Plant command
func (h *PlantHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlantCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlantCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid plant command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &PlantResponse{}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		growable, err := h.engine.Plant(p, cmd.DefinitionID, now)
		if err != nil {
			return err
		}
		response.Growable = *growable
		response.RemainingQuantity = p.Inventory.Quantity(cmd.DefinitionID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plant %s: %w", cmd.DefinitionID, err)
	}

	metrics.RecordPlant(cmd.PlayerID, response.Growable.Kind.String())
	common.LoggerFromContext(ctx).Log("INFO", "Planted growable", map[string]interface{}{
		"player_id":     cmd.PlayerID,
		"growable_id":   response.Growable.ID,
		"definition_id": cmd.DefinitionID,
		"kind":          response.Growable.Kind.String(),
	})

	return response, nil
}
