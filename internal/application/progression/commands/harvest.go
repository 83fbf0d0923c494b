package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// HarvestCommand harvests one planted growable
type HarvestCommand struct {
	PlayerID   int    `validate:"gt=0"`
	GrowableID string `validate:"required"`
}

// HarvestResponse reports the applied reward and the resulting balance
type HarvestResponse struct {
	Outcome  progression.HarvestOutcome
	Currency int
}

// HarvestHandler handles the Harvest command
type HarvestHandler struct {
	engineHandler
}

// NewHarvestHandler creates a new HarvestHandler
func NewHarvestHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *HarvestHandler {
	return &HarvestHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the Harvest command
func (h *HarvestHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*HarvestCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *HarvestCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid harvest command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &HarvestResponse{}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		outcome, err := h.engine.Harvest(p, cmd.GrowableID, now)
		if err != nil {
			return err
		}
		response.Outcome = outcome
		response.Currency = p.Currency
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to harvest %s: %w", cmd.GrowableID, err)
	}

	outcome := response.Outcome
	metrics.RecordHarvest(cmd.PlayerID, outcome.Kind.String(), outcome.Reward.Kind.String(), outcome.UsedFallback)
	common.LoggerFromContext(ctx).Log("INFO", "Harvested growable", map[string]interface{}{
		"player_id":     cmd.PlayerID,
		"growable_id":   outcome.GrowableID,
		"definition_id": outcome.DefinitionID,
		"reward":        outcome.Reward.String(),
		"fallback":      outcome.UsedFallback,
	})

	return response, nil
}
