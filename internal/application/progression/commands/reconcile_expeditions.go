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

// ReconcileExpeditionsCommand settles every expedition whose end time has passed
type ReconcileExpeditionsCommand struct {
	PlayerID int `validate:"gt=0"`
}

// ReconcileExpeditionsResponse lists what was settled
type ReconcileExpeditionsResponse struct {
	Result   progression.ReconcileResult
	Currency int
	TotalXP  int
}

// ReconcileExpeditionsHandler handles the ReconcileExpeditions command
type ReconcileExpeditionsHandler struct {
	engineHandler
}

// NewReconcileExpeditionsHandler creates a new ReconcileExpeditionsHandler
func NewReconcileExpeditionsHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *ReconcileExpeditionsHandler {
	return &ReconcileExpeditionsHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the ReconcileExpeditions command
func (h *ReconcileExpeditionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ReconcileExpeditionsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ReconcileExpeditionsCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid reconcile command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &ReconcileExpeditionsResponse{}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		response.Result = h.engine.ReconcileExpeditions(p, now)
		response.Currency = p.Currency
		response.TotalXP = p.TotalXP
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile expeditions: %w", err)
	}

	logger := common.LoggerFromContext(ctx)
	for _, settled := range response.Result.Settled {
		metrics.RecordExpeditionSettled(cmd.PlayerID, settled.DefinitionID, settled.XPAwarded, settled.CurrencyAwarded)
		if !settled.DefinitionKnown {
			logger.Log("WARNING", "Settled expedition with unknown definition", map[string]interface{}{
				"player_id":     cmd.PlayerID,
				"expedition_id": settled.ExpeditionID,
				"definition_id": settled.DefinitionID,
			})
		}
	}

	if n := len(response.Result.Settled); n > 0 {
		logger.Log("INFO", "Settled expeditions", map[string]interface{}{
			"player_id": cmd.PlayerID,
			"settled":   n,
			"xp":        response.Result.TotalXP(),
			"currency":  response.Result.TotalCurrency(),
		})
	}

	return response, nil
}
