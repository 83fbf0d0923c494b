package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/expedition"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// LaunchExpeditionCommand sends guild members on an expedition
type LaunchExpeditionCommand struct {
	PlayerID     int      `validate:"gt=0"`
	DefinitionID string   `validate:"required"`
	MemberIDs    []string `validate:"dive,required"`
}

// LaunchExpeditionResponse contains the launched expedition and the ids left behind
type LaunchExpeditionResponse struct {
	Expedition expedition.ActiveExpedition
	Skipped    []string
}

// LaunchExpeditionHandler handles the LaunchExpedition command
type LaunchExpeditionHandler struct {
	engineHandler
}

// NewLaunchExpeditionHandler creates a new LaunchExpeditionHandler
func NewLaunchExpeditionHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *LaunchExpeditionHandler {
	return &LaunchExpeditionHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the LaunchExpedition command
func (h *LaunchExpeditionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*LaunchExpeditionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LaunchExpeditionCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid launch command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &LaunchExpeditionResponse{}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		launched, err := h.engine.LaunchExpedition(p, cmd.DefinitionID, cmd.MemberIDs, now)
		if err != nil {
			return err
		}
		response.Expedition = *launched
		response.Expedition.MemberIDs = append([]string(nil), launched.MemberIDs...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch expedition %s: %w", cmd.DefinitionID, err)
	}

	response.Skipped = skippedMembers(cmd.MemberIDs, response.Expedition.MemberIDs)

	logger := common.LoggerFromContext(ctx)
	if len(response.Skipped) > 0 {
		logger.Log("WARNING", "Skipped unavailable expedition members", map[string]interface{}{
			"player_id": cmd.PlayerID,
			"skipped":   response.Skipped,
		})
	}

	metrics.RecordExpeditionLaunch(cmd.PlayerID, cmd.DefinitionID, len(response.Expedition.MemberIDs))
	logger.Log("INFO", "Launched expedition", map[string]interface{}{
		"player_id":     cmd.PlayerID,
		"expedition_id": response.Expedition.ID,
		"definition_id": cmd.DefinitionID,
		"members":       len(response.Expedition.MemberIDs),
		"end_time":      response.Expedition.EndTime,
	})

	return response, nil
}

// skippedMembers lists requested ids that did not join, without duplicates
func skippedMembers(requested, accepted []string) []string {
	joined := make(map[string]bool, len(accepted))
	for _, id := range accepted {
		joined[id] = true
	}

	var skipped []string
	for _, id := range requested {
		if joined[id] {
			continue
		}
		joined[id] = true
		skipped = append(skipped, id)
	}
	return skipped
}
