package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// HireGuildMemberCommand hires a new level 1 member of the given role
type HireGuildMemberCommand struct {
	PlayerID int    `validate:"gt=0"`
	Role     string `validate:"required"`
}

// HireGuildMemberResponse contains the hired member and the remaining balance
type HireGuildMemberResponse struct {
	Member   guild.Member
	Cost     int
	Currency int
}

// HireGuildMemberHandler handles the HireGuildMember command
type HireGuildMemberHandler struct {
	engineHandler
}

// NewHireGuildMemberHandler creates a new HireGuildMemberHandler
func NewHireGuildMemberHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *HireGuildMemberHandler {
	return &HireGuildMemberHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the HireGuildMember command
func (h *HireGuildMemberHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*HireGuildMemberCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *HireGuildMemberCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid hire command: %w", err)
	}

	role, err := guild.ParseRole(cmd.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid hire command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &HireGuildMemberResponse{Cost: h.engine.Policy().HireCost}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		member, err := h.engine.Hire(p, role, now)
		if err != nil {
			return err
		}
		response.Member = *member
		response.Currency = p.Currency
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to hire %s: %w", role, err)
	}

	metrics.RecordHire(cmd.PlayerID, role.String())
	common.LoggerFromContext(ctx).Log("INFO", "Hired guild member", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"member_id": response.Member.ID,
		"role":      role.String(),
		"cost":      response.Cost,
	})

	return response, nil
}
