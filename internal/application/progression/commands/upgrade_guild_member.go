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

// UpgradeGuildMemberCommand raises a member's level by one
type UpgradeGuildMemberCommand struct {
	PlayerID int    `validate:"gt=0"`
	MemberID string `validate:"required"`
}

// UpgradeGuildMemberResponse contains the upgraded member and what it cost
type UpgradeGuildMemberResponse struct {
	Member   guild.Member
	Cost     int
	Currency int
}

// UpgradeGuildMemberHandler handles the UpgradeGuildMember command
type UpgradeGuildMemberHandler struct {
	engineHandler
}

// NewUpgradeGuildMemberHandler creates a new UpgradeGuildMemberHandler
func NewUpgradeGuildMemberHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) *UpgradeGuildMemberHandler {
	return &UpgradeGuildMemberHandler{engineHandler: newEngineHandler(uow, engine, clock)}
}

// Handle executes the UpgradeGuildMember command
func (h *UpgradeGuildMemberHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpgradeGuildMemberCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpgradeGuildMemberCommand")
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid upgrade command: %w", err)
	}

	playerID, err := shared.NewPlayerID(cmd.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	now := h.clock.Now()
	response := &UpgradeGuildMemberResponse{}

	err = h.execute(ctx, playerID, func(p *player.Player) error {
		before := p.Currency
		member, err := h.engine.Upgrade(p, cmd.MemberID, now)
		if err != nil {
			return err
		}
		response.Member = *member
		response.Cost = before - p.Currency
		response.Currency = p.Currency
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade member %s: %w", cmd.MemberID, err)
	}

	metrics.RecordUpgrade(cmd.PlayerID, response.Member.Role.String(), response.Member.Level)
	common.LoggerFromContext(ctx).Log("INFO", "Upgraded guild member", map[string]interface{}{
		"player_id": cmd.PlayerID,
		"member_id": response.Member.ID,
		"level":     response.Member.Level,
		"cost":      response.Cost,
	})

	return response, nil
}
