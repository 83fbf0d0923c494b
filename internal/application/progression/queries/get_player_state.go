package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// GetPlayerStateQuery returns a read-only snapshot of everything a player owns
type GetPlayerStateQuery struct {
	PlayerID int
}

// GetPlayerStateResponse is the snapshot
type GetPlayerStateResponse struct {
	State *PlayerStateDTO
}

// PlayerStateDTO is a flattened view of the player aggregate
type PlayerStateDTO struct {
	PlayerID    int
	Name        string
	Currency    int
	TotalXP     int
	SkillXP     map[string]int
	Inventory   []StackDTO
	Growables   []GrowableDTO
	Members     []MemberDTO
	Expeditions []ExpeditionDTO
	AsOf        time.Time
}

// StackDTO is one inventory stack
type StackDTO struct {
	ItemID   string
	Quantity int
}

// GrowableDTO is one planted growable
type GrowableDTO struct {
	ID           string
	Kind         string
	DefinitionID string
	PlantedAt    time.Time
	Age          time.Duration
}

// MemberDTO is one guild member with the price of its next level
type MemberDTO struct {
	ID           string
	Name         string
	Role         string
	Level        int
	OnExpedition bool
	UpgradeCost  int
}

// ExpeditionDTO is one active expedition; Ready means it settles on the next reconcile
type ExpeditionDTO struct {
	ID           string
	DefinitionID string
	MemberIDs    []string
	StartTime    time.Time
	EndTime      time.Time
	Remaining    time.Duration
	Ready        bool
}

// GetPlayerStateHandler handles the GetPlayerState query
type GetPlayerStateHandler struct {
	playerRepo      player.PlayerRepository
	clock           shared.Clock
	upgradeBaseCost int
}

// NewGetPlayerStateHandler creates a new GetPlayerStateHandler
func NewGetPlayerStateHandler(playerRepo player.PlayerRepository, clock shared.Clock, upgradeBaseCost int) *GetPlayerStateHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GetPlayerStateHandler{
		playerRepo:      playerRepo,
		clock:           clock,
		upgradeBaseCost: upgradeBaseCost,
	}
}

// Handle executes the GetPlayerState query
func (h *GetPlayerStateHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetPlayerStateQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPlayerStateQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	p, err := h.playerRepo.FindByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find player: %w", err)
	}

	return &GetPlayerStateResponse{State: h.toDTO(p, h.clock.Now())}, nil
}

func (h *GetPlayerStateHandler) toDTO(p *player.Player, now time.Time) *PlayerStateDTO {
	state := &PlayerStateDTO{
		PlayerID: p.ID.Value(),
		Name:     p.Name,
		Currency: p.Currency,
		TotalXP:  p.TotalXP,
		SkillXP:  make(map[string]int, len(p.SkillXP)),
		AsOf:     now,
	}
	for skill, xp := range p.SkillXP {
		state.SkillXP[skill] = xp
	}

	for _, s := range p.Inventory.Stacks() {
		state.Inventory = append(state.Inventory, StackDTO{ItemID: s.ItemID, Quantity: s.Quantity})
	}

	for _, g := range p.Growables {
		state.Growables = append(state.Growables, GrowableDTO{
			ID:           g.ID,
			Kind:         g.Kind.String(),
			DefinitionID: g.DefinitionID,
			PlantedAt:    g.PlantedAt,
			Age:          g.Age(now),
		})
	}
	sort.SliceStable(state.Growables, func(i, j int) bool {
		return state.Growables[i].PlantedAt.Before(state.Growables[j].PlantedAt)
	})

	for _, m := range p.GuildMembers {
		state.Members = append(state.Members, MemberDTO{
			ID:           m.ID,
			Name:         m.Name,
			Role:         m.Role.String(),
			Level:        m.Level,
			OnExpedition: m.OnExpedition,
			UpgradeCost:  m.UpgradeCost(h.upgradeBaseCost),
		})
	}

	for _, e := range p.Expeditions {
		state.Expeditions = append(state.Expeditions, ExpeditionDTO{
			ID:           e.ID,
			DefinitionID: e.DefinitionID,
			MemberIDs:    append([]string(nil), e.MemberIDs...),
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
			Remaining:    e.Remaining(now),
			Ready:        e.IsComplete(now),
		})
	}
	sort.SliceStable(state.Expeditions, func(i, j int) bool {
		return state.Expeditions[i].EndTime.Before(state.Expeditions[j].EndTime)
	})

	return state
}
