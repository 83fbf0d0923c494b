package progression

import (
	"fmt"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/expedition"
	"github.com/andrescamacho/sanctuary-go/internal/domain/garden"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// HarvestOutcome reports what a harvest paid out
type HarvestOutcome struct {
	GrowableID   string
	DefinitionID string
	Kind         catalog.PlantableKind
	Reward       catalog.HarvestReward
	UsedFallback bool
}

// SettledExpedition reports the payout of one settled expedition
type SettledExpedition struct {
	ExpeditionID    string
	DefinitionID    string
	MemberIDs       []string
	XPAwarded       int
	CurrencyAwarded int
	DefinitionKnown bool
}

// ReconcileResult lists the expeditions a reconcile pass settled
type ReconcileResult struct {
	Settled []SettledExpedition
}

// TotalCurrency sums the currency paid across settled expeditions
func (r ReconcileResult) TotalCurrency() int {
	total := 0
	for _, s := range r.Settled {
		total += s.CurrencyAwarded
	}
	return total
}

// TotalXP sums the experience paid across settled expeditions
func (r ReconcileResult) TotalXP() int {
	total := 0
	for _, s := range r.Settled {
		total += s.XPAwarded
	}
	return total
}

// Engine applies player actions to a loaded Player aggregate.
//
// The engine holds no player state and never reads a clock: callers pass the single
// "now" of the operation. It is not safe to run two operations on the same Player
// concurrently; callers serialize per player.
//
// Every failing operation returns before its first mutation.
type Engine struct {
	catalog catalog.Catalog
	rewards *RewardResolver
	policy  Policy
}

// NewEngine creates an engine over the catalog, XP collaborator and economy policy
func NewEngine(cat catalog.Catalog, xp XPGranter, policy Policy) *Engine {
	return &Engine{
		catalog: cat,
		rewards: NewRewardResolver(xp),
		policy:  policy,
	}
}

// Policy returns the economy the engine was built with
func (e *Engine) Policy() Policy {
	return e.policy
}

// Plant consumes one unit of definitionID from the inventory and plants it
func (e *Engine) Plant(p *player.Player, definitionID string, now time.Time) (*garden.PlantedGrowable, error) {
	def, ok := e.catalog.ResolveItem(definitionID)
	if !ok {
		return nil, shared.NewUnknownDefinitionError(definitionID)
	}
	if !def.IsPlantable() {
		return nil, shared.NewNotPlantableError(definitionID)
	}

	if err := p.ConsumeItem(definitionID); err != nil {
		return nil, shared.NewNotOwnedError(definitionID, err)
	}

	growable := garden.NewPlantedGrowable(def.PlantableKind, definitionID, now)
	p.AddGrowable(growable)
	return growable, nil
}

// Harvest pays the growable's reward (or the fallback) and removes it.
// The only failure is a growable the player does not own.
func (e *Engine) Harvest(p *player.Player, growableID string, now time.Time) (HarvestOutcome, error) {
	growable, ok := p.FindGrowable(growableID)
	if !ok {
		return HarvestOutcome{}, shared.NewGrowableNotFoundError(growableID)
	}

	outcome := HarvestOutcome{
		GrowableID:   growable.ID,
		DefinitionID: growable.DefinitionID,
		Kind:         growable.Kind,
	}

	entry := player.CurrencyEntry{
		Type:              ledger.TransactionTypeHarvestReward,
		Description:       fmt.Sprintf("harvested %s %s", growable.Kind, growable.DefinitionID),
		RelatedEntityType: string(player.EntityKindPlantedGrowable),
		RelatedEntityID:   growable.ID,
		At:                now,
	}

	if def, found := e.catalog.ResolveItem(growable.DefinitionID); found && def.HarvestReward != nil {
		outcome.Reward = *def.HarvestReward
	} else {
		outcome.Reward = catalog.CurrencyReward(e.policy.HarvestFallbackCurrency)
		outcome.UsedFallback = true
		entry.Type = ledger.TransactionTypeHarvestFallback
	}

	e.rewards.Apply(p, outcome.Reward, entry)

	// terminal: a harvested growable is gone whatever the reward lookup found
	p.RemoveGrowable(growable.ID)
	return outcome, nil
}

// Hire debits the hire cost and adds a level 1 member of role
func (e *Engine) Hire(p *player.Player, role guild.Role, now time.Time) (*guild.Member, error) {
	if !role.IsValid() {
		return nil, shared.NewValidationError("role", fmt.Sprintf("invalid guild role: %q", role))
	}

	member := guild.NewMember(role)
	err := p.Debit(e.policy.HireCost, player.CurrencyEntry{
		Type:              ledger.TransactionTypeHireGuildMember,
		Description:       fmt.Sprintf("hired %s", member.Name),
		RelatedEntityType: "guild_member",
		RelatedEntityID:   member.ID,
		At:                now,
	})
	if err != nil {
		return nil, err
	}

	p.AddMember(member)
	return member, nil
}

// Upgrade debits the member's upgrade cost and raises its level by one
func (e *Engine) Upgrade(p *player.Player, memberID string, now time.Time) (*guild.Member, error) {
	member, ok := p.FindMember(memberID)
	if !ok {
		return nil, shared.NewUnknownMemberError(memberID)
	}

	cost := member.UpgradeCost(e.policy.UpgradeBaseCost)
	err := p.Debit(cost, player.CurrencyEntry{
		Type:              ledger.TransactionTypeUpgradeGuildMember,
		Description:       fmt.Sprintf("upgraded %s to level %d", member.Name, member.Level+1),
		RelatedEntityType: "guild_member",
		RelatedEntityID:   member.ID,
		At:                now,
	})
	if err != nil {
		return nil, err
	}

	member.LevelUp()
	return member, nil
}

// LaunchExpedition sends the resolvable, idle members on an expedition starting at now.
//
// In lenient mode unknown or busy member ids are skipped; the launch fails only if no
// member remains. An unknown definition yields EndTime == StartTime unless the policy
// requires known definitions.
func (e *Engine) LaunchExpedition(p *player.Player, definitionID string, memberIDs []string, now time.Time) (*expedition.ActiveExpedition, error) {
	if len(memberIDs) == 0 {
		return nil, shared.NewEmptyPartyError(definitionID)
	}

	def, known := e.catalog.ResolveExpedition(definitionID)
	if !known && e.policy.RequireKnownExpedition {
		return nil, shared.NewUnknownDefinitionError(definitionID)
	}

	party, err := e.selectParty(p, memberIDs)
	if err != nil {
		return nil, err
	}
	if len(party) == 0 {
		return nil, shared.NewEmptyPartyError(definitionID)
	}

	ids := make([]string, 0, len(party))
	for _, m := range party {
		m.OnExpedition = true
		ids = append(ids, m.ID)
	}

	var duration time.Duration
	if known {
		duration = def.Duration
	}

	launched := expedition.NewActiveExpedition(definitionID, ids, now, duration)
	p.AddExpedition(launched)
	return launched, nil
}

func (e *Engine) selectParty(p *player.Player, memberIDs []string) ([]*guild.Member, error) {
	seen := make(map[string]bool, len(memberIDs))
	party := make([]*guild.Member, 0, len(memberIDs))

	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		member, ok := p.FindMember(id)
		if !ok {
			if e.policy.StrictMembers {
				return nil, shared.NewUnknownMemberError(id)
			}
			continue
		}
		if member.OnExpedition {
			if e.policy.StrictMembers {
				return nil, shared.NewMemberBusyError(id)
			}
			continue
		}
		party = append(party, member)
	}

	return party, nil
}

// ReconcileExpeditions settles every expedition complete at now, exactly once each.
// The eligible set is captured on entry; calling again with nothing newly due is a no-op.
func (e *Engine) ReconcileExpeditions(p *player.Player, now time.Time) ReconcileResult {
	var result ReconcileResult

	for _, exp := range p.CompletedExpeditions(now) {
		settled := SettledExpedition{
			ExpeditionID:    exp.ID,
			DefinitionID:    exp.DefinitionID,
			MemberIDs:       append([]string(nil), exp.MemberIDs...),
			CurrencyAwarded: e.policy.ExpeditionCompletionCurrency,
		}
		if def, ok := e.catalog.ResolveExpedition(exp.DefinitionID); ok {
			settled.XPAwarded = def.XPReward
			settled.DefinitionKnown = true
		}

		p.AddTotalXP(settled.XPAwarded)
		p.Credit(settled.CurrencyAwarded, player.CurrencyEntry{
			Type:              ledger.TransactionTypeExpeditionPayout,
			Description:       fmt.Sprintf("expedition %s completed", exp.DefinitionID),
			RelatedEntityType: string(player.EntityKindExpedition),
			RelatedEntityID:   exp.ID,
			At:                now,
		})

		for _, id := range exp.MemberIDs {
			if member, ok := p.FindMember(id); ok {
				member.OnExpedition = false
			}
		}

		p.RemoveExpedition(exp.ID)
		result.Settled = append(result.Settled, settled)
	}

	return result
}
