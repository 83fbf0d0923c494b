package progression

import (
	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
)

// XPGranter is the skill collaborator that owns experience bookkeeping.
// The engine ignores whatever it returns.
type XPGranter interface {
	GrantXP(p *player.Player, skillID string, amount int) any
}

// playerSkillXP is the fallback granter: it only bumps the skill counter on the player
type playerSkillXP struct{}

func (playerSkillXP) GrantXP(p *player.Player, skillID string, amount int) any {
	return p.AddSkillXP(skillID, amount)
}

// RewardResolver turns a HarvestReward into concrete changes on the player
type RewardResolver struct {
	xp XPGranter
}

// NewRewardResolver creates a resolver delegating experience to xp
func NewRewardResolver(xp XPGranter) *RewardResolver {
	if xp == nil {
		xp = playerSkillXP{}
	}
	return &RewardResolver{xp: xp}
}

// Apply dispatches on the reward kind. It has no failure mode: unknown kinds are dropped
// and skill id problems belong to the XP collaborator.
// entry describes the ledger record written for currency rewards.
func (r *RewardResolver) Apply(p *player.Player, reward catalog.HarvestReward, entry player.CurrencyEntry) {
	switch reward.Kind {
	case catalog.RewardKindCurrency:
		p.Credit(reward.Amount, entry)
	case catalog.RewardKindItem:
		p.GrantItem(reward.ItemID, reward.Quantity)
	case catalog.RewardKindExperienceBurst:
		_ = r.xp.GrantXP(p, reward.SkillID, reward.Amount)
	}
}
