package catalog

import "fmt"

// RewardKind tags the variant carried by a HarvestReward
type RewardKind string

const (
	// RewardKindCurrency pays currency to the player
	RewardKindCurrency RewardKind = "CURRENCY"

	// RewardKindItem grants inventory items
	RewardKindItem RewardKind = "ITEM"

	// RewardKindExperienceBurst grants skill experience through the XP collaborator
	RewardKindExperienceBurst RewardKind = "EXPERIENCE_BURST"
)

func (k RewardKind) String() string {
	return string(k)
}

// HarvestReward is the typed payout of a growable or expedition definition.
// Only the fields of its Kind are meaningful.
type HarvestReward struct {
	Kind     RewardKind
	Amount   int
	ItemID   string
	Quantity int
	SkillID  string
}

// CurrencyReward builds a Currency(amount) reward
func CurrencyReward(amount int) HarvestReward {
	return HarvestReward{Kind: RewardKindCurrency, Amount: amount}
}

// ItemReward builds an Item(itemID, quantity) reward
func ItemReward(itemID string, quantity int) HarvestReward {
	return HarvestReward{Kind: RewardKindItem, ItemID: itemID, Quantity: quantity}
}

// ExperienceReward builds an ExperienceBurst(skillID, amount) reward
func ExperienceReward(skillID string, amount int) HarvestReward {
	return HarvestReward{Kind: RewardKindExperienceBurst, SkillID: skillID, Amount: amount}
}

// Validate checks the reward is well formed for its kind.
// Catalog loaders call it so the engine can trust rewards at apply time.
func (r HarvestReward) Validate() error {
	switch r.Kind {
	case RewardKindCurrency:
		if r.Amount < 0 {
			return fmt.Errorf("currency reward cannot be negative: %d", r.Amount)
		}
	case RewardKindItem:
		if r.ItemID == "" {
			return fmt.Errorf("item reward requires an item id")
		}
		if r.Quantity <= 0 {
			return fmt.Errorf("item reward quantity must be positive: %d", r.Quantity)
		}
	case RewardKindExperienceBurst:
		if r.SkillID == "" {
			return fmt.Errorf("experience reward requires a skill id")
		}
		if r.Amount < 0 {
			return fmt.Errorf("experience reward cannot be negative: %d", r.Amount)
		}
	default:
		return fmt.Errorf("invalid reward kind: %q", r.Kind)
	}
	return nil
}

func (r HarvestReward) String() string {
	switch r.Kind {
	case RewardKindCurrency:
		return fmt.Sprintf("%d currency", r.Amount)
	case RewardKindItem:
		return fmt.Sprintf("%dx %s", r.Quantity, r.ItemID)
	case RewardKindExperienceBurst:
		return fmt.Sprintf("%d %s xp", r.Amount, r.SkillID)
	default:
		return "no reward"
	}
}

// ParseRewardKind parses a string into a RewardKind
func ParseRewardKind(s string) (RewardKind, error) {
	k := RewardKind(s)
	switch k {
	case RewardKindCurrency, RewardKindItem, RewardKindExperienceBurst:
		return k, nil
	default:
		return "", fmt.Errorf("invalid reward kind: %s", s)
	}
}
