package ledger

import "fmt"

// TransactionType represents what caused a currency change
type TransactionType string

const (
	// TransactionTypeHireGuildMember is the debit for hiring a member
	TransactionTypeHireGuildMember TransactionType = "HIRE_GUILD_MEMBER"

	// TransactionTypeUpgradeGuildMember is the debit for levelling a member
	TransactionTypeUpgradeGuildMember TransactionType = "UPGRADE_GUILD_MEMBER"

	// TransactionTypeHarvestReward is a currency reward defined by the catalog
	TransactionTypeHarvestReward TransactionType = "HARVEST_REWARD"

	// TransactionTypeHarvestFallback is the default payout for growables without a reward
	TransactionTypeHarvestFallback TransactionType = "HARVEST_FALLBACK"

	// TransactionTypeExpeditionPayout is the completion payment for a settled expedition
	TransactionTypeExpeditionPayout TransactionType = "EXPEDITION_PAYOUT"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeHireGuildMember,
		TransactionTypeUpgradeGuildMember,
		TransactionTypeHarvestReward,
		TransactionTypeHarvestFallback,
		TransactionTypeExpeditionPayout,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
