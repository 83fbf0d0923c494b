package ledger

import "fmt"

// Category groups transaction types for cash flow reporting
type Category string

const (
	// CategoryGuildInvestments covers hiring and upgrading guild members
	CategoryGuildInvestments Category = "GUILD_INVESTMENTS"

	// CategoryHarvestRevenue covers currency earned from harvesting
	CategoryHarvestRevenue Category = "HARVEST_REVENUE"

	// CategoryExpeditionRevenue covers expedition completion payouts
	CategoryExpeditionRevenue Category = "EXPEDITION_REVENUE"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryGuildInvestments,
		CategoryHarvestRevenue,
		CategoryExpeditionRevenue,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeHireGuildMember:    CategoryGuildInvestments,
	TransactionTypeUpgradeGuildMember: CategoryGuildInvestments,
	TransactionTypeHarvestReward:      CategoryHarvestRevenue,
	TransactionTypeHarvestFallback:    CategoryHarvestRevenue,
	TransactionTypeExpeditionPayout:   CategoryExpeditionRevenue,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryGuildInvestments, CategoryHarvestRevenue, CategoryExpeditionRevenue:
		return true
	default:
		return false
	}
}

// IsIncome returns true if the category represents income
func (c Category) IsIncome() bool {
	return c == CategoryHarvestRevenue || c == CategoryExpeditionRevenue
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
