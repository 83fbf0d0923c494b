package progression

import "github.com/andrescamacho/sanctuary-go/internal/domain/guild"

const (
	// DefaultHarvestFallbackCurrency is paid when a growable has no reward definition
	DefaultHarvestFallbackCurrency = 10

	// DefaultExpeditionCompletionCurrency is paid for every settled expedition
	DefaultExpeditionCompletionCurrency = 100
)

// Policy carries the economy numbers and launch strictness the engine runs with.
// Values come from configuration; the engine never balances them itself.
type Policy struct {
	HireCost                     int
	UpgradeBaseCost              int
	HarvestFallbackCurrency      int
	ExpeditionCompletionCurrency int

	// StrictMembers fails a launch on unknown or busy member ids instead of skipping them
	StrictMembers bool

	// RequireKnownExpedition fails a launch whose definition is not in the catalog
	// instead of making it immediately eligible for settlement
	RequireKnownExpedition bool
}

// DefaultPolicy returns the stock economy
func DefaultPolicy() Policy {
	return Policy{
		HireCost:                     guild.DefaultHireCost,
		UpgradeBaseCost:              guild.DefaultUpgradeBaseCost,
		HarvestFallbackCurrency:      DefaultHarvestFallbackCurrency,
		ExpeditionCompletionCurrency: DefaultExpeditionCompletionCurrency,
	}
}
