package config

// EconomyConfig holds the costs and payouts the engine applies
type EconomyConfig struct {
	HireCost                     int `mapstructure:"hire_cost" validate:"min=0"`
	UpgradeBaseCost              int `mapstructure:"upgrade_base_cost" validate:"min=0"`
	HarvestFallbackCurrency      int `mapstructure:"harvest_fallback_currency" validate:"min=0"`
	ExpeditionCompletionCurrency int `mapstructure:"expedition_completion_currency" validate:"min=0"`
	StartingCurrency             int `mapstructure:"starting_currency" validate:"min=0"`
}

// CatalogConfig points at the item and expedition definitions
type CatalogConfig struct {
	// Path to the YAML catalog; empty uses the built-in catalog
	Path string `mapstructure:"path"`
}

// ExpeditionsConfig controls launch strictness
type ExpeditionsConfig struct {
	// Fail a launch on unknown or busy members instead of skipping them
	StrictMembers bool `mapstructure:"strict_members"`

	// Fail a launch whose definition is not in the catalog
	RequireKnownDefinition bool `mapstructure:"require_known_definition"`
}
