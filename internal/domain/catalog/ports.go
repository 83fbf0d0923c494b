package catalog

// Catalog resolves identifiers to static definitions. It is read-only.
type Catalog interface {
	ResolveItem(id string) (ItemDefinition, bool)
	ResolveExpedition(id string) (ExpeditionDefinition, bool)
}

// Lister enumerates the catalog contents for display
type Lister interface {
	Items() []ItemDefinition
	Expeditions() []ExpeditionDefinition
}
