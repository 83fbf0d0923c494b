package catalog

import (
	"fmt"
	"sort"
)

// StaticCatalog is an immutable in-memory catalog built once from definitions
type StaticCatalog struct {
	items       map[string]ItemDefinition
	expeditions map[string]ExpeditionDefinition
}

// NewStaticCatalog validates the definitions and indexes them by id
func NewStaticCatalog(items []ItemDefinition, expeditions []ExpeditionDefinition) (*StaticCatalog, error) {
	c := &StaticCatalog{
		items:       make(map[string]ItemDefinition, len(items)),
		expeditions: make(map[string]ExpeditionDefinition, len(expeditions)),
	}

	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item definition without id")
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item definition: %s", item.ID)
		}
		if item.PlantableKind != "" && !item.PlantableKind.IsValid() {
			return nil, fmt.Errorf("item %s: invalid plantable kind %q", item.ID, item.PlantableKind)
		}
		if item.HarvestReward != nil {
			if err := item.HarvestReward.Validate(); err != nil {
				return nil, fmt.Errorf("item %s: %w", item.ID, err)
			}
		}
		c.items[item.ID] = item
	}

	for _, exp := range expeditions {
		if exp.ID == "" {
			return nil, fmt.Errorf("expedition definition without id")
		}
		if _, dup := c.expeditions[exp.ID]; dup {
			return nil, fmt.Errorf("duplicate expedition definition: %s", exp.ID)
		}
		if exp.Duration < 0 {
			return nil, fmt.Errorf("expedition %s: duration cannot be negative", exp.ID)
		}
		if exp.XPReward < 0 {
			return nil, fmt.Errorf("expedition %s: xp reward cannot be negative", exp.ID)
		}
		c.expeditions[exp.ID] = exp
	}

	return c, nil
}

// MustNewStaticCatalog is NewStaticCatalog for fixtures known to be valid
func MustNewStaticCatalog(items []ItemDefinition, expeditions []ExpeditionDefinition) *StaticCatalog {
	c, err := NewStaticCatalog(items, expeditions)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *StaticCatalog) ResolveItem(id string) (ItemDefinition, bool) {
	def, ok := c.items[id]
	return def, ok
}

func (c *StaticCatalog) ResolveExpedition(id string) (ExpeditionDefinition, bool) {
	def, ok := c.expeditions[id]
	return def, ok
}

// Items returns all item definitions sorted by id
func (c *StaticCatalog) Items() []ItemDefinition {
	out := make([]ItemDefinition, 0, len(c.items))
	for _, def := range c.items {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Expeditions returns all expedition definitions sorted by id
func (c *StaticCatalog) Expeditions() []ExpeditionDefinition {
	out := make([]ExpeditionDefinition, 0, len(c.expeditions))
	for _, def := range c.expeditions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
