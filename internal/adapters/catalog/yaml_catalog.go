package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// File is the on-disk shape of a catalog
type File struct {
	Items       []ItemEntry       `yaml:"items"`
	Expeditions []ExpeditionEntry `yaml:"expeditions"`
}

// ItemEntry describes one item; plantable is empty for inert items
type ItemEntry struct {
	ID        string       `yaml:"id"`
	Name      string       `yaml:"name"`
	Plantable string       `yaml:"plantable"`
	Reward    *RewardEntry `yaml:"reward"`
}

// RewardEntry describes a harvest reward. Kind selects which of the other fields apply:
// CURRENCY uses amount, ITEM uses item and quantity, EXPERIENCE_BURST uses skill and amount.
type RewardEntry struct {
	Kind     string `yaml:"kind"`
	Amount   int    `yaml:"amount"`
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
	Skill    string `yaml:"skill"`
}

// ExpeditionEntry describes one expedition; duration uses Go duration syntax ("90m", "2h")
type ExpeditionEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
	XP       int    `yaml:"xp"`
}

// Load reads a YAML catalog from path; an empty path loads the built-in catalog
func Load(path string) (*domain.StaticCatalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML catalog data and builds a validated catalog
func Parse(data []byte) (*domain.StaticCatalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	items := make([]domain.ItemDefinition, 0, len(f.Items))
	for _, entry := range f.Items {
		item, err := entry.toDefinition()
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", entry.ID, err)
		}
		items = append(items, item)
	}

	expeditions := make([]domain.ExpeditionDefinition, 0, len(f.Expeditions))
	for _, entry := range f.Expeditions {
		exp, err := entry.toDefinition()
		if err != nil {
			return nil, fmt.Errorf("expedition %s: %w", entry.ID, err)
		}
		expeditions = append(expeditions, exp)
	}

	return domain.NewStaticCatalog(items, expeditions)
}

func (e ItemEntry) toDefinition() (domain.ItemDefinition, error) {
	def := domain.ItemDefinition{ID: e.ID, Name: e.Name}

	if e.Plantable != "" {
		kind, err := domain.ParsePlantableKind(e.Plantable)
		if err != nil {
			return def, err
		}
		def.PlantableKind = kind
	}

	if e.Reward != nil {
		kind, err := domain.ParseRewardKind(e.Reward.Kind)
		if err != nil {
			return def, err
		}
		def.HarvestReward = &domain.HarvestReward{
			Kind:     kind,
			Amount:   e.Reward.Amount,
			ItemID:   e.Reward.Item,
			Quantity: e.Reward.Quantity,
			SkillID:  e.Reward.Skill,
		}
	}

	return def, nil
}

func (e ExpeditionEntry) toDefinition() (domain.ExpeditionDefinition, error) {
	def := domain.ExpeditionDefinition{ID: e.ID, Name: e.Name, XPReward: e.XP}
	if e.Duration == "" {
		return def, nil
	}

	d, err := time.ParseDuration(e.Duration)
	if err != nil {
		return def, fmt.Errorf("invalid duration: %w", err)
	}
	def.Duration = d
	return def, nil
}
