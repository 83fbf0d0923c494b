package catalog

import (
	"fmt"
	"time"
)

// PlantableKind is the growable kind an item turns into when planted
type PlantableKind string

const (
	PlantableKindSeed PlantableKind = "SEED"
	PlantableKindCrop PlantableKind = "CROP"
	PlantableKindTree PlantableKind = "TREE"
)

func (k PlantableKind) String() string {
	return string(k)
}

// IsValid checks if the plantable kind is known
func (k PlantableKind) IsValid() bool {
	switch k {
	case PlantableKindSeed, PlantableKindCrop, PlantableKindTree:
		return true
	default:
		return false
	}
}

// ParsePlantableKind parses a string into a PlantableKind
func ParsePlantableKind(s string) (PlantableKind, error) {
	k := PlantableKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid plantable kind: %s", s)
	}
	return k, nil
}

// ItemDefinition is the static description of an item.
// PlantableKind is empty for items that cannot be planted; HarvestReward is nil when
// harvesting the item's growable has no defined payout.
type ItemDefinition struct {
	ID            string
	Name          string
	PlantableKind PlantableKind
	HarvestReward *HarvestReward
}

// IsPlantable reports whether the item can be planted
func (d ItemDefinition) IsPlantable() bool {
	return d.PlantableKind != ""
}

// ExpeditionDefinition is the static description of an expedition
type ExpeditionDefinition struct {
	ID       string
	Name     string
	Duration time.Duration
	XPReward int
}
