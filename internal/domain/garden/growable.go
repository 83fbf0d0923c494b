package garden

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
)

// PlantedGrowable is a seed, crop or tree in the player's garden.
// One collection holds every kind; harvest dispatches on Kind and DefinitionID.
type PlantedGrowable struct {
	ID           string
	Kind         catalog.PlantableKind
	DefinitionID string
	PlantedAt    time.Time
}

// NewPlantedGrowable creates a freshly planted growable with a generated id
func NewPlantedGrowable(kind catalog.PlantableKind, definitionID string, plantedAt time.Time) *PlantedGrowable {
	return &PlantedGrowable{
		ID:           uuid.New().String(),
		Kind:         kind,
		DefinitionID: definitionID,
		PlantedAt:    plantedAt,
	}
}

// Age returns how long the growable has been in the ground at now
func (g *PlantedGrowable) Age(now time.Time) time.Duration {
	if now.Before(g.PlantedAt) {
		return 0
	}
	return now.Sub(g.PlantedAt)
}
