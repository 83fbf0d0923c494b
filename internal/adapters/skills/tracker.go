package skills

import (
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
)

// DefaultXPPerLevel is the experience each skill level takes
const DefaultXPPerLevel = 100

// Grant reports the effect of one experience award
type Grant struct {
	SkillID  string
	Amount   int
	Total    int
	OldLevel int
	NewLevel int
}

// LeveledUp reports whether the award crossed at least one level boundary
func (g Grant) LeveledUp() bool {
	return g.NewLevel > g.OldLevel
}

// Tracker is the experience collaborator of the progression engine.
// It stores per-skill experience on the player and mirrors it into TotalXP.
type Tracker struct {
	xpPerLevel int
	onLevelUp  func(p *player.Player, g Grant)
}

// NewTracker creates a tracker; onLevelUp may be nil
func NewTracker(xpPerLevel int, onLevelUp func(p *player.Player, g Grant)) *Tracker {
	if xpPerLevel <= 0 {
		xpPerLevel = DefaultXPPerLevel
	}
	return &Tracker{xpPerLevel: xpPerLevel, onLevelUp: onLevelUp}
}

// Level returns the level reached with xp experience; level 1 starts at zero
func (t *Tracker) Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/t.xpPerLevel
}

// GrantXP implements progression.XPGranter. Awards without a skill id or with a
// non-positive amount change nothing and return nil; otherwise the result is a Grant.
func (t *Tracker) GrantXP(p *player.Player, skillID string, amount int) any {
	if skillID == "" || amount <= 0 {
		return nil
	}

	before := p.SkillXP[skillID]
	total := p.AddSkillXP(skillID, amount)
	p.AddTotalXP(amount)

	g := Grant{
		SkillID:  skillID,
		Amount:   amount,
		Total:    total,
		OldLevel: t.Level(before),
		NewLevel: t.Level(total),
	}
	if g.LeveledUp() && t.onLevelUp != nil {
		t.onLevelUp(p, g)
	}
	return g
}

// Levels returns every skill's level for p
func (t *Tracker) Levels(p *player.Player) map[string]int {
	levels := make(map[string]int, len(p.SkillXP))
	for skill, xp := range p.SkillXP {
		levels[skill] = t.Level(xp)
	}
	return levels
}
