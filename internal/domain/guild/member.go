package guild

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultHireCost is the currency price of a new member
	DefaultHireCost = 250

	// DefaultUpgradeBaseCost is multiplied by the member's level to price an upgrade
	DefaultUpgradeBaseCost = 100
)

// Role is the job a guild member was hired for
type Role string

const (
	RoleScout    Role = "SCOUT"
	RoleGatherer Role = "GATHERER"
	RoleArtisan  Role = "ARTISAN"
	RoleGuardian Role = "GUARDIAN"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleScout, RoleGatherer, RoleArtisan, RoleGuardian}
}

func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleScout, RoleGatherer, RoleArtisan, RoleGuardian:
		return true
	default:
		return false
	}
}

// Title returns the role as shown to players, e.g. "Scout"
func (r Role) Title() string {
	s := strings.ToLower(string(r))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole parses a role case-insensitively
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid guild role: %s", s)
	}
	return r, nil
}

// Member is a hired guild member.
//
// Invariants:
// - Level starts at 1 and only increases
// - OnExpedition is true iff the member is listed on an unsettled expedition
type Member struct {
	ID           string
	Name         string
	Role         Role
	Level        int
	OnExpedition bool
}

// NewMember creates a level 1 member named after its role
func NewMember(role Role) *Member {
	return &Member{
		ID:    uuid.New().String(),
		Name:  fmt.Sprintf("New %s", role.Title()),
		Role:  role,
		Level: 1,
	}
}

// UpgradeCost prices the next level: baseCost x current level
func (m *Member) UpgradeCost(baseCost int) int {
	return baseCost * m.Level
}

// LevelUp raises the member's level by exactly one
func (m *Member) LevelUp() {
	m.Level++
}
