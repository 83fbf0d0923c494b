package shared

import (
	"fmt"
	"strconv"
)

// PlayerID is a value object identifying the aggregate every engine operation works on
type PlayerID struct {
	value int
}

// NewPlayerID creates a new PlayerID value object
func NewPlayerID(id int) (PlayerID, error) {
	if id <= 0 {
		return PlayerID{}, NewValidationError("player_id", "must be positive")
	}
	return PlayerID{value: id}, nil
}

// MustNewPlayerID creates a PlayerID, panicking if invalid.
// Use only for ids that come from storage.
func MustNewPlayerID(id int) PlayerID {
	playerID, err := NewPlayerID(id)
	if err != nil {
		panic(err)
	}
	return playerID
}

// ParsePlayerID parses a decimal player id, as typed on the command line
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return PlayerID{}, NewValidationError("player_id", fmt.Sprintf("not a number: %q", s))
	}
	return NewPlayerID(id)
}

// Value returns the integer value of the PlayerID
func (p PlayerID) Value() int {
	return p.value
}

func (p PlayerID) String() string {
	return strconv.Itoa(p.value)
}

// Equals checks if two PlayerIDs are equal
func (p PlayerID) Equals(other PlayerID) bool {
	return p.value == other.value
}

// IsZero reports whether the PlayerID is uninitialized
func (p PlayerID) IsZero() bool {
	return p.value == 0
}
