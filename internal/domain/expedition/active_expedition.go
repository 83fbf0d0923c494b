package expedition

import (
	"time"

	"github.com/google/uuid"
)

// ActiveExpedition is a launched, not yet settled expedition.
// It has a single transition: settlement removes it from the player.
type ActiveExpedition struct {
	ID           string
	DefinitionID string
	MemberIDs    []string
	StartTime    time.Time
	EndTime      time.Time
}

// NewActiveExpedition launches an expedition at startTime lasting duration.
// A non-positive duration makes the expedition eligible for settlement immediately.
func NewActiveExpedition(definitionID string, memberIDs []string, startTime time.Time, duration time.Duration) *ActiveExpedition {
	if duration < 0 {
		duration = 0
	}
	members := make([]string, len(memberIDs))
	copy(members, memberIDs)

	return &ActiveExpedition{
		ID:           uuid.New().String(),
		DefinitionID: definitionID,
		MemberIDs:    members,
		StartTime:    startTime,
		EndTime:      startTime.Add(duration),
	}
}

// IsComplete reports whether the expedition can be settled at now (EndTime <= now)
func (e *ActiveExpedition) IsComplete(now time.Time) bool {
	return !e.EndTime.After(now)
}

// Remaining returns the time left before completion, zero once complete
func (e *ActiveExpedition) Remaining(now time.Time) time.Duration {
	if e.IsComplete(now) {
		return 0
	}
	return e.EndTime.Sub(now)
}

// Includes reports whether memberID is part of the expedition party
func (e *ActiveExpedition) Includes(memberID string) bool {
	for _, id := range e.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}
