package expedition_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/sanctuary-go/internal/domain/expedition"
)

func TestNewActiveExpedition_EndTimeIsStartPlusDuration(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	exp := expedition.NewActiveExpedition("E1", []string{"m1"}, start, 2*time.Hour)

	assert.Equal(t, start, exp.StartTime)
	assert.Equal(t, start.Add(2*time.Hour), exp.EndTime)
	assert.False(t, exp.IsComplete(start.Add(time.Hour)))
	assert.Equal(t, time.Hour, exp.Remaining(start.Add(time.Hour)))
	assert.True(t, exp.IsComplete(start.Add(2*time.Hour)))
}

func TestNewActiveExpedition_ZeroDurationIsImmediatelyComplete(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	exp := expedition.NewActiveExpedition("E1", []string{"m1"}, start, 0)

	assert.True(t, exp.IsComplete(start))
	assert.Equal(t, time.Duration(0), exp.Remaining(start))
}

func TestNewActiveExpedition_CopiesMemberIDs(t *testing.T) {
	ids := []string{"m1", "m2"}

	exp := expedition.NewActiveExpedition("E1", ids, time.Now(), time.Minute)
	ids[0] = "changed"

	assert.True(t, exp.Includes("m1"))
	assert.False(t, exp.Includes("changed"))
}
