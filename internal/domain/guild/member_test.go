package guild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
)

func TestNewMember_StartsAtLevelOneAndIdle(t *testing.T) {
	m := guild.NewMember(guild.RoleScout)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "New Scout", m.Name)
	assert.Equal(t, 1, m.Level)
	assert.False(t, m.OnExpedition)
}

func TestMember_UpgradeCostGrowsWithLevel(t *testing.T) {
	m := guild.NewMember(guild.RoleArtisan)

	first := m.UpgradeCost(guild.DefaultUpgradeBaseCost)
	m.LevelUp()
	second := m.UpgradeCost(guild.DefaultUpgradeBaseCost)

	assert.Equal(t, 100, first)
	assert.Equal(t, 200, second)
	assert.Equal(t, 2, m.Level)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    guild.Role
		wantErr bool
	}{
		{"scout", guild.RoleScout, false},
		{" Gatherer ", guild.RoleGatherer, false},
		{"GUARDIAN", guild.RoleGuardian, false},
		{"bard", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := guild.ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
