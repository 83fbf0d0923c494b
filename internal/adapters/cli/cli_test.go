package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  type: sqlite\n  path: " + filepath.Join(dir, "sanctuary.db") + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_PlayerLifecycle(t *testing.T) {
	cfg := writeTestConfig(t)

	out := mustRun(t, "--config", cfg, "player", "register", "--name", "ash", "--currency", "1200", "--item", "wheat=2")
	assert.Contains(t, out, "Player registered successfully")
	assert.Contains(t, out, "1,200")

	out = mustRun(t, "--config", cfg, "player", "list")
	assert.Contains(t, out, "ash")

	out = mustRun(t, "--config", cfg, "--player", "ash", "garden", "plant", "--item", "wheat")
	assert.Contains(t, out, "Planted wheat")
	assert.Contains(t, out, "Remaining:   1")

	out = mustRun(t, "--config", cfg, "--player", "ash", "guild", "hire", "--role", "scout")
	assert.Contains(t, out, "Hired New Scout")
	memberID := regexp.MustCompile(`Member ID: (\S+)`).FindStringSubmatch(out)
	require.Len(t, memberID, 2)

	out = mustRun(t, "--config", cfg, "--player", "ash", "guild", "upgrade", memberID[1])
	assert.Contains(t, out, "is now level 2")

	out = mustRun(t, "--config", cfg, "--player", "ash", "expedition", "launch", "--expedition", "E1", "--member", memberID[1])
	assert.Contains(t, out, "Launched E1")

	out = mustRun(t, "--config", cfg, "--player", "ash", "expedition", "reconcile")
	assert.Contains(t, out, "E1")
	assert.Contains(t, out, "Total XP: 30")

	out = mustRun(t, "--config", cfg, "--player", "ash", "state")
	assert.Contains(t, out, "New Scout")
	assert.Contains(t, out, "available")

	out = mustRun(t, "--config", cfg, "--player", "ash", "ledger", "list", "--asc")
	assert.Contains(t, out, "HIRE_GUILD_MEMBER")
	assert.Contains(t, out, "EXPEDITION_PAYOUT")
	assert.Contains(t, out, "Total: 3 transactions")

	_, err := run(t, "--config", cfg, "--player", "ash", "player", "delete")
	assert.Error(t, err)

	mustRun(t, "--config", cfg, "--player", "ash", "player", "delete", "--yes")
	out = mustRun(t, "--config", cfg, "player", "list")
	assert.Contains(t, out, "No players registered.")
}

func TestCLI_EngineErrorsSurface(t *testing.T) {
	cfg := writeTestConfig(t)
	mustRun(t, "--config", cfg, "player", "register", "--name", "birch", "--currency", "10")

	_, err := run(t, "--config", cfg, "--player", "birch", "guild", "hire", "--role", "SCOUT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient")

	_, err = run(t, "--config", cfg, "--player", "birch", "garden", "plant", "--item", "stone")
	assert.Error(t, err)

	_, err = run(t, "--config", cfg, "--player", "nobody", "state")
	assert.Error(t, err)
}

func TestCLI_CatalogListsBuiltInDefinitions(t *testing.T) {
	cfg := writeTestConfig(t)

	out := mustRun(t, "--config", cfg, "catalog", "items", "--plantable")
	assert.Contains(t, out, "sunflower_seed")
	assert.NotContains(t, out, "stone")

	out = mustRun(t, "--config", cfg, "catalog", "expeditions")
	assert.Contains(t, out, "meadow_survey")
	assert.Contains(t, out, "30m0s")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "0", formatCurrency(0))
	assert.Equal(t, "999", formatCurrency(999))
	assert.Equal(t, "1,000", formatCurrency(1000))
	assert.Equal(t, "-1,234,567", formatCurrency(-1234567))
	assert.Equal(t, "+250", formatAmount(250))
	assert.Equal(t, "-250", formatAmount(-250))
}

func TestMaskPassword(t *testing.T) {
	masked := maskPassword("postgres://sanctuary:secret@db:5432/sanctuary")
	assert.NotContains(t, masked, "secret")
	assert.Contains(t, masked, "@db:5432/sanctuary")
	assert.Equal(t, "postgres://db:5432/sanctuary", maskPassword("postgres://db:5432/sanctuary"))
}
