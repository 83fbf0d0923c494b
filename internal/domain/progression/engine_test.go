package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

var now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func reward(r catalog.HarvestReward) *catalog.HarvestReward {
	return &r
}

func testCatalog() *catalog.StaticCatalog {
	return catalog.MustNewStaticCatalog(
		[]catalog.ItemDefinition{
			{ID: "seed1", Name: "Habit Seed", PlantableKind: catalog.PlantableKindSeed},
			{ID: "wheat", Name: "Wheat", PlantableKind: catalog.PlantableKindCrop, HarvestReward: reward(catalog.CurrencyReward(40))},
			{ID: "oak", Name: "Oak Sapling", PlantableKind: catalog.PlantableKindTree, HarvestReward: reward(catalog.ItemReward("acorn", 3))},
			{ID: "sage", Name: "Sage", PlantableKind: catalog.PlantableKindCrop, HarvestReward: reward(catalog.ExperienceReward("herbalism", 25))},
			{ID: "stone", Name: "Stone"},
		},
		[]catalog.ExpeditionDefinition{
			{ID: "E1", Name: "Quick Scout", Duration: 0, XPReward: 30},
			{ID: "E2", Name: "Long Haul", Duration: 2 * time.Hour, XPReward: 120},
		},
	)
}

type recordingXP struct {
	calls []string
}

func (r *recordingXP) GrantXP(p *player.Player, skillID string, amount int) any {
	r.calls = append(r.calls, skillID)
	return p.AddSkillXP(skillID, amount)
}

func newEngine(policy progression.Policy) (*progression.Engine, *recordingXP) {
	xp := &recordingXP{}
	return progression.NewEngine(testCatalog(), xp, policy), xp
}

func newPlayer(currency int) *player.Player {
	return player.NewPlayer(shared.MustNewPlayerID(1), "Wren", currency, now)
}

// Plant

func TestPlant_ConsumesItemAndCreatesGrowable(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("wheat", 2)

	g, err := engine.Plant(p, "wheat", now)

	require.NoError(t, err)
	assert.Equal(t, catalog.PlantableKindCrop, g.Kind)
	assert.Equal(t, "wheat", g.DefinitionID)
	assert.Equal(t, now, g.PlantedAt)
	assert.Equal(t, 1, p.Inventory.Quantity("wheat"))
	assert.Len(t, p.Growables, 1)
}

func TestPlant_ItemNotInInventoryFailsWithoutMutation(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)

	g, err := engine.Plant(p, "wheat", now)

	assert.Nil(t, g)
	var notOwned *shared.NotOwnedError
	require.ErrorAs(t, err, &notOwned)
	var qtyErr *shared.InsufficientQuantityError
	assert.ErrorAs(t, err, &qtyErr)
	assert.Empty(t, p.Growables)
	assert.Empty(t, p.DeletedEntities())
}

func TestPlant_UnknownDefinition(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("mystery", 1)

	_, err := engine.Plant(p, "mystery", now)

	var unknown *shared.UnknownDefinitionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 1, p.Inventory.Quantity("mystery"))
}

func TestPlant_NotPlantable(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("stone", 1)

	_, err := engine.Plant(p, "stone", now)

	var notPlantable *shared.NotPlantableError
	require.ErrorAs(t, err, &notPlantable)
	assert.Equal(t, 1, p.Inventory.Quantity("stone"))
	assert.Empty(t, p.Growables)
}

// Harvest

func TestPlantThenHarvest_FallbackRewardWhenNoneDefined(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("seed1", 1)

	g, err := engine.Plant(p, "seed1", now)
	require.NoError(t, err)
	assert.False(t, p.Inventory.Has("seed1"))

	outcome, err := engine.Harvest(p, g.ID, now)

	require.NoError(t, err)
	assert.True(t, outcome.UsedFallback)
	assert.Equal(t, 10, p.Currency)
	assert.False(t, p.Inventory.Has("seed1"))
	assert.Empty(t, p.Growables)

	txs := p.PendingTransactions()
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.TransactionTypeHarvestFallback, txs[0].TransactionType())
}

func TestHarvest_CurrencyReward(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(5)
	p.GrantItem("wheat", 1)
	g, err := engine.Plant(p, "wheat", now)
	require.NoError(t, err)

	outcome, err := engine.Harvest(p, g.ID, now)

	require.NoError(t, err)
	assert.False(t, outcome.UsedFallback)
	assert.Equal(t, catalog.CurrencyReward(40), outcome.Reward)
	assert.Equal(t, 45, p.Currency)
}

func TestHarvest_ItemRewardGrantsInventory(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("oak", 1)
	p.GrantItem("acorn", 1)
	g, err := engine.Plant(p, "oak", now)
	require.NoError(t, err)

	_, err = engine.Harvest(p, g.ID, now)

	require.NoError(t, err)
	assert.Equal(t, 4, p.Inventory.Quantity("acorn"))
	assert.Equal(t, 0, p.Currency)
}

func TestHarvest_ExperienceRewardGoesThroughCollaborator(t *testing.T) {
	engine, xp := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("sage", 1)
	g, err := engine.Plant(p, "sage", now)
	require.NoError(t, err)

	_, err = engine.Harvest(p, g.ID, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"herbalism"}, xp.calls)
	assert.Equal(t, 25, p.SkillXP["herbalism"])
}

func TestHarvest_IsNotRetryable(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("wheat", 1)
	g, err := engine.Plant(p, "wheat", now)
	require.NoError(t, err)
	_, err = engine.Harvest(p, g.ID, now)
	require.NoError(t, err)

	_, err = engine.Harvest(p, g.ID, now)

	var notFound *shared.GrowableNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 40, p.Currency)
}

func TestHarvest_DefinitionRemovedFromCatalogStillRemovesGrowable(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)
	p.GrantItem("wheat", 1)
	g, err := engine.Plant(p, "wheat", now)
	require.NoError(t, err)
	g.DefinitionID = "retired-crop"

	outcome, err := engine.Harvest(p, g.ID, now)

	require.NoError(t, err)
	assert.True(t, outcome.UsedFallback)
	assert.Equal(t, 10, p.Currency)
	assert.Empty(t, p.Growables)
}

// Guild

func TestHire_DebitsExactlyHireCost(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(300)

	m, err := engine.Hire(p, guild.RoleScout, now)

	require.NoError(t, err)
	assert.Equal(t, 50, p.Currency)
	require.Len(t, p.GuildMembers, 1)
	assert.Equal(t, m, p.GuildMembers[0])
	assert.Equal(t, 1, m.Level)
	assert.False(t, m.OnExpedition)
	assert.Equal(t, "New Scout", m.Name)
}

func TestHire_InsufficientFundsMutatesNothing(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(249)

	_, err := engine.Hire(p, guild.RoleGatherer, now)

	var fundsErr *shared.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 250, fundsErr.Required)
	assert.Equal(t, 249, p.Currency)
	assert.Empty(t, p.GuildMembers)
	assert.Empty(t, p.PendingTransactions())
}

func TestHire_RejectsUnknownRole(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(1000)

	_, err := engine.Hire(p, guild.Role("BARD"), now)

	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, 1000, p.Currency)
}

func TestUpgrade_RaisesLevelByOneAndDebitsCost(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(1000)
	m, err := engine.Hire(p, guild.RoleArtisan, now)
	require.NoError(t, err)

	_, err = engine.Upgrade(p, m.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Level)
	assert.Equal(t, 650, p.Currency)

	_, err = engine.Upgrade(p, m.ID, now)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Level)
	assert.Equal(t, 450, p.Currency)
}

func TestUpgrade_InsufficientFundsMutatesNothing(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(299)
	m, err := engine.Hire(p, guild.RoleGuardian, now)
	require.NoError(t, err)
	m.Level = 1

	_, err = engine.Upgrade(p, m.ID, now)

	var fundsErr *shared.InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, 1, m.Level)
	assert.Equal(t, 49, p.Currency)
}

func TestUpgrade_UnknownMember(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(1000)

	_, err := engine.Upgrade(p, "ghost", now)

	var unknown *shared.UnknownMemberError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 1000, p.Currency)
}

// Expeditions

func TestLaunchExpedition_FlagsMembersAndSetsEndTime(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(600)
	a, _ := engine.Hire(p, guild.RoleScout, now)
	b, _ := engine.Hire(p, guild.RoleGuardian, now)

	exp, err := engine.LaunchExpedition(p, "E2", []string{a.ID, b.ID}, now)

	require.NoError(t, err)
	assert.True(t, a.OnExpedition)
	assert.True(t, b.OnExpedition)
	require.Len(t, p.Expeditions, 1)
	assert.Equal(t, now, exp.StartTime)
	assert.Equal(t, now.Add(2*time.Hour), exp.EndTime)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, exp.MemberIDs)
}

func TestLaunchExpedition_LenientSkipsUnknownAndBusyMembers(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(600)
	a, _ := engine.Hire(p, guild.RoleScout, now)
	b, _ := engine.Hire(p, guild.RoleGatherer, now)
	_, err := engine.LaunchExpedition(p, "E2", []string{b.ID}, now)
	require.NoError(t, err)

	exp, err := engine.LaunchExpedition(p, "E2", []string{a.ID, "ghost", b.ID, a.ID}, now)

	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, exp.MemberIDs)
	assert.Len(t, p.Expeditions, 2)
}

func TestLaunchExpedition_StrictRejectsUnknownMemberWithoutMutation(t *testing.T) {
	policy := progression.DefaultPolicy()
	policy.StrictMembers = true
	engine, _ := newEngine(policy)
	p := newPlayer(300)
	a, _ := engine.Hire(p, guild.RoleScout, now)

	_, err := engine.LaunchExpedition(p, "E2", []string{a.ID, "ghost"}, now)

	var unknown *shared.UnknownMemberError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.MemberID)
	assert.False(t, a.OnExpedition)
	assert.Empty(t, p.Expeditions)
}

func TestLaunchExpedition_StrictRejectsBusyMember(t *testing.T) {
	policy := progression.DefaultPolicy()
	policy.StrictMembers = true
	engine, _ := newEngine(policy)
	p := newPlayer(300)
	a, _ := engine.Hire(p, guild.RoleScout, now)
	_, err := engine.LaunchExpedition(p, "E2", []string{a.ID}, now)
	require.NoError(t, err)

	_, err = engine.LaunchExpedition(p, "E1", []string{a.ID}, now)

	var busy *shared.MemberBusyError
	require.ErrorAs(t, err, &busy)
	assert.Len(t, p.Expeditions, 1)
}

func TestLaunchExpedition_EmptyParty(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(0)

	_, err := engine.LaunchExpedition(p, "E1", nil, now)
	var empty *shared.EmptyPartyError
	require.ErrorAs(t, err, &empty)

	_, err = engine.LaunchExpedition(p, "E1", []string{"ghost"}, now)
	require.ErrorAs(t, err, &empty)
	assert.Empty(t, p.Expeditions)
}

func TestLaunchExpedition_UnknownDefinitionIsImmediatelyEligible(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(300)
	a, _ := engine.Hire(p, guild.RoleScout, now)

	exp, err := engine.LaunchExpedition(p, "uncharted", []string{a.ID}, now)

	require.NoError(t, err)
	assert.Equal(t, exp.StartTime, exp.EndTime)
	assert.True(t, exp.IsComplete(now))
}

func TestLaunchExpedition_UnknownDefinitionRejectedWhenRequired(t *testing.T) {
	policy := progression.DefaultPolicy()
	policy.RequireKnownExpedition = true
	engine, _ := newEngine(policy)
	p := newPlayer(300)
	a, _ := engine.Hire(p, guild.RoleScout, now)

	_, err := engine.LaunchExpedition(p, "uncharted", []string{a.ID}, now)

	var unknown *shared.UnknownDefinitionError
	require.ErrorAs(t, err, &unknown)
	assert.False(t, a.OnExpedition)
}

func TestReconcile_SettlesCompletedExpeditionsOnce(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(300)
	a, _ := engine.Hire(p, guild.RoleScout, now)
	exp, err := engine.LaunchExpedition(p, "E2", []string{a.ID}, now)
	require.NoError(t, err)

	early := engine.ReconcileExpeditions(p, now.Add(time.Hour))
	assert.Empty(t, early.Settled)
	assert.True(t, a.OnExpedition)

	result := engine.ReconcileExpeditions(p, exp.EndTime)
	require.Len(t, result.Settled, 1)
	assert.Equal(t, 120, result.Settled[0].XPAwarded)
	assert.Equal(t, 100, result.Settled[0].CurrencyAwarded)
	assert.Equal(t, 150, p.Currency)
	assert.Equal(t, 120, p.TotalXP)
	assert.False(t, a.OnExpedition)
	assert.Empty(t, p.Expeditions)

	again := engine.ReconcileExpeditions(p, exp.EndTime.Add(time.Hour))
	assert.Empty(t, again.Settled)
	assert.Equal(t, 150, p.Currency)
	assert.Equal(t, 120, p.TotalXP)
}

func TestReconcile_UnknownDefinitionPaysZeroXP(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(250)
	a, _ := engine.Hire(p, guild.RoleScout, now)
	_, err := engine.LaunchExpedition(p, "uncharted", []string{a.ID}, now)
	require.NoError(t, err)

	result := engine.ReconcileExpeditions(p, now)

	require.Len(t, result.Settled, 1)
	assert.False(t, result.Settled[0].DefinitionKnown)
	assert.Equal(t, 0, p.TotalXP)
	assert.Equal(t, 100, p.Currency)
}

func TestScoutScenario(t *testing.T) {
	engine, _ := newEngine(progression.DefaultPolicy())
	p := newPlayer(300)

	scout, err := engine.Hire(p, guild.RoleScout, now)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Currency)

	exp, err := engine.LaunchExpedition(p, "E1", []string{scout.ID}, now)
	require.NoError(t, err)
	assert.False(t, exp.EndTime.After(now))

	result := engine.ReconcileExpeditions(p, now)

	assert.Len(t, result.Settled, 1)
	assert.Empty(t, p.Expeditions)
	assert.Equal(t, 150, p.Currency)
	assert.False(t, scout.OnExpedition)
	assert.Equal(t, 30, p.TotalXP)
	assert.Equal(t, 100, result.TotalCurrency())
	assert.Equal(t, 30, result.TotalXP())

	txs := p.PendingTransactions()
	require.Len(t, txs, 2)
	assert.Equal(t, ledger.TransactionTypeHireGuildMember, txs[0].TransactionType())
	assert.Equal(t, ledger.TransactionTypeExpeditionPayout, txs[1].TransactionType())
}

func TestRewardResolver_NilCollaboratorUpdatesSkillXP(t *testing.T) {
	resolver := progression.NewRewardResolver(nil)
	p := newPlayer(0)

	resolver.Apply(p, catalog.ExperienceReward("mining", 12), player.CurrencyEntry{})

	assert.Equal(t, 12, p.SkillXP["mining"])
}
