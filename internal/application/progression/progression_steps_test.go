package progression

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	ledgerQueries "github.com/andrescamacho/sanctuary-go/internal/application/ledger/queries"
	playerCommands "github.com/andrescamacho/sanctuary-go/internal/application/player/commands"
	"github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
	"github.com/andrescamacho/sanctuary-go/internal/application/progression/queries"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
)

// progressionContext holds state for the garden, guild and expedition scenarios
type progressionContext struct {
	app       *bootstrap.App
	clock     *shared.MockClock
	playerID  int
	members   map[string]string
	growables map[string]string
	lastErr   error
}

func InitializeProgressionScenario(ctx *godog.ScenarioContext) {
	c := &progressionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if c.app != nil {
			c.app.Close()
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a player "([^"]*)" with (\d+) currency$`, c.aPlayerWithCurrency)
	ctx.Step(`^the player holds:$`, c.thePlayerHolds)

	// When steps
	ctx.Step(`^the player plants "([^"]*)"$`, c.thePlayerPlants)
	ctx.Step(`^the player harvests the growable of "([^"]*)"$`, c.thePlayerHarvestsTheGrowableOf)
	ctx.Step(`^the player hires a "([^"]*)" as "([^"]*)"$`, c.thePlayerHiresAs)
	ctx.Step(`^the player upgrades "([^"]*)"$`, c.thePlayerUpgrades)
	ctx.Step(`^the player launches "([^"]*)" with "([^"]*)"$`, c.thePlayerLaunchesWith)
	ctx.Step(`^the player reconciles expeditions$`, c.thePlayerReconcilesExpeditions)
	ctx.Step(`^(\d+) (minutes|hours) pass$`, c.timePasses)

	// Then steps
	ctx.Step(`^the operation should succeed$`, c.theOperationShouldSucceed)
	ctx.Step(`^the operation should fail with (\w+)$`, c.theOperationShouldFailWith)
	ctx.Step(`^the player should have (\d+) currency$`, c.thePlayerShouldHaveCurrency)
	ctx.Step(`^the player should hold (\d+) "([^"]*)"$`, c.thePlayerShouldHold)
	ctx.Step(`^the player should hold no "([^"]*)"$`, c.thePlayerShouldHoldNo)
	ctx.Step(`^the player should have (\d+) growables?$`, c.thePlayerShouldHaveGrowables)
	ctx.Step(`^the player should have (\d+) guild members?$`, c.thePlayerShouldHaveGuildMembers)
	ctx.Step(`^the player should have (\d+) active expeditions?$`, c.thePlayerShouldHaveActiveExpeditions)
	ctx.Step(`^the player should have (\d+) total experience$`, c.thePlayerShouldHaveTotalExperience)
	ctx.Step(`^the player should have (\d+) "([^"]*)" experience$`, c.thePlayerShouldHaveSkillExperience)
	ctx.Step(`^member "([^"]*)" should be level (\d+)$`, c.memberShouldBeLevel)
	ctx.Step(`^member "([^"]*)" should be named "([^"]*)"$`, c.memberShouldBeNamed)
	ctx.Step(`^member "([^"]*)" should be on an expedition$`, c.memberShouldBeOnAnExpedition)
	ctx.Step(`^member "([^"]*)" should be available$`, c.memberShouldBeAvailable)
	ctx.Step(`^the ledger should contain:$`, c.theLedgerShouldContain)
}

func (c *progressionContext) reset() error {
	if c.app != nil {
		c.app.Close()
	}

	cfg := &config.Config{}
	cfg.Database.Type = "memory"
	cfg.Logging.Level = "error"
	cfg.Catalog.Path = "features/catalog.yaml"
	config.SetDefaults(cfg)

	c.clock = shared.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	app, err := bootstrap.New(cfg, bootstrap.Options{Clock: c.clock})
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	c.app = app
	c.playerID = 0
	c.members = make(map[string]string)
	c.growables = make(map[string]string)
	c.lastErr = nil
	return nil
}

func (c *progressionContext) send(request interface{}) (interface{}, error) {
	resp, err := c.app.Mediator.Send(context.Background(), request)
	c.lastErr = err
	return resp, err
}

func (c *progressionContext) state() (*queries.PlayerStateDTO, error) {
	resp, err := c.app.Mediator.Send(context.Background(), &queries.GetPlayerStateQuery{PlayerID: c.playerID})
	if err != nil {
		return nil, err
	}
	return resp.(*queries.GetPlayerStateResponse).State, nil
}

func (c *progressionContext) member(alias string) (*queries.MemberDTO, error) {
	state, err := c.state()
	if err != nil {
		return nil, err
	}
	id, ok := c.members[alias]
	if !ok {
		return nil, fmt.Errorf("no member hired as %q", alias)
	}
	for i := range state.Members {
		if state.Members[i].ID == id {
			return &state.Members[i], nil
		}
	}
	return nil, fmt.Errorf("member %q is not on the roster", alias)
}

// ============================================================================
// Given Steps
// ============================================================================

func (c *progressionContext) aPlayerWithCurrency(name string, currency int) error {
	resp, err := c.app.Mediator.Send(context.Background(), &playerCommands.RegisterPlayerCommand{
		Name:             name,
		StartingCurrency: &currency,
	})
	if err != nil {
		return err
	}
	c.playerID = resp.(*playerCommands.RegisterPlayerResponse).Player.ID.Value()
	return nil
}

// thePlayerHolds re-registers the player with the table as starting inventory
func (c *progressionContext) thePlayerHolds(table *godog.Table) error {
	inventory := make(map[string]int)
	for _, row := range table.Rows[1:] {
		qty, err := strconv.Atoi(cellValue(table, row, "quantity"))
		if err != nil {
			return err
		}
		inventory[cellValue(table, row, "item")] = qty
	}

	state, err := c.state()
	if err != nil {
		return err
	}
	if _, err := c.app.Mediator.Send(context.Background(), &playerCommands.DeletePlayerCommand{PlayerID: c.playerID}); err != nil {
		return err
	}

	currency := state.Currency
	resp, err := c.app.Mediator.Send(context.Background(), &playerCommands.RegisterPlayerCommand{
		Name:              state.Name,
		StartingCurrency:  &currency,
		StartingInventory: inventory,
	})
	if err != nil {
		return err
	}
	c.playerID = resp.(*playerCommands.RegisterPlayerResponse).Player.ID.Value()
	return nil
}

// ============================================================================
// When Steps
// ============================================================================

func (c *progressionContext) thePlayerPlants(item string) error {
	resp, err := c.send(&commands.PlantCommand{PlayerID: c.playerID, DefinitionID: item})
	if err == nil {
		c.growables[item] = resp.(*commands.PlantResponse).Growable.ID
	}
	return nil
}

func (c *progressionContext) thePlayerHarvestsTheGrowableOf(item string) error {
	id, ok := c.growables[item]
	if !ok {
		return fmt.Errorf("nothing planted from %q", item)
	}
	_, _ = c.send(&commands.HarvestCommand{PlayerID: c.playerID, GrowableID: id})
	return nil
}

func (c *progressionContext) thePlayerHiresAs(role, alias string) error {
	resp, err := c.send(&commands.HireGuildMemberCommand{PlayerID: c.playerID, Role: role})
	if err == nil {
		c.members[alias] = resp.(*commands.HireGuildMemberResponse).Member.ID
	}
	return nil
}

func (c *progressionContext) thePlayerUpgrades(alias string) error {
	id, ok := c.members[alias]
	if !ok {
		id = alias
	}
	_, _ = c.send(&commands.UpgradeGuildMemberCommand{PlayerID: c.playerID, MemberID: id})
	return nil
}

func (c *progressionContext) thePlayerLaunchesWith(definitionID, aliases string) error {
	var ids []string
	for _, alias := range strings.Split(aliases, ",") {
		alias = strings.TrimSpace(alias)
		if id, ok := c.members[alias]; ok {
			ids = append(ids, id)
		} else {
			ids = append(ids, alias)
		}
	}
	_, _ = c.send(&commands.LaunchExpeditionCommand{PlayerID: c.playerID, DefinitionID: definitionID, MemberIDs: ids})
	return nil
}

func (c *progressionContext) thePlayerReconcilesExpeditions() error {
	_, err := c.send(&commands.ReconcileExpeditionsCommand{PlayerID: c.playerID})
	return err
}

func (c *progressionContext) timePasses(amount int, unit string) error {
	d := time.Duration(amount) * time.Minute
	if unit == "hours" {
		d = time.Duration(amount) * time.Hour
	}
	c.clock.Advance(d)
	return nil
}

// ============================================================================
// Then Steps
// ============================================================================

func (c *progressionContext) theOperationShouldSucceed() error {
	if c.lastErr != nil {
		return fmt.Errorf("expected success, got: %w", c.lastErr)
	}
	return nil
}

func (c *progressionContext) theOperationShouldFailWith(kind string) error {
	if c.lastErr == nil {
		return fmt.Errorf("expected %s, operation succeeded", kind)
	}

	var matched bool
	switch kind {
	case "UnknownDefinition":
		var target *shared.UnknownDefinitionError
		matched = errors.As(c.lastErr, &target)
	case "NotPlantable":
		var target *shared.NotPlantableError
		matched = errors.As(c.lastErr, &target)
	case "NotOwned":
		var target *shared.NotOwnedError
		matched = errors.As(c.lastErr, &target)
	case "InsufficientFunds":
		var target *shared.InsufficientFundsError
		matched = errors.As(c.lastErr, &target)
	case "GrowableNotFound":
		var target *shared.GrowableNotFoundError
		matched = errors.As(c.lastErr, &target)
	case "UnknownMember":
		var target *shared.UnknownMemberError
		matched = errors.As(c.lastErr, &target)
	case "MemberBusy":
		var target *shared.MemberBusyError
		matched = errors.As(c.lastErr, &target)
	case "EmptyParty":
		var target *shared.EmptyPartyError
		matched = errors.As(c.lastErr, &target)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}

	if !matched {
		return fmt.Errorf("expected %s, got: %v", kind, c.lastErr)
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveCurrency(expected int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.Currency != expected {
		return fmt.Errorf("expected %d currency, got %d", expected, state.Currency)
	}
	return nil
}

func (c *progressionContext) quantityOf(item string) (int, bool, error) {
	state, err := c.state()
	if err != nil {
		return 0, false, err
	}
	for _, stack := range state.Inventory {
		if stack.ItemID == item {
			return stack.Quantity, true, nil
		}
	}
	return 0, false, nil
}

func (c *progressionContext) thePlayerShouldHold(expected int, item string) error {
	qty, _, err := c.quantityOf(item)
	if err != nil {
		return err
	}
	if qty != expected {
		return fmt.Errorf("expected %d %s, got %d", expected, item, qty)
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHoldNo(item string) error {
	qty, found, err := c.quantityOf(item)
	if err != nil {
		return err
	}
	if found {
		return fmt.Errorf("expected no %s stack, found %d", item, qty)
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveGrowables(expected int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if len(state.Growables) != expected {
		return fmt.Errorf("expected %d growables, got %d", expected, len(state.Growables))
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveGuildMembers(expected int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if len(state.Members) != expected {
		return fmt.Errorf("expected %d guild members, got %d", expected, len(state.Members))
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveActiveExpeditions(expected int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if len(state.Expeditions) != expected {
		return fmt.Errorf("expected %d active expeditions, got %d", expected, len(state.Expeditions))
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveTotalExperience(expected int) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.TotalXP != expected {
		return fmt.Errorf("expected %d total experience, got %d", expected, state.TotalXP)
	}
	return nil
}

func (c *progressionContext) thePlayerShouldHaveSkillExperience(expected int, skill string) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	if state.SkillXP[skill] != expected {
		return fmt.Errorf("expected %d %s experience, got %d", expected, skill, state.SkillXP[skill])
	}
	return nil
}

func (c *progressionContext) memberShouldBeLevel(alias string, expected int) error {
	m, err := c.member(alias)
	if err != nil {
		return err
	}
	if m.Level != expected {
		return fmt.Errorf("expected %s at level %d, got %d", alias, expected, m.Level)
	}
	return nil
}

func (c *progressionContext) memberShouldBeNamed(alias, expected string) error {
	m, err := c.member(alias)
	if err != nil {
		return err
	}
	if m.Name != expected {
		return fmt.Errorf("expected %s to be named %q, got %q", alias, expected, m.Name)
	}
	return nil
}

func (c *progressionContext) memberShouldBeOnAnExpedition(alias string) error {
	m, err := c.member(alias)
	if err != nil {
		return err
	}
	if !m.OnExpedition {
		return fmt.Errorf("expected %s to be on an expedition", alias)
	}
	return nil
}

func (c *progressionContext) memberShouldBeAvailable(alias string) error {
	m, err := c.member(alias)
	if err != nil {
		return err
	}
	if m.OnExpedition {
		return fmt.Errorf("expected %s to be available", alias)
	}
	return nil
}

func (c *progressionContext) theLedgerShouldContain(table *godog.Table) error {
	resp, err := c.app.Mediator.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{
		PlayerID: c.playerID,
		OrderBy:  "timestamp_asc",
	})
	if err != nil {
		return err
	}
	txs := resp.(*ledgerQueries.GetTransactionsResponse).Transactions

	rows := table.Rows[1:]
	if len(txs) != len(rows) {
		return fmt.Errorf("expected %d transactions, got %d", len(rows), len(txs))
	}

	for i, row := range rows {
		tx := txs[i]
		if want := cellValue(table, row, "type"); tx.Type != want {
			return fmt.Errorf("transaction %d: expected type %s, got %s", i, want, tx.Type)
		}
		if want := cellValue(table, row, "amount"); strconv.Itoa(tx.Amount) != want {
			return fmt.Errorf("transaction %d: expected amount %s, got %d", i, want, tx.Amount)
		}
		if want := cellValue(table, row, "balance_after"); strconv.Itoa(tx.BalanceAfter) != want {
			return fmt.Errorf("transaction %d: expected balance %s, got %d", i, want, tx.BalanceAfter)
		}
	}
	return nil
}

// cellValue returns the cell of row under the header column, or "" when absent
func cellValue(table *godog.Table, row *messages.PickleTableRow, column string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == column {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}
