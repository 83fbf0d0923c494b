package player

import (
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/domain/expedition"
	"github.com/andrescamacho/sanctuary-go/internal/domain/garden"
	"github.com/andrescamacho/sanctuary-go/internal/domain/guild"
	"github.com/andrescamacho/sanctuary-go/internal/domain/inventory"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// EntityKind names the child collections whose rows the repository deletes
type EntityKind string

const (
	EntityKindInventoryStack  EntityKind = "inventory_stack"
	EntityKindPlantedGrowable EntityKind = "planted_growable"
	EntityKindExpedition      EntityKind = "active_expedition"
)

// EntityRef identifies a child entity that reached end of life
type EntityRef struct {
	Kind EntityKind
	ID   string
}

// CurrencyEntry describes why the balance changed; it becomes a ledger transaction
type CurrencyEntry struct {
	Type              ledger.TransactionType
	Description       string
	RelatedEntityType string
	RelatedEntityID   string
	At                time.Time
}

// Player is the aggregate root owning every progression collection.
//
// Invariants:
// - Currency is never negative (Debit refuses to overdraw)
// - every child entity belongs to this player only
// - removed child entities are reported through DeletedEntities until committed
type Player struct {
	ID        shared.PlayerID
	Name      string
	Currency  int
	TotalXP   int
	SkillXP   map[string]int
	CreatedAt time.Time

	Inventory    *inventory.Ledger
	Growables    []*garden.PlantedGrowable
	GuildMembers []*guild.Member
	Expeditions  []*expedition.ActiveExpedition

	deleted      []EntityRef
	transactions []*ledger.Transaction
}

// NewPlayer creates a player with empty collections
func NewPlayer(id shared.PlayerID, name string, currency int, createdAt time.Time) *Player {
	if currency < 0 {
		currency = 0
	}
	return &Player{
		ID:        id,
		Name:      name,
		Currency:  currency,
		SkillXP:   make(map[string]int),
		CreatedAt: createdAt,
		Inventory: inventory.NewLedger(),
	}
}

// Currency

// CanAfford reports whether the player holds at least amount currency
func (p *Player) CanAfford(amount int) bool {
	return p.Currency >= amount
}

// Debit removes amount currency, failing without mutation if funds are short
func (p *Player) Debit(amount int, entry CurrencyEntry) error {
	if amount <= 0 {
		return nil
	}
	if !p.CanAfford(amount) {
		return shared.NewInsufficientFundsError(amount, p.Currency)
	}
	before := p.Currency
	p.Currency -= amount
	p.record(entry, -amount, before)
	return nil
}

// Credit adds amount currency. Non-positive amounts leave the balance untouched.
func (p *Player) Credit(amount int, entry CurrencyEntry) {
	if amount <= 0 {
		return
	}
	before := p.Currency
	p.Currency += amount
	p.record(entry, amount, before)
}

func (p *Player) record(entry CurrencyEntry, amount, before int) {
	// unsaved players have no history to append to
	if p.ID.IsZero() {
		return
	}
	tx, err := ledger.NewTransaction(
		p.ID,
		entry.At,
		entry.Type,
		amount,
		before,
		p.Currency,
		entry.Description,
		entry.RelatedEntityType,
		entry.RelatedEntityID,
	)
	if err != nil {
		// amount and balances are consistent by construction, so only a bad type gets here
		panic(fmt.Sprintf("player %s: cannot record currency change: %v", p.ID, err))
	}
	p.transactions = append(p.transactions, tx)
}

// Experience

// AddTotalXP adds amount to the player's overall experience
func (p *Player) AddTotalXP(amount int) {
	if amount > 0 {
		p.TotalXP += amount
	}
}

// AddSkillXP adds amount to one skill and returns the skill's new total
func (p *Player) AddSkillXP(skillID string, amount int) int {
	if p.SkillXP == nil {
		p.SkillXP = make(map[string]int)
	}
	if amount > 0 {
		p.SkillXP[skillID] += amount
	}
	return p.SkillXP[skillID]
}

// Inventory

// ConsumeItem removes one unit of itemID from the inventory
func (p *Player) ConsumeItem(itemID string) error {
	if err := p.Inventory.ConsumeOne(itemID); err != nil {
		return err
	}
	if !p.Inventory.Has(itemID) {
		p.markDeleted(EntityKindInventoryStack, itemID)
	}
	return nil
}

// GrantItem adds quantity units of itemID to the inventory
func (p *Player) GrantItem(itemID string, quantity int) {
	p.Inventory.Grant(itemID, quantity)
}

// Garden

// AddGrowable attaches a planted growable to the player
func (p *Player) AddGrowable(g *garden.PlantedGrowable) {
	p.Growables = append(p.Growables, g)
}

// FindGrowable looks up an owned growable by id
func (p *Player) FindGrowable(id string) (*garden.PlantedGrowable, bool) {
	for _, g := range p.Growables {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// RemoveGrowable detaches a growable and signals its deletion
func (p *Player) RemoveGrowable(id string) bool {
	for i, g := range p.Growables {
		if g.ID == id {
			p.Growables = append(p.Growables[:i], p.Growables[i+1:]...)
			p.markDeleted(EntityKindPlantedGrowable, id)
			return true
		}
	}
	return false
}

// Guild

// AddMember attaches a hired member to the roster
func (p *Player) AddMember(m *guild.Member) {
	p.GuildMembers = append(p.GuildMembers, m)
}

// FindMember looks up an owned guild member by id
func (p *Player) FindMember(id string) (*guild.Member, bool) {
	for _, m := range p.GuildMembers {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Expeditions

// AddExpedition attaches a launched expedition
func (p *Player) AddExpedition(e *expedition.ActiveExpedition) {
	p.Expeditions = append(p.Expeditions, e)
}

// FindExpedition looks up an active expedition by id
func (p *Player) FindExpedition(id string) (*expedition.ActiveExpedition, bool) {
	for _, e := range p.Expeditions {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// RemoveExpedition detaches an expedition and signals its deletion
func (p *Player) RemoveExpedition(id string) bool {
	for i, e := range p.Expeditions {
		if e.ID == id {
			p.Expeditions = append(p.Expeditions[:i], p.Expeditions[i+1:]...)
			p.markDeleted(EntityKindExpedition, id)
			return true
		}
	}
	return false
}

// CompletedExpeditions snapshots the expeditions eligible for settlement at now
func (p *Player) CompletedExpeditions(now time.Time) []*expedition.ActiveExpedition {
	var done []*expedition.ActiveExpedition
	for _, e := range p.Expeditions {
		if e.IsComplete(now) {
			done = append(done, e)
		}
	}
	sort.SliceStable(done, func(i, j int) bool { return done[i].EndTime.Before(done[j].EndTime) })
	return done
}

// Lifecycle tracking

func (p *Player) markDeleted(kind EntityKind, id string) {
	p.deleted = append(p.deleted, EntityRef{Kind: kind, ID: id})
}

// DeletedEntities returns child entities removed since the last commit
func (p *Player) DeletedEntities() []EntityRef {
	out := make([]EntityRef, len(p.deleted))
	copy(out, p.deleted)
	return out
}

// PendingTransactions returns currency changes recorded since the last commit
func (p *Player) PendingTransactions() []*ledger.Transaction {
	out := make([]*ledger.Transaction, len(p.transactions))
	copy(out, p.transactions)
	return out
}

// MarkCommitted clears pending deletions and transactions after a successful save
func (p *Player) MarkCommitted() {
	p.deleted = nil
	p.transactions = nil
}

// Clone returns a deep copy, pending changes included
func (p *Player) Clone() *Player {
	c := &Player{
		ID:        p.ID,
		Name:      p.Name,
		Currency:  p.Currency,
		TotalXP:   p.TotalXP,
		SkillXP:   make(map[string]int, len(p.SkillXP)),
		CreatedAt: p.CreatedAt,
		Inventory: p.Inventory.Clone(),
	}
	for k, v := range p.SkillXP {
		c.SkillXP[k] = v
	}
	for _, g := range p.Growables {
		gc := *g
		c.Growables = append(c.Growables, &gc)
	}
	for _, m := range p.GuildMembers {
		mc := *m
		c.GuildMembers = append(c.GuildMembers, &mc)
	}
	for _, e := range p.Expeditions {
		ec := *e
		ec.MemberIDs = append([]string(nil), e.MemberIDs...)
		c.Expeditions = append(c.Expeditions, &ec)
	}
	c.deleted = append([]EntityRef(nil), p.deleted...)
	c.transactions = append([]*ledger.Transaction(nil), p.transactions...)
	return c
}
