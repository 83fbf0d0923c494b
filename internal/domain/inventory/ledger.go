package inventory

import (
	"sort"

	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// Stack is the quantity-bearing record of one item type.
// A stack held by a Ledger always has Quantity >= 1.
type Stack struct {
	ItemID   string
	Quantity int
}

// Ledger owns a player's countable items, one stack per item id.
//
// Invariants:
// - quantities are never zero or negative; a stack that reaches 0 is removed
// - at most one stack exists per item id (grants merge into it)
type Ledger struct {
	stacks map[string]int
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{stacks: make(map[string]int)}
}

// ReconstructLedger rebuilds a ledger from persisted stacks.
// Non-positive quantities are dropped and duplicate item ids are merged.
func ReconstructLedger(stacks []Stack) *Ledger {
	l := NewLedger()
	for _, s := range stacks {
		l.Grant(s.ItemID, s.Quantity)
	}
	return l
}

// ConsumeOne removes a single unit of itemID, deleting the stack when it empties
func (l *Ledger) ConsumeOne(itemID string) error {
	qty, ok := l.stacks[itemID]
	if !ok {
		return shared.NewInsufficientQuantityError(itemID, 1, 0)
	}

	if qty <= 1 {
		delete(l.stacks, itemID)
		return nil
	}
	l.stacks[itemID] = qty - 1
	return nil
}

// Grant adds quantity units of itemID, creating the stack if needed.
// Non-positive quantities are a caller bug and are ignored.
func (l *Ledger) Grant(itemID string, quantity int) {
	if quantity <= 0 || itemID == "" {
		return
	}
	l.stacks[itemID] += quantity
}

// Quantity returns the units held of itemID (0 if absent)
func (l *Ledger) Quantity(itemID string) int {
	return l.stacks[itemID]
}

// Has reports whether a stack exists for itemID
func (l *Ledger) Has(itemID string) bool {
	_, ok := l.stacks[itemID]
	return ok
}

// Len returns the number of stacks
func (l *Ledger) Len() int {
	return len(l.stacks)
}

// Stacks returns a copy of all stacks sorted by item id
func (l *Ledger) Stacks() []Stack {
	out := make([]Stack, 0, len(l.stacks))
	for id, qty := range l.stacks {
		out = append(out, Stack{ItemID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Clone returns an independent copy of the ledger
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{stacks: make(map[string]int, len(l.stacks))}
	for id, qty := range l.stacks {
		c.stacks[id] = qty
	}
	return c
}
