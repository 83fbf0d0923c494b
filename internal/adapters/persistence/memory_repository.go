package persistence

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// MemoryRepository keeps players and their ledger in process memory.
// It implements PlayerRepository, UnitOfWork and TransactionRepository; a unit of
// work mutates a clone that replaces the stored player only on success.
type MemoryRepository struct {
	mu           sync.RWMutex
	nextID       int
	players      map[int]*player.Player
	transactions map[int][]*ledger.Transaction
	commitErr    error
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:       1,
		players:      make(map[int]*player.Player),
		transactions: make(map[int][]*ledger.Transaction),
	}
}

// FailCommits makes every following commit fail with err; nil restores normal commits
func (r *MemoryRepository) FailCommits(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitErr = err
}

// FindByID returns a copy of the stored player
func (r *MemoryRepository) FindByID(ctx context.Context, playerID shared.PlayerID) (*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID.Value()]
	if !ok {
		return nil, &player.NotFoundError{Key: playerID.String()}
	}
	return p.Clone(), nil
}

// FindByName returns a copy of the player with the given name
func (r *MemoryRepository) FindByName(ctx context.Context, name string) (*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.players {
		if p.Name == name {
			return p.Clone(), nil
		}
	}
	return nil, &player.NotFoundError{Key: name}
}

// ListSummaries returns every player's row fields ordered by id
func (r *MemoryRepository) ListSummaries(ctx context.Context) ([]player.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]player.Summary, 0, len(r.players))
	for _, p := range r.players {
		summaries = append(summaries, player.Summary{
			ID:        p.ID,
			Name:      p.Name,
			Currency:  p.Currency,
			TotalXP:   p.TotalXP,
			CreatedAt: p.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID.Value() < summaries[j].ID.Value() })
	return summaries, nil
}

// Add stores a new player and assigns its ID
func (r *MemoryRepository) Add(ctx context.Context, p *player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !p.ID.IsZero() {
		return errors.New("player already persisted")
	}
	for _, existing := range r.players {
		if existing.Name == p.Name {
			return errors.New("player name already taken: " + p.Name)
		}
	}

	p.ID = shared.MustNewPlayerID(r.nextID)
	r.nextID++

	p.MarkCommitted()
	r.players[p.ID.Value()] = p.Clone()
	return nil
}

// Delete removes the player and its ledger
func (r *MemoryRepository) Delete(ctx context.Context, playerID shared.PlayerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID.Value()]; !ok {
		return &player.NotFoundError{Key: playerID.String()}
	}
	delete(r.players, playerID.Value())
	delete(r.transactions, playerID.Value())
	return nil
}

// Execute runs fn against a clone of the stored player and swaps it in on success
func (r *MemoryRepository) Execute(ctx context.Context, playerID shared.PlayerID, fn func(ctx context.Context, p *player.Player) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.players[playerID.Value()]
	if !ok {
		return &player.NotFoundError{Key: playerID.String()}
	}

	working := stored.Clone()
	if err := fn(ctx, working); err != nil {
		return err
	}

	if r.commitErr != nil {
		return shared.NewTransactionFailedError("commit", r.commitErr)
	}

	id := playerID.Value()
	r.transactions[id] = append(r.transactions[id], working.PendingTransactions()...)
	working.MarkCommitted()
	r.players[id] = working
	return nil
}

// FindByPlayer returns the player's transactions filtered and paginated like the SQL store
func (r *MemoryRepository) FindByPlayer(ctx context.Context, playerID shared.PlayerID, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	matched := r.matching(playerID, opts)

	if opts.OrderBy == ledger.OrderByTimestampAsc {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp().Before(matched[j].Timestamp()) })
	} else {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp().After(matched[j].Timestamp()) })
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []*ledger.Transaction{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// CountByPlayer counts matching transactions, ignoring pagination
func (r *MemoryRepository) CountByPlayer(ctx context.Context, playerID shared.PlayerID, opts ledger.QueryOptions) (int, error) {
	return len(r.matching(playerID, opts)), nil
}

func (r *MemoryRepository) matching(playerID shared.PlayerID, opts ledger.QueryOptions) []*ledger.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*ledger.Transaction
	for _, t := range r.transactions[playerID.Value()] {
		if opts.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
