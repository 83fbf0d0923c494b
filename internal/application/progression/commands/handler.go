package commands

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

var validate = validator.New()

// engineHandler holds what every progression handler needs: a scoped unit of work,
// the engine, and the clock read once per operation
type engineHandler struct {
	uow    player.UnitOfWork
	engine *progression.Engine
	clock  shared.Clock
}

func newEngineHandler(uow player.UnitOfWork, engine *progression.Engine, clock shared.Clock) engineHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return engineHandler{uow: uow, engine: engine, clock: clock}
}

// execute runs fn on the loaded player inside one unit of work and reports the
// currency transactions it produced once the commit succeeded
func (h engineHandler) execute(ctx context.Context, playerID shared.PlayerID, fn func(p *player.Player) error) error {
	var (
		name    string
		pending []*ledger.Transaction
	)

	err := h.uow.Execute(ctx, playerID, func(ctx context.Context, p *player.Player) error {
		if err := fn(p); err != nil {
			return err
		}
		name = p.Name
		pending = p.PendingTransactions()
		return nil
	})
	if err != nil {
		return err
	}

	for _, tx := range pending {
		metrics.RecordTransaction(
			tx.PlayerID().Value(),
			name,
			tx.TransactionType().String(),
			tx.Category().String(),
			tx.Amount(),
			tx.BalanceAfter(),
		)
	}
	return nil
}
