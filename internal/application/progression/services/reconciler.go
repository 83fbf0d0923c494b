package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	playerQueries "github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
	"github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
)

// Reconciler periodically settles due expeditions for every registered player.
// Each player is reconciled through the mediator, so the usual unit of work and
// per-player lock apply; the limiter caps how many reconciles run per second.
type Reconciler struct {
	mediator mediator.Mediator
	interval time.Duration
	limiter  *rate.Limiter

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// TickResult summarizes one reconcile pass
type TickResult struct {
	Players  int
	Settled  int
	Currency int
	XP       int
	Failures int
}

// NewReconciler creates a reconciler ticking every interval, sending at most
// perSecond reconcile commands per second with the given burst
func NewReconciler(med mediator.Mediator, interval time.Duration, perSecond float64, burst int) *Reconciler {
	if burst < 1 {
		burst = 1
	}
	return &Reconciler{
		mediator: med,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Start begins the polling goroutine
func (r *Reconciler) Start(ctx context.Context) {
	r.ctx, r.cancelFunc = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.loop()
}

// Stop cancels the polling goroutine and waits for the current pass to finish
func (r *Reconciler) Stop() {
	if r.cancelFunc != nil {
		r.cancelFunc()
	}
	r.wg.Wait()
}

func (r *Reconciler) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.Tick(r.ctx); err != nil && r.ctx.Err() == nil {
			log.Printf("Reconcile pass failed: %v", err)
		}

		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick runs one reconcile pass over all players.
// A failure for one player is logged and counted; the pass continues with the next.
func (r *Reconciler) Tick(ctx context.Context) (TickResult, error) {
	var result TickResult

	resp, err := r.mediator.Send(ctx, &playerQueries.ListPlayersQuery{})
	if err != nil {
		return result, fmt.Errorf("failed to list players: %w", err)
	}
	players, ok := resp.(*playerQueries.ListPlayersResponse)
	if !ok {
		return result, fmt.Errorf("unexpected response type for ListPlayers query: %T", resp)
	}

	for _, p := range players.Players {
		if err := r.limiter.Wait(ctx); err != nil {
			return result, err
		}
		result.Players++

		resp, err := r.mediator.Send(ctx, &commands.ReconcileExpeditionsCommand{PlayerID: p.ID.Value()})
		if err != nil {
			result.Failures++
			log.Printf("Failed to reconcile expeditions for player %d: %v", p.ID.Value(), err)
			continue
		}

		settled, ok := resp.(*commands.ReconcileExpeditionsResponse)
		if !ok {
			result.Failures++
			continue
		}
		result.Settled += len(settled.Result.Settled)
		result.Currency += settled.Result.TotalCurrency()
		result.XP += settled.Result.TotalXP()
	}

	if result.Settled > 0 {
		log.Printf("Reconciled %d expeditions across %d players (+%d currency, +%d xp)",
			result.Settled, result.Players, result.Currency, result.XP)
	}

	return result, nil
}
