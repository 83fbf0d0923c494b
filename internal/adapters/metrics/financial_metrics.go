package metrics

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ledgerQueries "github.com/andrescamacho/sanctuary-go/internal/application/ledger/queries"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	playerQueries "github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
)

// FinancialMetricsCollector handles currency balance and ledger metrics
type FinancialMetricsCollector struct {
	mediator mediator.Mediator

	// Balance metrics
	currencyBalance *prometheus.GaugeVec

	// Transaction metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// Cash flow metrics
	totalInflow  *prometheus.GaugeVec
	totalOutflow *prometheus.GaugeVec
	netFlow      *prometheus.GaugeVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewFinancialMetricsCollector creates a new financial metrics collector
func NewFinancialMetricsCollector(med mediator.Mediator) *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		mediator: med,

		currencyBalance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "player_currency_balance",
				Help:      "Current currency balance for each player",
			},
			[]string{"player_id", "player"},
		),

		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of transactions by type and category",
			},
			[]string{"player_id", "type", "category"},
		),

		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution",
				Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
			},
			[]string{"player_id", "type", "category"},
		),

		totalInflow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_inflow",
				Help:      "All-time currency inflow by category",
			},
			[]string{"player_id", "category"},
		),

		totalOutflow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_outflow",
				Help:      "All-time currency outflow by category",
			},
			[]string{"player_id", "category"},
		),

		netFlow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "net_flow",
				Help:      "All-time net currency flow (inflow - outflow)",
			},
			[]string{"player_id"},
		),
	}
}

// Register registers all financial metrics with the Prometheus registry
func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.currencyBalance,
		c.transactionsTotal,
		c.transactionAmount,
		c.totalInflow,
		c.totalOutflow,
		c.netFlow,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// Start begins the cash flow polling goroutine
func (c *FinancialMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollCashFlow(interval)
}

// Stop gracefully stops the financial metrics collector
func (c *FinancialMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *FinancialMetricsCollector) pollCashFlow(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.updateCashFlow()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.updateCashFlow()
		}
	}
}

// updateCashFlow refreshes balance and all-time cash flow gauges for every player
func (c *FinancialMetricsCollector) updateCashFlow() {
	if c.mediator == nil {
		return
	}

	resp, err := c.mediator.Send(c.ctx, &playerQueries.ListPlayersQuery{})
	if err != nil {
		log.Printf("Failed to list players for financial metrics: %v", err)
		return
	}
	players, ok := resp.(*playerQueries.ListPlayersResponse)
	if !ok {
		log.Printf("Unexpected response type for ListPlayers query: %T", resp)
		return
	}

	for _, p := range players.Players {
		playerID := p.ID.Value()
		playerIDStr := strconv.Itoa(playerID)

		c.currencyBalance.WithLabelValues(playerIDStr, p.Name).Set(float64(p.Currency))

		flowResp, err := c.mediator.Send(c.ctx, &ledgerQueries.GetCashFlowQuery{
			PlayerID:  playerID,
			StartDate: time.Unix(0, 0),
			EndDate:   time.Now().Add(24 * time.Hour),
		})
		if err != nil {
			log.Printf("Failed to fetch cash flow for player %d: %v", playerID, err)
			continue
		}
		flow, ok := flowResp.(*ledgerQueries.GetCashFlowResponse)
		if !ok {
			log.Printf("Unexpected response type for cash flow query: %T", flowResp)
			continue
		}

		for _, cat := range flow.Categories {
			c.totalInflow.WithLabelValues(playerIDStr, cat.Category).Set(float64(cat.TotalInflow))
			c.totalOutflow.WithLabelValues(playerIDStr, cat.Category).Set(float64(cat.TotalOutflow))
		}
		c.netFlow.WithLabelValues(playerIDStr).Set(float64(flow.NetFlow))
	}
}

// RecordTransaction records a committed currency transaction
func (c *FinancialMetricsCollector) RecordTransaction(
	playerID int,
	playerName string,
	transactionType string,
	category string,
	amount int,
	balance int,
) {
	playerIDStr := strconv.Itoa(playerID)

	c.currencyBalance.WithLabelValues(playerIDStr, playerName).Set(float64(balance))
	c.transactionsTotal.WithLabelValues(playerIDStr, transactionType, category).Inc()

	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	c.transactionAmount.WithLabelValues(playerIDStr, transactionType, category).Observe(float64(absAmount))
}
