package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// GetCashFlowQuery represents a query to generate a cash flow statement
type GetCashFlowQuery struct {
	PlayerID  int
	StartDate time.Time
	EndDate   time.Time
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period     string
	Categories []*CategoryCashFlow
	NetFlow    int
}

// CategoryCashFlow represents cash flow for a specific category
type CategoryCashFlow struct {
	Category     string
	TotalInflow  int
	TotalOutflow int
	NetFlow      int
	Transactions int // count
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{
		transactionRepo: transactionRepo,
	}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	playerID, err := shared.NewPlayerID(query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID: %w", err)
	}

	if query.EndDate.Before(query.StartDate) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			query.EndDate.Format(time.RFC3339), query.StartDate.Format(time.RFC3339))
	}

	opts := ledger.QueryOptions{
		StartDate: &query.StartDate,
		EndDate:   &query.EndDate,
		Limit:     0, // No limit - get all transactions
		OrderBy:   ledger.OrderByTimestampAsc,
	}

	transactions, err := h.transactionRepo.FindByPlayer(ctx, playerID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return calculateCashFlow(query, transactions), nil
}

func calculateCashFlow(query *GetCashFlowQuery, transactions []*ledger.Transaction) *GetCashFlowResponse {
	categoryMap := make(map[string]*CategoryCashFlow)
	for _, cat := range ledger.AllCategories() {
		categoryMap[cat.String()] = &CategoryCashFlow{Category: cat.String()}
	}

	net := 0
	for _, tx := range transactions {
		flow := categoryMap[tx.Category().String()]
		flow.Transactions++

		amount := tx.Amount()
		if amount > 0 {
			flow.TotalInflow += amount
		} else {
			flow.TotalOutflow += -amount // Store as positive value
		}
		flow.NetFlow = flow.TotalInflow - flow.TotalOutflow
		net += amount
	}

	// Only categories with transactions, in a stable order
	categories := make([]*CategoryCashFlow, 0)
	for _, flow := range categoryMap {
		if flow.Transactions > 0 {
			categories = append(categories, flow)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	return &GetCashFlowResponse{
		Period: fmt.Sprintf("%s to %s",
			query.StartDate.Format("2006-01-02"),
			query.EndDate.Format("2006-01-02")),
		Categories: categories,
		NetFlow:    net,
	}
}
