package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
)

// GetTransactionsQuery represents a query to retrieve a player's currency history.
// PlayerID takes precedence over PlayerName.
type GetTransactionsQuery struct {
	PlayerID          int
	PlayerName        string
	StartDate         *time.Time
	EndDate           *time.Time
	Category          *string
	TransactionType   *string
	RelatedEntityType *string
	RelatedEntityID   *string
	Limit             int
	Offset            int
	OrderBy           string
}

// GetTransactionsResponse represents the result of the query
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
	Total        int
}

// TransactionDTO represents a transaction data transfer object
type TransactionDTO struct {
	ID                string
	PlayerID          int
	Timestamp         time.Time
	Type              string
	Category          string
	Amount            int
	BalanceBefore     int
	BalanceAfter      int
	Description       string
	RelatedEntityType string
	RelatedEntityID   string
}

// GetTransactionsHandler handles the GetTransactions query
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
	playerResolver  *common.PlayerResolver
}

// NewGetTransactionsHandler creates a new GetTransactionsHandler
func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository, playerResolver *common.PlayerResolver) *GetTransactionsHandler {
	return &GetTransactionsHandler{
		transactionRepo: transactionRepo,
		playerResolver:  playerResolver,
	}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	var idPtr *int
	if query.PlayerID != 0 {
		idPtr = &query.PlayerID
	}
	playerID, err := h.playerResolver.ResolvePlayerID(ctx, idPtr, query.PlayerName)
	if err != nil {
		return nil, err
	}

	opts, err := buildQueryOptions(query)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactionRepo.FindByPlayer(ctx, playerID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	total, err := h.transactionRepo.CountByPlayer(ctx, playerID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = toDTO(tx)
	}

	return &GetTransactionsResponse{
		Transactions: dtos,
		Total:        total,
	}, nil
}

func buildQueryOptions(query *GetTransactionsQuery) (ledger.QueryOptions, error) {
	opts := ledger.DefaultQueryOptions()

	opts.StartDate = query.StartDate
	opts.EndDate = query.EndDate

	if query.Category != nil {
		category, err := ledger.ParseCategory(*query.Category)
		if err != nil {
			return opts, fmt.Errorf("invalid category: %w", err)
		}
		opts.Category = &category
	}

	if query.TransactionType != nil {
		txType, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return opts, fmt.Errorf("invalid transaction type: %w", err)
		}
		opts.TransactionType = &txType
	}

	opts.RelatedEntityType = query.RelatedEntityType
	opts.RelatedEntityID = query.RelatedEntityID

	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	opts.Offset = query.Offset

	switch query.OrderBy {
	case "":
	case ledger.OrderByTimestampAsc, ledger.OrderByTimestampDesc:
		opts.OrderBy = query.OrderBy
	default:
		return opts, fmt.Errorf("invalid order: %s", query.OrderBy)
	}

	return opts, nil
}

func toDTO(tx *ledger.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:                tx.ID().String(),
		PlayerID:          tx.PlayerID().Value(),
		Timestamp:         tx.Timestamp(),
		Type:              tx.TransactionType().String(),
		Category:          tx.Category().String(),
		Amount:            tx.Amount(),
		BalanceBefore:     tx.BalanceBefore(),
		BalanceAfter:      tx.BalanceAfter(),
		Description:       tx.Description(),
		RelatedEntityType: tx.RelatedEntityType(),
		RelatedEntityID:   tx.RelatedEntityID(),
	}
}
