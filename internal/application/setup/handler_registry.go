package setup

import (
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/application/common"
	ledgerQueries "github.com/andrescamacho/sanctuary-go/internal/application/ledger/queries"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/sanctuary-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
	progressionCommands "github.com/andrescamacho/sanctuary-go/internal/application/progression/commands"
	progressionQueries "github.com/andrescamacho/sanctuary-go/internal/application/progression/queries"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	playerRepo       player.PlayerRepository
	uow              player.UnitOfWork
	transactionRepo  ledger.TransactionRepository
	engine           *progression.Engine
	clock            shared.Clock
	locks            *common.PlayerLocks
	startingCurrency int
}

// NewHandlerRegistry creates a new handler registry.
// Every unit of work is serialized per player through one shared lock registry.
func NewHandlerRegistry(
	playerRepo player.PlayerRepository,
	uow player.UnitOfWork,
	transactionRepo ledger.TransactionRepository,
	engine *progression.Engine,
	clock shared.Clock,
	startingCurrency int,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	locks := common.NewPlayerLocks()

	return &HandlerRegistry{
		playerRepo:       playerRepo,
		uow:              common.NewSerializedUnitOfWork(uow, locks),
		transactionRepo:  transactionRepo,
		engine:           engine,
		clock:            clock,
		locks:            locks,
		startingCurrency: startingCurrency,
	}
}

// RegisterAll registers every command and query handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterPlayerHandlers(m); err != nil {
		return fmt.Errorf("player handlers: %w", err)
	}
	if err := r.RegisterProgressionHandlers(m); err != nil {
		return fmt.Errorf("progression handlers: %w", err)
	}
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return fmt.Errorf("ledger handlers: %w", err)
	}
	return nil
}

// RegisterPlayerHandlers registers:
//   - RegisterPlayerCommand, DeletePlayerCommand
//   - GetPlayerQuery, ListPlayersQuery
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*playerCommands.RegisterPlayerCommand](m,
		playerCommands.NewRegisterPlayerHandler(r.playerRepo, r.clock, r.startingCurrency)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*playerCommands.DeletePlayerCommand](m,
		playerCommands.NewDeletePlayerHandler(r.playerRepo, r.locks)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*playerQueries.GetPlayerQuery](m,
		playerQueries.NewGetPlayerHandler(r.playerRepo)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*playerQueries.ListPlayersQuery](m,
		playerQueries.NewListPlayersHandler(r.playerRepo))
}

// RegisterProgressionHandlers registers the six engine commands and the state query
func (r *HandlerRegistry) RegisterProgressionHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*progressionCommands.PlantCommand](m,
		progressionCommands.NewPlantHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*progressionCommands.HarvestCommand](m,
		progressionCommands.NewHarvestHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*progressionCommands.HireGuildMemberCommand](m,
		progressionCommands.NewHireGuildMemberHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*progressionCommands.UpgradeGuildMemberCommand](m,
		progressionCommands.NewUpgradeGuildMemberHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*progressionCommands.LaunchExpeditionCommand](m,
		progressionCommands.NewLaunchExpeditionHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*progressionCommands.ReconcileExpeditionsCommand](m,
		progressionCommands.NewReconcileExpeditionsHandler(r.uow, r.engine, r.clock)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*progressionQueries.GetPlayerStateQuery](m,
		progressionQueries.NewGetPlayerStateHandler(r.playerRepo, r.clock, r.engine.Policy().UpgradeBaseCost))
}

// RegisterLedgerHandlers registers GetTransactionsQuery and GetCashFlowQuery
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*ledgerQueries.GetTransactionsQuery](m,
		ledgerQueries.NewGetTransactionsHandler(r.transactionRepo, common.NewPlayerResolver(r.playerRepo))); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ledgerQueries.GetCashFlowQuery](m,
		ledgerQueries.NewGetCashFlowHandler(r.transactionRepo))
}
