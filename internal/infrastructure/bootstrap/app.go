package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	catalogAdapter "github.com/andrescamacho/sanctuary-go/internal/adapters/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/adapters/metrics"
	"github.com/andrescamacho/sanctuary-go/internal/adapters/persistence"
	"github.com/andrescamacho/sanctuary-go/internal/adapters/skills"
	"github.com/andrescamacho/sanctuary-go/internal/application/mediator"
	"github.com/andrescamacho/sanctuary-go/internal/application/setup"
	"github.com/andrescamacho/sanctuary-go/internal/domain/catalog"
	"github.com/andrescamacho/sanctuary-go/internal/domain/ledger"
	"github.com/andrescamacho/sanctuary-go/internal/domain/player"
	"github.com/andrescamacho/sanctuary-go/internal/domain/progression"
	"github.com/andrescamacho/sanctuary-go/internal/domain/shared"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/database"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/logging"
)

// App is the wired engine shared by the CLI and the daemon
type App struct {
	Config   *config.Config
	Mediator mediator.Mediator
	Catalog  *catalog.StaticCatalog
	Logger   *logging.Logger
	Skills   *skills.Tracker

	// Financial is non-nil only when metrics are enabled
	Financial *metrics.FinancialMetricsCollector

	db      *gorm.DB
	closers []io.Closer
}

// Options tweaks the wiring for callers that own part of it
type Options struct {
	// Clock overrides the real clock
	Clock shared.Clock

	// Repository replaces the configured store; it must also implement UnitOfWork
	// and TransactionRepository, as persistence.MemoryRepository does
	Repository interface {
		player.PlayerRepository
		player.UnitOfWork
		ledger.TransactionRepository
	}
}

// New builds the application from cfg
func New(cfg *config.Config, opts Options) (*App, error) {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	cat, err := catalogAdapter.Load(cfg.Catalog.Path)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	app.Catalog = cat

	playerRepo, uow, txRepo, err := app.openStore(cfg, opts)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Skills = skills.NewTracker(skills.DefaultXPPerLevel, func(p *player.Player, g skills.Grant) {
		logger.Log("INFO", "Skill level up", map[string]interface{}{
			"player_id": p.ID.Value(),
			"skill":     g.SkillID,
			"level":     g.NewLevel,
		})
	})
	engine := progression.NewEngine(cat, app.Skills, PolicyFromConfig(cfg))

	med := mediator.NewMediator()
	med.RegisterMiddleware(logging.Middleware(logger))

	if cfg.Metrics.Enabled {
		if err := app.enableMetrics(med); err != nil {
			app.Close()
			return nil, err
		}
	}

	registry := setup.NewHandlerRegistry(playerRepo, uow, txRepo, engine, opts.Clock, cfg.Economy.StartingCurrency)
	if err := registry.RegisterAll(med); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.Mediator = med

	return app, nil
}

// PolicyFromConfig maps the economy and expedition sections onto the engine policy
func PolicyFromConfig(cfg *config.Config) progression.Policy {
	return progression.Policy{
		HireCost:                     cfg.Economy.HireCost,
		UpgradeBaseCost:              cfg.Economy.UpgradeBaseCost,
		HarvestFallbackCurrency:      cfg.Economy.HarvestFallbackCurrency,
		ExpeditionCompletionCurrency: cfg.Economy.ExpeditionCompletionCurrency,
		StrictMembers:                cfg.Expeditions.StrictMembers,
		RequireKnownExpedition:       cfg.Expeditions.RequireKnownDefinition,
	}
}

func (a *App) openStore(cfg *config.Config, opts Options) (player.PlayerRepository, player.UnitOfWork, ledger.TransactionRepository, error) {
	if opts.Repository != nil {
		return opts.Repository, opts.Repository, opts.Repository, nil
	}

	if cfg.Database.Type == "memory" {
		repo := persistence.NewMemoryRepository()
		return repo, repo, repo, nil
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	a.db = db

	repo := persistence.NewGormPlayerRepository(db)
	return repo, repo, persistence.NewGormTransactionRepository(db), nil
}

func (a *App) enableMetrics(med mediator.Mediator) error {
	if !metrics.IsEnabled() {
		metrics.InitRegistry()
	}

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandMetrics))

	progressionMetrics := metrics.NewProgressionMetricsCollector()
	if err := progressionMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register progression metrics: %w", err)
	}
	metrics.SetGlobalProgressionCollector(progressionMetrics)

	financial := metrics.NewFinancialMetricsCollector(med)
	if err := financial.Register(); err != nil {
		return fmt.Errorf("failed to register financial metrics: %w", err)
	}
	metrics.SetGlobalFinancialCollector(financial)
	a.Financial = financial

	return nil
}

// Close releases the database and log file
func (a *App) Close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
		a.db = nil
	}
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
