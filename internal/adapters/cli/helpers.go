package cli

import (
	"context"
	"fmt"

	"github.com/andrescamacho/sanctuary-go/internal/application/player/queries"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/sanctuary-go/internal/infrastructure/config"
)

// PlayerIdentifier holds player identification (either ID or name)
type PlayerIdentifier struct {
	PlayerID int
	Name     string
}

// resolvePlayerIdentifier resolves player identification from flags or defaults
// Priority: CLI flags (--player-id or --player) > User config defaults
func resolvePlayerIdentifier() (*PlayerIdentifier, error) {
	if playerID > 0 {
		return &PlayerIdentifier{PlayerID: playerID}, nil
	}
	if playerName != "" {
		return &PlayerIdentifier{Name: playerName}, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultPlayerID != nil {
		return &PlayerIdentifier{PlayerID: *userCfg.DefaultPlayerID}, nil
	}
	if userCfg.DefaultPlayerName != "" {
		return &PlayerIdentifier{Name: userCfg.DefaultPlayerName}, nil
	}

	return nil, fmt.Errorf("no player specified: use --player-id or --player, or set default with 'sanctuary config set-player'")
}

// resolvePlayerID turns the player identifier into a numeric ID, looking names up through app
func resolvePlayerID(ctx context.Context, app *bootstrap.App) (int, error) {
	ident, err := resolvePlayerIdentifier()
	if err != nil {
		return 0, err
	}
	if ident.PlayerID > 0 {
		return ident.PlayerID, nil
	}

	response, err := app.Mediator.Send(ctx, &queries.GetPlayerQuery{Name: ident.Name})
	if err != nil {
		return 0, err
	}
	return response.(*queries.GetPlayerResponse).Player.ID.Value(), nil
}

// openApp loads configuration and wires the engine
func openApp() (*bootstrap.App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	app, err := bootstrap.New(cfg, bootstrap.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}
	return app, nil
}

// withPlayer opens the app, resolves the target player and runs fn
func withPlayer(fn func(ctx context.Context, app *bootstrap.App, playerID int) error) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	id, err := resolvePlayerID(ctx, app)
	if err != nil {
		return err
	}
	return fn(ctx, app, id)
}
