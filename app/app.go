// Package app wires the modules, the event bus and the operational HTTP
// surface into one process.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/jollyfox-guild/vale-bot/api"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/modules/progression"
	"github.com/jollyfox-guild/vale-bot/app/modules/season"
	"github.com/jollyfox-guild/vale-bot/app/modules/wandering"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/config"
	"github.com/jollyfox-guild/vale-bot/db/bundb"
)

// App is the assembled backend process.
type App struct {
	Config            *config.Config
	Observability     *observability.Provider
	EventBus          eventbus.EventBus
	Router            *message.Router
	SeasonModule      *season.Module
	WanderingModule   *wandering.Module
	ProgressionModule *progression.Module

	db         *bundb.DBService
	httpServer *api.Server
	cancelFunc context.CancelFunc
}

// Initialize builds every component. Nothing starts consuming until Run.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Provider) error {
	app.Config = cfg
	app.Observability = obs
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database service: %w", err)
	}
	app.db = dbService

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event bus: %w", err)
	}
	app.EventBus = bus

	for _, stream := range []string{seasonevents.Stream, wanderingevents.Stream, progressionevents.Stream} {
		if err := bus.CreateStream(ctx, stream); err != nil {
			return fmt.Errorf("failed to create stream %q: %w", stream, err)
		}
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}
	app.Router = router

	// Progression comes first; the other two depend on its service.
	progressionModule, err := progression.NewProgressionModule(ctx, cfg, obs, dbService.GetDB(), bus, router, ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize progression module: %w", err)
	}
	app.ProgressionModule = progressionModule

	seasonModule, err := season.NewSeasonModule(ctx, cfg, obs, dbService.GetDB(), bus, router, ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize season module: %w", err)
	}
	app.SeasonModule = seasonModule

	wanderingModule, err := wandering.NewWanderingModule(ctx, cfg, obs, dbService.GetDB(), bus, router, progressionModule.ProgressionService, ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize wandering module: %w", err)
	}
	app.WanderingModule = wanderingModule

	// An empty metrics address disables the HTTP listener entirely.
	if cfg.Observability.MetricsAddress != "" {
		app.httpServer = api.NewServer(cfg.Observability.MetricsAddress, obs.Registry, logger)
	}

	return nil
}

// Run blocks until the context is canceled or the router stops.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelFunc = cancel
	defer cancel()

	if app.httpServer != nil {
		go app.httpServer.Start()
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go app.ProgressionModule.Run(ctx, &wg)
	go app.SeasonModule.Run(ctx, &wg)
	go app.WanderingModule.Run(ctx, &wg)

	err := app.Router.Run(ctx)

	cancel()
	wg.Wait()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("router stopped: %w", err)
	}
	return nil
}

// Close shuts everything down in reverse dependency order.
func (app *App) Close() {
	logger := app.Observability.Logger

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down HTTP server", "error", err)
		}
	}

	if app.WanderingModule != nil {
		if err := app.WanderingModule.Close(); err != nil {
			logger.Error("Error closing wandering module", "error", err)
		}
	}
	if app.SeasonModule != nil {
		if err := app.SeasonModule.Close(); err != nil {
			logger.Error("Error closing season module", "error", err)
		}
	}
	if app.ProgressionModule != nil {
		if err := app.ProgressionModule.Close(); err != nil {
			logger.Error("Error closing progression module", "error", err)
		}
	}

	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Error closing event bus", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.GetDB().Close(); err != nil {
			logger.Error("Error closing database", "error", err)
		}
	}
}
