package season

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	seasonservice "github.com/jollyfox-guild/vale-bot/app/modules/season/application"
	seasondb "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/repositories"
	seasonqueue "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/queue"
	seasonrouter "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/router"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/jollyfox-guild/vale-bot/config"
)

// Module represents the season module.
type Module struct {
	EventBus      eventbus.EventBus
	SeasonService seasonservice.Service
	SeasonRouter  *seasonrouter.SeasonRouter
	QueueService  seasonqueue.QueueService
	config        *config.Config
	observability *observability.Provider
	cancelFunc    context.CancelFunc
}

// NewSeasonModule creates a new instance of the season module.
func NewSeasonModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	metrics := opmetrics.NewPrometheusMetrics(obs.Registry, "season")

	repo := &seasondb.SeasonDBImpl{DB: db, Logger: logger}
	seasonService := seasonservice.NewSeasonService(repo, logger, metrics, obs.Tracer, cfg.Balance, cfg.Season.MaxDays)

	queueService, err := seasonqueue.NewService(
		ctx,
		logger,
		cfg.Postgres.DSN,
		metrics,
		seasonService,
		eventBus,
		sharedtypes.GuildID(cfg.GuildID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize season queue service: %w", err)
	}

	seasonRouter := seasonrouter.NewSeasonRouter(logger, router, eventBus, eventBus, obs.Tracer)
	if err := seasonRouter.Configure(routerCtx, seasonService); err != nil {
		return nil, fmt.Errorf("failed to configure season router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		SeasonService: seasonService,
		SeasonRouter:  seasonRouter,
		QueueService:  queueService,
		config:        cfg,
		observability: obs,
	}, nil
}

// Run starts the season module's background scheduling.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting season module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start season queue service", "error", err)
		return
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Season module goroutine stopped")
}

// Close stops the season module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping season module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			logger.Error("Error stopping season queue service", "error", err)
		}
	}

	if m.SeasonRouter != nil {
		if err := m.SeasonRouter.Close(); err != nil {
			logger.Error("Error closing SeasonRouter from module", "error", err)
			return fmt.Errorf("error closing SeasonRouter: %w", err)
		}
	}

	logger.Info("Season module stopped")
	return nil
}
