package wandering

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	wanderingservice "github.com/jollyfox-guild/vale-bot/app/modules/wandering/application"
	wanderingdb "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/repositories"
	wanderingqueue "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/queue"
	wanderingrouter "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/router"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/jollyfox-guild/vale-bot/config"
)

// Module represents the wandering module.
type Module struct {
	EventBus         eventbus.EventBus
	WanderingService wanderingservice.Service
	WanderingRouter  *wanderingrouter.WanderingRouter
	QueueService     wanderingqueue.QueueService
	config           *config.Config
	observability    *observability.Provider
	cancelFunc       context.CancelFunc
}

// NewWanderingModule creates a new instance of the wandering module. It
// depends on the progression service for faction lookups and payouts.
func NewWanderingModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	progression progressionservice.Service,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	metrics := opmetrics.NewPrometheusMetrics(obs.Registry, "wandering")

	repo := &wanderingdb.WanderingDBImpl{DB: db, Logger: logger}
	service := wanderingservice.NewWanderingService(
		repo,
		progression,
		logger,
		metrics,
		obs.Tracer,
		time.Duration(cfg.Wandering.ClearGraceSeconds)*time.Second,
	)

	queueService, err := wanderingqueue.NewService(
		ctx,
		logger,
		cfg.Postgres.DSN,
		metrics,
		service,
		eventBus,
		sharedtypes.GuildID(cfg.GuildID),
		cfg.Wandering.SpawnHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize wandering queue service: %w", err)
	}
	service.SetScheduler(queueService)

	wanderingRouter := wanderingrouter.NewWanderingRouter(logger, router, eventBus, eventBus, obs.Tracer)
	if err := wanderingRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure wandering router: %w", err)
	}

	return &Module{
		EventBus:         eventBus,
		WanderingService: service,
		WanderingRouter:  wanderingRouter,
		QueueService:     queueService,
		config:           cfg,
		observability:    obs,
	}, nil
}

// Run starts the wandering module's background scheduling and repairs any
// timers lost to a restart.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting wandering module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start wandering queue service", "error", err)
		return
	}

	guildID := sharedtypes.GuildID(m.config.GuildID)
	if err := m.WanderingService.StartupResume(ctx, guildID, time.Now().UTC()); err != nil {
		logger.ErrorContext(ctx, "Failed to resume wandering event state", "error", err)
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Wandering module goroutine stopped")
}

// Close stops the wandering module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping wandering module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			logger.Error("Error stopping wandering queue service", "error", err)
		}
	}

	if m.WanderingRouter != nil {
		if err := m.WanderingRouter.Close(); err != nil {
			logger.Error("Error closing WanderingRouter from module", "error", err)
			return fmt.Errorf("error closing WanderingRouter: %w", err)
		}
	}

	logger.Info("Wandering module stopped")
	return nil
}
