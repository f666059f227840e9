package progression

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	progressiondb "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/repositories"
	progressionrouter "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/router"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	"github.com/jollyfox-guild/vale-bot/config"
)

// Module represents the progression module.
type Module struct {
	EventBus           eventbus.EventBus
	ProgressionService progressionservice.Service
	ProgressionRouter  *progressionrouter.ProgressionRouter
	config             *config.Config
	observability      *observability.Provider
	cancelFunc         context.CancelFunc
}

// NewProgressionModule creates a new instance of the progression module.
func NewProgressionModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Provider,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	metrics := opmetrics.NewPrometheusMetrics(obs.Registry, "progression")

	repo := &progressiondb.ProgressionDBImpl{DB: db}
	service := progressionservice.NewProgressionService(
		repo,
		logger,
		metrics,
		obs.Tracer,
		cfg.Balance.PowerUnlockThreshold,
		cfg.Season.SeasonGoal,
	)

	progressionRouter := progressionrouter.NewProgressionRouter(logger, router, eventBus, eventBus, obs.Tracer)
	if err := progressionRouter.Configure(routerCtx, service); err != nil {
		return nil, fmt.Errorf("failed to configure progression router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		ProgressionService: service,
		ProgressionRouter:  progressionRouter,
		config:             cfg,
		observability:      obs,
	}, nil
}

// Run keeps the progression module alive until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting progression module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Progression module goroutine stopped")
}

// Close stops the progression module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping progression module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ProgressionRouter != nil {
		if err := m.ProgressionRouter.Close(); err != nil {
			logger.Error("Error closing ProgressionRouter from module", "error", err)
			return fmt.Errorf("error closing ProgressionRouter: %w", err)
		}
	}

	logger.Info("Progression module stopped")
	return nil
}
