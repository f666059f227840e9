package seasonqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	seasonservice "github.com/jollyfox-guild/vale-bot/app/modules/season/application"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// QueueService owns the midnight resolution schedule for the season module.
type QueueService interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules daily resolutions using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics opmetrics.OperationMetrics
}

// NewService creates a River-based queue service that fires the daily
// resolution at every UTC midnight.
func NewService(
	ctx context.Context,
	logger *slog.Logger,
	dsn string,
	metrics opmetrics.OperationMetrics,
	seasonService seasonservice.Service,
	eventBus eventbus.EventBus,
	guildID sharedtypes.GuildID,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
		attr.String("module", "season"),
	)

	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSeasonResolveWorker(ctxLogger, seasonService, eventBus))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"season":           {MaxWorkers: 1}, // one resolution at a time
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				utcMidnightSchedule{},
				func() (river.JobArgs, *river.InsertOpts) {
					return SeasonResolveJob{GuildID: guildID}, &river.InsertOpts{
						Queue: "season",
						UniqueOpts: river.UniqueOpts{
							ByArgs:   true,
							ByPeriod: time.Hour,
						},
					}
				},
				&river.PeriodicJobOpts{RunOnStart: false},
			),
		},
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	ctxLogger.Info("Season queue service initialized")

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.logger.Info("Season queue service started")
	return nil
}

// Stop stops the River queue service and releases its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	if err := s.client.Stop(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.logger.Info("Season queue service stopped")
	return nil
}
