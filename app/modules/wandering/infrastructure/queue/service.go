package wanderingqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	wanderingservice "github.com/jollyfox-guild/vale-bot/app/modules/wandering/application"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// QueueService owns the spawn and lifecycle timers of the wandering module.
type QueueService interface {
	wanderingservice.Scheduler
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules spawns and event timers using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics opmetrics.OperationMetrics
}

// NewService creates a River-based queue service that spawns events at the
// configured UTC hours and arms per-event resolution and clear timers.
func NewService(
	ctx context.Context,
	logger *slog.Logger,
	dsn string,
	metrics opmetrics.OperationMetrics,
	wanderingService wanderingservice.Service,
	eventBus eventbus.EventBus,
	guildID sharedtypes.GuildID,
	spawnHours []int,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
		attr.String("module", "wandering"),
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
	river.AddWorker(workers, NewWanderingSpawnWorker(ctxLogger, wanderingService, eventBus))
	river.AddWorker(workers, NewWanderingResolveWorker(ctxLogger, wanderingService, eventBus))
	river.AddWorker(workers, NewWanderingClearWorker(ctxLogger, wanderingService, eventBus))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			"wandering":        {MaxWorkers: 1}, // one lifecycle mutation at a time
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				newSpawnHoursSchedule(spawnHours),
				func() (river.JobArgs, *river.InsertOpts) {
					return WanderingSpawnJob{GuildID: guildID}, &river.InsertOpts{
						Queue: "wandering",
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
	ctxLogger.Info("Wandering queue service initialized")

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// ScheduleResolution inserts the one-shot resolution job for an event.
func (s *Service) ScheduleResolution(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) error {
	_, err := s.client.Insert(ctx, WanderingResolveJob{GuildID: guildID, EventID: eventID}, &river.InsertOpts{
		Queue:       "wandering",
		ScheduledAt: at,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule resolution: %w", err)
	}
	return nil
}

// ScheduleClear inserts the one-shot cleanup job for a resolved event.
func (s *Service) ScheduleClear(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) error {
	_, err := s.client.Insert(ctx, WanderingClearJob{GuildID: guildID, EventID: eventID}, &river.InsertOpts{
		Queue:       "wandering",
		ScheduledAt: at,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to schedule clear: %w", err)
	}
	return nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.logger.Info("Wandering queue service started")
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
	s.logger.Info("Wandering queue service stopped")
	return nil
}
