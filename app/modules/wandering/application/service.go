package wanderingservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	wanderingdb "github.com/jollyfox-guild/vale-bot/app/modules/wandering/infrastructure/repositories"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// WanderingService implements the Service interface.
type WanderingService struct {
	repo        wanderingdb.Repository
	progression progressionservice.Service
	logger      *slog.Logger
	metrics     opmetrics.OperationMetrics
	tracer      trace.Tracer

	clearGrace time.Duration

	// mu serializes every read-modify-write of the event document so a late
	// join cannot race the resolution timer.
	mu sync.Mutex

	// scheduler is injected after construction; guarded by schedulerMu
	// because StartupResume can run while wiring finishes.
	scheduler   Scheduler
	schedulerMu sync.RWMutex

	// randInt is swapped for a deterministic source in tests.
	randInt func(n int) int
}

// NewWanderingService creates a new WanderingService.
func NewWanderingService(
	repo wanderingdb.Repository,
	progression progressionservice.Service,
	logger *slog.Logger,
	metrics opmetrics.OperationMetrics,
	tracer trace.Tracer,
	clearGrace time.Duration,
) *WanderingService {
	return &WanderingService{
		repo:        repo,
		progression: progression,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		clearGrace:  clearGrace,
		randInt:     rand.IntN,
	}
}

// SetScheduler wires in the queue-backed scheduler once it exists.
func (s *WanderingService) SetScheduler(scheduler Scheduler) {
	s.schedulerMu.Lock()
	defer s.schedulerMu.Unlock()
	s.scheduler = scheduler
}

func (s *WanderingService) getScheduler() Scheduler {
	s.schedulerMu.RLock()
	defer s.schedulerMu.RUnlock()
	return s.scheduler
}

// scheduleResolution arms the resolution timer, logging instead of failing
// the triggering operation when the queue is unavailable. StartupResume will
// re-arm on the next boot.
func (s *WanderingService) scheduleResolution(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) {
	scheduler := s.getScheduler()
	if scheduler == nil {
		s.logger.WarnContext(ctx, "No scheduler wired, resolution timer not armed",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", eventID),
		)
		return
	}
	if err := scheduler.ScheduleResolution(ctx, guildID, eventID, at); err != nil {
		s.logger.ErrorContext(ctx, "Failed to arm resolution timer",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", eventID),
			attr.Error(err),
		)
	}
}

func (s *WanderingService) scheduleClear(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) {
	scheduler := s.getScheduler()
	if scheduler == nil {
		s.logger.WarnContext(ctx, "No scheduler wired, clear timer not armed",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", eventID),
		)
		return
	}
	if err := scheduler.ScheduleClear(ctx, guildID, eventID, at); err != nil {
		s.logger.ErrorContext(ctx, "Failed to arm clear timer",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", eventID),
			attr.Error(err),
		)
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *WanderingService) withTelemetry(
	ctx context.Context,
	operationName string,
	guildID sharedtypes.GuildID,
	op operationFunc,
) (result results.OperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("guild_id", string(guildID)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "WanderingService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "WanderingService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GuildID("guild_id", guildID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "WanderingService")
			span.RecordError(err)
			result = results.OperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID("guild_id", guildID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "WanderingService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.Failure != nil {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.GuildID("guild_id", guildID),
			attr.Any("failure_payload", result.Failure),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "WanderingService")
	return result, nil
}
