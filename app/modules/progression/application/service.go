package progressionservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	progressiondb "github.com/jollyfox-guild/vale-bot/app/modules/progression/infrastructure/repositories"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// ProgressionService implements the Service interface.
type ProgressionService struct {
	repo    progressiondb.Repository
	logger  *slog.Logger
	metrics opmetrics.OperationMetrics
	tracer  trace.Tracer

	powerUnlockThreshold int
	seasonGoal           int

	// mu serializes scoreboard read-modify-writes so overlapping payouts
	// cannot lose points.
	mu sync.Mutex
}

// NewProgressionService creates a new ProgressionService.
func NewProgressionService(
	repo progressiondb.Repository,
	logger *slog.Logger,
	metrics opmetrics.OperationMetrics,
	tracer trace.Tracer,
	powerUnlockThreshold int,
	seasonGoal int,
) *ProgressionService {
	return &ProgressionService{
		repo:                 repo,
		logger:               logger,
		metrics:              metrics,
		tracer:               tracer,
		powerUnlockThreshold: powerUnlockThreshold,
		seasonGoal:           seasonGoal,
	}
}

type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *ProgressionService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "ProgressionService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ProgressionService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GuildID("guild_id", guildID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "ProgressionService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "ProgressionService")
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

	s.metrics.RecordOperationSuccess(ctx, operationName, "ProgressionService")
	return result, nil
}
