package seasonservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	seasondb "github.com/jollyfox-guild/vale-bot/app/modules/season/infrastructure/repositories"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/jollyfox-guild/vale-bot/config"
)

// SeasonService implements the Service interface.
type SeasonService struct {
	repo    seasondb.Repository
	logger  *slog.Logger
	metrics opmetrics.OperationMetrics
	tracer  trace.Tracer

	balance config.BalanceConfig
	maxDays int

	// mu serializes every read-modify-write of the seasonal document so
	// concurrent voters cannot drop each other's votes and a forced resolve
	// cannot interleave with the scheduled one.
	mu sync.Mutex

	// randInt is swapped for a deterministic source in tests.
	randInt func(n int) int
}

// NewSeasonService creates a new SeasonService.
func NewSeasonService(
	repo seasondb.Repository,
	logger *slog.Logger,
	metrics opmetrics.OperationMetrics,
	tracer trace.Tracer,
	balance config.BalanceConfig,
	maxDays int,
) *SeasonService {
	return &SeasonService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		balance: balance,
		maxDays: maxDays,
		randInt: rand.IntN,
	}
}

// operationFunc is the signature for service operation functions.
type operationFunc func(ctx context.Context) (results.OperationResult, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery so every method reports the same way.
func (s *SeasonService) withTelemetry(
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "SeasonService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "SeasonService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.GuildID("guild_id", guildID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "SeasonService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "SeasonService")
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

	s.metrics.RecordOperationSuccess(ctx, operationName, "SeasonService")
	return result, nil
}
