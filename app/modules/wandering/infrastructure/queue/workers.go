package wanderingqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"

	wanderingservice "github.com/jollyfox-guild/vale-bot/app/modules/wandering/application"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
)

// wanderingSpawnWorker rolls a random event when a spawn hour fires.
type wanderingSpawnWorker struct {
	river.WorkerDefaults[WanderingSpawnJob]
	logger   *slog.Logger
	service  wanderingservice.Service
	eventBus eventbus.EventBus
}

// NewWanderingSpawnWorker creates the worker for scheduled spawns.
func NewWanderingSpawnWorker(logger *slog.Logger, service wanderingservice.Service, eventBus eventbus.EventBus) river.Worker[WanderingSpawnJob] {
	return &wanderingSpawnWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
	}
}

func (w *wanderingSpawnWorker) Work(ctx context.Context, job *river.Job[WanderingSpawnJob]) error {
	guildID := job.Args.GuildID

	result, err := w.service.SpawnEvent(ctx, &wanderingevents.SpawnRequestedPayload{GuildID: guildID})
	if err != nil {
		return err
	}

	if result.Failure != nil {
		// An event already occupies the slot; skip this hour.
		w.logger.InfoContext(ctx, "Scheduled spawn skipped",
			attr.GuildID("guild_id", guildID),
			attr.Any("reason", result.Failure),
		)
		return nil
	}

	if result.Success != nil {
		publish(ctx, w.logger, w.eventBus, wanderingevents.Spawned, result.Success)
	}
	return nil
}

// wanderingResolveWorker settles an event when its deadline fires.
type wanderingResolveWorker struct {
	river.WorkerDefaults[WanderingResolveJob]
	logger   *slog.Logger
	service  wanderingservice.Service
	eventBus eventbus.EventBus
}

// NewWanderingResolveWorker creates the worker for event resolutions.
func NewWanderingResolveWorker(logger *slog.Logger, service wanderingservice.Service, eventBus eventbus.EventBus) river.Worker[WanderingResolveJob] {
	return &wanderingResolveWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
	}
}

func (w *wanderingResolveWorker) Work(ctx context.Context, job *river.Job[WanderingResolveJob]) error {
	guildID := job.Args.GuildID

	result, err := w.service.ResolveEvent(ctx, guildID, job.Args.EventID, time.Now().UTC())
	if err != nil {
		// Returning the error lets River retry with backoff.
		return err
	}

	if result.Failure != nil {
		// Stale timer for a replaced or already-resolved event.
		w.logger.InfoContext(ctx, "Scheduled resolution skipped",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", job.Args.EventID),
			attr.Any("reason", result.Failure),
		)
		return nil
	}

	resolved, ok := result.Success.(*wanderingevents.ResolvedPayload)
	if !ok {
		return nil
	}

	// The payout is already persisted; publish failures are logged and
	// swallowed so the job does not re-run resolution.
	publish(ctx, w.logger, w.eventBus, wanderingevents.Resolved, resolved)
	for _, factionID := range resolved.PowerUnlocks {
		publish(ctx, w.logger, w.eventBus, progressionevents.PowerUnlocked, &progressionevents.PowerUnlockedPayload{
			GuildID:   guildID,
			FactionID: factionID,
		})
	}
	for userID, level := range resolved.LevelUps {
		publish(ctx, w.logger, w.eventBus, progressionevents.LevelUp, &progressionevents.LevelUpPayload{
			GuildID: guildID,
			UserID:  userID,
			Level:   level,
		})
	}
	return nil
}

// wanderingClearWorker removes a resolved event after its grace window.
type wanderingClearWorker struct {
	river.WorkerDefaults[WanderingClearJob]
	logger   *slog.Logger
	service  wanderingservice.Service
	eventBus eventbus.EventBus
}

// NewWanderingClearWorker creates the worker for event cleanup.
func NewWanderingClearWorker(logger *slog.Logger, service wanderingservice.Service, eventBus eventbus.EventBus) river.Worker[WanderingClearJob] {
	return &wanderingClearWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
	}
}

func (w *wanderingClearWorker) Work(ctx context.Context, job *river.Job[WanderingClearJob]) error {
	result, err := w.service.ClearEvent(ctx, job.Args.GuildID, job.Args.EventID)
	if err != nil {
		return err
	}

	if result.Failure != nil {
		w.logger.InfoContext(ctx, "Scheduled clear skipped",
			attr.GuildID("guild_id", job.Args.GuildID),
			attr.String("event_id", job.Args.EventID),
			attr.Any("reason", result.Failure),
		)
		return nil
	}

	if result.Success != nil {
		publish(ctx, w.logger, w.eventBus, wanderingevents.Cleared, result.Success)
	}
	return nil
}

func publish(ctx context.Context, logger *slog.Logger, eventBus eventbus.EventBus, topic string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to marshal scheduled event",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := eventBus.Publish(topic, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to publish scheduled event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
