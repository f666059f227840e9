package seasonqueue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/riverqueue/river"

	seasonservice "github.com/jollyfox-guild/vale-bot/app/modules/season/application"
	"github.com/jollyfox-guild/vale-bot/app/eventbus"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
)

// seasonResolveWorker runs the daily resolution when the midnight job fires.
type seasonResolveWorker struct {
	river.WorkerDefaults[SeasonResolveJob]
	logger   *slog.Logger
	service  seasonservice.Service
	eventBus eventbus.EventBus
}

// NewSeasonResolveWorker creates the worker for scheduled daily resolutions.
func NewSeasonResolveWorker(logger *slog.Logger, service seasonservice.Service, eventBus eventbus.EventBus) river.Worker[SeasonResolveJob] {
	return &seasonResolveWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
	}
}

func (w *seasonResolveWorker) Work(ctx context.Context, job *river.Job[SeasonResolveJob]) error {
	guildID := job.Args.GuildID

	result, err := w.service.ResolveDue(ctx, guildID, time.Now().UTC())
	if err != nil {
		// Returning the error lets River retry with backoff.
		return err
	}

	if result.Failure != nil {
		// Inactive season or an already-resolved date; nothing to announce.
		w.logger.InfoContext(ctx, "Scheduled resolution skipped",
			attr.GuildID("guild_id", guildID),
			attr.Any("reason", result.Failure),
		)
		return nil
	}

	// Notifications go out after the document mutation is persisted; a
	// failed publish is logged and swallowed so the job does not re-run
	// resolution.
	if result.Success != nil {
		w.publish(ctx, seasonevents.DayResolved, result.Success)
		w.publish(ctx, seasonevents.BoardRefresh, &seasonevents.BoardRefreshPayload{GuildID: guildID})
	}
	return nil
}

func (w *seasonResolveWorker) publish(ctx context.Context, topic string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to marshal scheduled event",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := w.eventBus.Publish(topic, msg); err != nil {
		w.logger.ErrorContext(ctx, "Failed to publish scheduled event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}
