package seasonhandlers

import (
	"context"
	"errors"
	"time"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
)

// HandleResolve handles the ResolveRequested event, the admin-triggered
// path. Forced requests bypass the once-per-day idempotence.
func (h *SeasonHandlers) HandleResolve(ctx context.Context, payload *seasonevents.ResolveRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	now := time.Now().UTC()
	var result results.OperationResult
	var err error
	if payload.Forced {
		result, err = h.service.ForceResolve(ctx, payload.GuildID, now)
	} else {
		result, err = h.service.ResolveDue(ctx, payload.GuildID, now)
	}
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		seasonevents.DayResolved,
		seasonevents.ResolveFailed,
	)

	if result.Success != nil {
		out = append(out, handlerwrapper.Result{
			Topic:   seasonevents.BoardRefresh,
			Payload: &seasonevents.BoardRefreshPayload{GuildID: payload.GuildID},
		})
	}

	return out, nil
}
