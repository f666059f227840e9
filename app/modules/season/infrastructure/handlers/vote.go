package seasonhandlers

import (
	"context"
	"errors"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// HandleVote handles the VoteRequested event.
func (h *SeasonHandlers) HandleVote(ctx context.Context, payload *seasonevents.VoteRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RegisterVote(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		seasonevents.VoteRecorded,
		seasonevents.VoteFailed,
	)

	if result.Success != nil && h.refreshLimiter.Allow() {
		out = append(out, handlerwrapper.Result{
			Topic:   seasonevents.BoardRefresh,
			Payload: &seasonevents.BoardRefreshPayload{GuildID: payload.GuildID},
		})
	}

	return out, nil
}
