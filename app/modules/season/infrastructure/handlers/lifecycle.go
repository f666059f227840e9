package seasonhandlers

import (
	"context"
	"errors"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// HandleStartSeason handles the StartRequested event.
func (h *SeasonHandlers) HandleStartSeason(ctx context.Context, payload *seasonevents.StartRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.StartSeason(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		seasonevents.Started,
		seasonevents.StartFailed,
	)
	if result.Success != nil {
		out = append(out, handlerwrapper.Result{
			Topic:   seasonevents.BoardRefresh,
			Payload: &seasonevents.BoardRefreshPayload{GuildID: payload.GuildID},
		})
	}
	return out, nil
}

// HandleResetSeason handles the ResetRequested event.
func (h *SeasonHandlers) HandleResetSeason(ctx context.Context, payload *seasonevents.ResetRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResetSeason(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		seasonevents.ResetDone,
		seasonevents.ResetFailed,
	)
	if result.Success != nil {
		out = append(out, handlerwrapper.Result{
			Topic:   seasonevents.BoardRefresh,
			Payload: &seasonevents.BoardRefreshPayload{GuildID: payload.GuildID},
		})
	}
	return out, nil
}

// HandleGetState handles the StateRequested event.
func (h *SeasonHandlers) HandleGetState(ctx context.Context, payload *seasonevents.StateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetState(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		seasonevents.StateRetrieved,
		seasonevents.ResolveFailed,
	), nil
}

// HandlePowerUnlocked handles the progression module's threshold event.
func (h *SeasonHandlers) HandlePowerUnlocked(ctx context.Context, payload *seasonevents.PowerUnlockedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.UnlockPower(ctx, payload.GuildID, payload.FactionID)
	if err != nil {
		return nil, err
	}

	// No outbound result topic; the unlock only changes future vote
	// eligibility. Refresh the board so the new power shows up.
	if result.Success != nil && h.refreshLimiter.Allow() {
		return []handlerwrapper.Result{{
			Topic:   seasonevents.BoardRefresh,
			Payload: &seasonevents.BoardRefreshPayload{GuildID: payload.GuildID},
		}}, nil
	}
	return nil, nil
}
