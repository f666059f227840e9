package wanderinghandlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	wanderingservice "github.com/jollyfox-guild/vale-bot/app/modules/wandering/application"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
)

// WanderingHandlers implements the Handlers interface for wandering events.
type WanderingHandlers struct {
	service wanderingservice.Service
	logger  *slog.Logger
}

// NewWanderingHandlers creates a new WanderingHandlers instance.
func NewWanderingHandlers(service wanderingservice.Service, logger *slog.Logger) *WanderingHandlers {
	return &WanderingHandlers{
		service: service,
		logger:  logger,
	}
}

// mapOperationResult converts a service OperationResult to handler Results.
func mapOperationResult(
	result results.OperationResult,
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: successTopic, Payload: result.Success}}
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: result.Failure}}
	}
	return nil
}

// HandleSpawn handles an operator-requested spawn.
func (h *WanderingHandlers) HandleSpawn(ctx context.Context, payload *wanderingevents.SpawnRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.SpawnEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		wanderingevents.Spawned,
		wanderingevents.SpawnFailed,
	), nil
}

// HandleJoin handles the JoinRequested event.
func (h *WanderingHandlers) HandleJoin(ctx context.Context, payload *wanderingevents.JoinRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.JoinEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		wanderingevents.Joined,
		wanderingevents.JoinFailed,
	), nil
}

// HandleResolve handles an operator-forced early resolution.
func (h *WanderingHandlers) HandleResolve(ctx context.Context, payload *wanderingevents.ResolveRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ResolveEvent(ctx, payload.GuildID, payload.EventID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: wanderingevents.Resolved, Payload: result.Success}}, nil
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: wanderingevents.ResolveFailed, Payload: &wanderingevents.ResolveFailedPayload{
			GuildID: payload.GuildID,
			EventID: payload.EventID,
			Reason:  fmt.Sprint(result.Failure),
		}}}, nil
	}
	return nil, nil
}

// HandleGetState handles the StateRequested event.
func (h *WanderingHandlers) HandleGetState(ctx context.Context, payload *wanderingevents.StateRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetState(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		wanderingevents.StateRetrieved,
		wanderingevents.StateRetrieved,
	), nil
}
