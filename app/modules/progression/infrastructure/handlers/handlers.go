package progressionhandlers

import (
	"context"
	"errors"
	"log/slog"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
)

// Handlers is the progression module's event handler surface.
type Handlers interface {
	HandleProfileRequest(ctx context.Context, payload *progressionevents.ProfileRequestedPayload) ([]handlerwrapper.Result, error)
	HandleScoreboardRequest(ctx context.Context, payload *progressionevents.ScoreboardRequestedPayload) ([]handlerwrapper.Result, error)
	HandleJoinFaction(ctx context.Context, payload *progressionevents.JoinFactionRequestedPayload) ([]handlerwrapper.Result, error)
}

// ProgressionHandlers implements the Handlers interface.
type ProgressionHandlers struct {
	service progressionservice.Service
	logger  *slog.Logger
}

// NewProgressionHandlers creates a new ProgressionHandlers instance.
func NewProgressionHandlers(service progressionservice.Service, logger *slog.Logger) *ProgressionHandlers {
	return &ProgressionHandlers{service: service, logger: logger}
}

func mapOperationResult(result results.OperationResult, successTopic, failureTopic string) []handlerwrapper.Result {
	if result.Success != nil {
		return []handlerwrapper.Result{{Topic: successTopic, Payload: result.Success}}
	}
	if result.Failure != nil {
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: result.Failure}}
	}
	return nil
}

// HandleProfileRequest handles the ProfileRequested event.
func (h *ProgressionHandlers) HandleProfileRequest(ctx context.Context, payload *progressionevents.ProfileRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetProfile(ctx, payload.GuildID, payload.UserID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		progressionevents.ProfileRetrieved,
		progressionevents.ProfileFailed,
	), nil
}

// HandleScoreboardRequest handles the ScoreboardRequested event.
func (h *ProgressionHandlers) HandleScoreboardRequest(ctx context.Context, payload *progressionevents.ScoreboardRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.GetScoreboard(ctx, payload.GuildID)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		progressionevents.ScoreboardRetrieved,
		progressionevents.ProfileFailed,
	), nil
}

// HandleJoinFaction handles the JoinFactionRequested event.
func (h *ProgressionHandlers) HandleJoinFaction(ctx context.Context, payload *progressionevents.JoinFactionRequestedPayload) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.JoinFaction(ctx, payload)
	if err != nil {
		return nil, err
	}

	return mapOperationResult(result,
		progressionevents.FactionJoined,
		progressionevents.FactionJoinFailed,
	), nil
}
