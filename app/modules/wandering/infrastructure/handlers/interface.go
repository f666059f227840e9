package wanderinghandlers

import (
	"context"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// Handlers is the wandering module's event handler surface.
type Handlers interface {
	HandleSpawn(ctx context.Context, payload *wanderingevents.SpawnRequestedPayload) ([]handlerwrapper.Result, error)
	HandleJoin(ctx context.Context, payload *wanderingevents.JoinRequestedPayload) ([]handlerwrapper.Result, error)
	HandleResolve(ctx context.Context, payload *wanderingevents.ResolveRequestedPayload) ([]handlerwrapper.Result, error)
	HandleGetState(ctx context.Context, payload *wanderingevents.StateRequestedPayload) ([]handlerwrapper.Result, error)
}
