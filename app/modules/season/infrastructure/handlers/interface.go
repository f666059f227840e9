package seasonhandlers

import (
	"context"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/handlerwrapper"
)

// Handlers is the season module's event handler surface.
type Handlers interface {
	HandleVote(ctx context.Context, payload *seasonevents.VoteRequestedPayload) ([]handlerwrapper.Result, error)
	HandleResolve(ctx context.Context, payload *seasonevents.ResolveRequestedPayload) ([]handlerwrapper.Result, error)
	HandleStartSeason(ctx context.Context, payload *seasonevents.StartRequestedPayload) ([]handlerwrapper.Result, error)
	HandleResetSeason(ctx context.Context, payload *seasonevents.ResetRequestedPayload) ([]handlerwrapper.Result, error)
	HandleGetState(ctx context.Context, payload *seasonevents.StateRequestedPayload) ([]handlerwrapper.Result, error)
	HandlePowerUnlocked(ctx context.Context, payload *seasonevents.PowerUnlockedPayload) ([]handlerwrapper.Result, error)
}
