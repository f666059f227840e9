package wanderingservice

import (
	"context"
	"time"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Scheduler arms the one-shot timers that drive an event's lifecycle. The
// queue service implements it; it is injected after construction because the
// queue's workers need the service first.
type Scheduler interface {
	// ScheduleResolution arms the resolution timer for an event.
	ScheduleResolution(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) error

	// ScheduleClear arms the post-resolution cleanup timer for an event.
	ScheduleClear(ctx context.Context, guildID sharedtypes.GuildID, eventID string, at time.Time) error
}

// Service is the wandering-event application surface.
type Service interface {
	// SpawnEvent creates a new wandering event when none is active. An empty
	// difficulty in the payload means a weighted random pick.
	SpawnEvent(ctx context.Context, payload *wanderingevents.SpawnRequestedPayload) (results.OperationResult, error)

	// JoinEvent adds a member to the active event's hunting party. Joining
	// twice is a no-op that still succeeds.
	JoinEvent(ctx context.Context, payload *wanderingevents.JoinRequestedPayload) (results.OperationResult, error)

	// ResolveEvent settles an event at its deadline: success when enough
	// hunters joined, paying out rewards through the progression service.
	ResolveEvent(ctx context.Context, guildID sharedtypes.GuildID, eventID string, now time.Time) (results.OperationResult, error)

	// ClearEvent removes a resolved event after its display grace window.
	ClearEvent(ctx context.Context, guildID sharedtypes.GuildID, eventID string) (results.OperationResult, error)

	// StartupResume repairs scheduling state after a restart: expired
	// unresolved events are discarded, pending ones get their timers
	// re-armed.
	StartupResume(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) error

	// GetState returns the current event, if any, for display.
	GetState(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)
}
