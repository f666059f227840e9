package seasonservice

import (
	"context"
	"time"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Service is the seasonal boss application surface.
//
// Business-rule rejections come back as Failure payloads; the error return
// is reserved for infrastructure problems. Every mutating operation runs as
// one critical section over the guild's seasonal document.
type Service interface {
	// RegisterVote records a voter's daily action, last-vote-wins.
	RegisterVote(ctx context.Context, payload *seasonevents.VoteRequestedPayload) (results.OperationResult, error)

	// ResolveDue runs the daily resolution if it has not run for the
	// current UTC date. Idempotent per calendar day.
	ResolveDue(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) (results.OperationResult, error)

	// ForceResolve bypasses the once-per-day idempotence.
	ForceResolve(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) (results.OperationResult, error)

	// StartSeason activates a new boss fight.
	StartSeason(ctx context.Context, payload *seasonevents.StartRequestedPayload) (results.OperationResult, error)

	// ResetSeason restores faction HP, clears votes and used-power flags,
	// keeps unlocked-power flags, and deactivates the fight.
	ResetSeason(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)

	// UnlockPower marks a faction's seasonal power as available.
	UnlockPower(ctx context.Context, guildID sharedtypes.GuildID, factionID sharedtypes.FactionID) (results.OperationResult, error)

	// GetState returns the current seasonal document for display.
	GetState(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)
}
