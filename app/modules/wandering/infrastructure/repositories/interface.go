package wanderingdb

import (
	"context"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

// Repository defines the contract for wandering-event document persistence.
// At most one event document exists per guild; a nil event means nothing is
// currently spawned.
//
// Error semantics:
//   - Load never fails on a missing or corrupt document; it self-heals to
//     nil so the spawner can start fresh.
//   - Save reports infrastructure failures only.
type Repository interface {
	// Load retrieves the guild's current wandering event, or nil when none
	// exists. A document that cannot be decoded is discarded.
	Load(ctx context.Context, guildID sharedtypes.GuildID) (*wanderingtypes.Event, error)

	// Save upserts the guild's wandering event. A nil event clears the slot.
	Save(ctx context.Context, guildID sharedtypes.GuildID, event *wanderingtypes.Event) error
}
