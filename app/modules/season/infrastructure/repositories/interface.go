package seasondb

import (
	"context"

	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Repository defines the contract for seasonal-event document persistence.
//
// Error semantics:
//   - Load never fails on a missing or corrupt document; it self-heals to a
//     fresh default state so the schedulers keep running.
//   - Save reports infrastructure failures only.
type Repository interface {
	// Load retrieves the guild's seasonal document, creating a default
	// inactive one when none exists. A document that cannot be decoded is
	// discarded and replaced with the default.
	Load(ctx context.Context, guildID sharedtypes.GuildID) (*seasontypes.SeasonState, error)

	// Save upserts the guild's seasonal document.
	Save(ctx context.Context, guildID sharedtypes.GuildID, state *seasontypes.SeasonState) error
}
