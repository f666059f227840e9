package progressiondb

import (
	"context"

	progressiontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/progression"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Repository defines the contract for player and scoreboard persistence.
type Repository interface {
	// GetPlayer returns the member's record, creating a fresh level-1
	// record when none exists.
	GetPlayer(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*progressiontypes.Player, error)

	// SavePlayer upserts a member's record.
	SavePlayer(ctx context.Context, guildID sharedtypes.GuildID, player *progressiontypes.Player) error

	// ResetSeasonCounters zeroes every member's seasonal kill counter.
	ResetSeasonCounters(ctx context.Context, guildID sharedtypes.GuildID) error

	// GetBoard returns the guild scoreboard, creating an empty one when
	// none exists.
	GetBoard(ctx context.Context, guildID sharedtypes.GuildID) (*progressiontypes.Board, error)

	// SaveBoard upserts the guild scoreboard.
	SaveBoard(ctx context.Context, guildID sharedtypes.GuildID, board *progressiontypes.Board) error
}
