package progressionservice

import (
	"context"

	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// EventRewards describes one wandering event's payout.
type EventRewards struct {
	Participants  sharedtypes.UserSet
	Factions      sharedtypes.FactionSet
	GlobalReward  int
	FactionReward int
	XPReward      int
}

// RewardReport summarizes what a payout changed, so the caller can publish
// the follow-up notifications.
type RewardReport struct {
	GlobalPoints int
	PowerUnlocks []sharedtypes.FactionID
	LevelUps     map[sharedtypes.UserID]int
}

// Service is the player-progression application surface.
type Service interface {
	// GetProfile returns a member's progression record for display.
	GetProfile(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error)

	// JoinFaction assigns a member to a faction.
	JoinFaction(ctx context.Context, payload *progressionevents.JoinFactionRequestedPayload) (results.OperationResult, error)

	// GetScoreboard returns the guild's point standings.
	GetScoreboard(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error)

	// AwardEventRewards pays out a successful wandering event: the global
	// reward once, the faction reward once per distinct faction, and the XP
	// reward plus a kill credit to every participant.
	AwardEventRewards(ctx context.Context, guildID sharedtypes.GuildID, rewards EventRewards) (*RewardReport, error)

	// PlayerFaction reports which faction a member belongs to, empty when
	// unaffiliated.
	PlayerFaction(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (sharedtypes.FactionID, error)

	// ResetSeason starts a fresh scoreboard season and zeroes seasonal
	// kill counters.
	ResetSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID string) (results.OperationResult, error)
}
