// Package progressionevents defines player-progression and scoreboard topics.
package progressionevents

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

const Stream = "progression"

// Inbound command topics.
const (
	ProfileRequested     = "progression.profile.requested"
	ScoreboardRequested  = "progression.scoreboard.requested"
	JoinFactionRequested = "progression.faction.join.requested"
)

// Outbound result and notification topics.
const (
	ProfileRetrieved    = "progression.profile.retrieved"
	ProfileFailed       = "progression.profile.failed"
	ScoreboardRetrieved = "progression.scoreboard.retrieved"
	FactionJoined       = "progression.faction.joined"
	FactionJoinFailed   = "progression.faction.join.failed"
	PowerUnlocked       = "progression.power.unlocked"
	LevelUp             = "progression.level.up"
)

type ProfileRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
}

type ProfileRetrievedPayload struct {
	GuildID          sharedtypes.GuildID   `json:"guild_id"`
	UserID           sharedtypes.UserID    `json:"user_id"`
	FactionID        sharedtypes.FactionID `json:"faction_id"`
	XP               int                   `json:"xp"`
	Level            int                   `json:"level"`
	MonstersSeason   int                   `json:"monsters_season"`
	MonstersLifetime int                   `json:"monsters_lifetime"`
}

type ProfileFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	Reason  string              `json:"reason"`
}

type JoinFactionRequestedPayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	UserID    sharedtypes.UserID    `json:"user_id"`
	FactionID sharedtypes.FactionID `json:"faction_id"`
}

type FactionJoinedPayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	UserID    sharedtypes.UserID    `json:"user_id"`
	FactionID sharedtypes.FactionID `json:"faction_id"`
}

type FactionJoinFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	Reason  string              `json:"reason"`
}

type ScoreboardRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type FactionStanding struct {
	FactionID     sharedtypes.FactionID `json:"faction_id"`
	Points        int                   `json:"points"`
	PowerUnlocked bool                  `json:"power_unlocked"`
}

type ScoreboardRetrievedPayload struct {
	GuildID      sharedtypes.GuildID `json:"guild_id"`
	GlobalPoints int                 `json:"global_points"`
	SeasonGoal   int                 `json:"season_goal"`
	Factions     []FactionStanding   `json:"factions"`
}

type PowerUnlockedPayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	FactionID sharedtypes.FactionID `json:"faction_id"`
	Points    int                   `json:"points"`
}

type LevelUpPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	Level   int                 `json:"level"`
}
