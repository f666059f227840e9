package seasonqueue

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// SeasonResolveJob triggers the daily boss resolution for a guild.
// Inserted by the midnight periodic job; unique by args so overlapping
// schedulers cannot double-resolve.
type SeasonResolveJob struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// Kind returns the job type identifier for River
func (SeasonResolveJob) Kind() string { return "season_resolve" }
