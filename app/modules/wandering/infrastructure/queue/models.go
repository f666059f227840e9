package wanderingqueue

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// WanderingSpawnJob rolls a new wandering event at a spawn hour.
type WanderingSpawnJob struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

// Kind returns the job type identifier for River
func (WanderingSpawnJob) Kind() string { return "wandering_spawn" }

// WanderingResolveJob settles one event at its deadline. Unique by args so
// re-arming after a restart cannot queue a duplicate.
type WanderingResolveJob struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	EventID string              `json:"event_id"`
}

// Kind returns the job type identifier for River
func (WanderingResolveJob) Kind() string { return "wandering_resolve" }

// WanderingClearJob removes a resolved event after its display grace window.
type WanderingClearJob struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	EventID string              `json:"event_id"`
}

// Kind returns the job type identifier for River
func (WanderingClearJob) Kind() string { return "wandering_clear" }
