// Package seasonevents defines the seasonal-boss topics and payloads
// exchanged with the Discord-side worker.
package seasonevents

import (
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Stream groups every season subject under one JetStream stream.
const Stream = "season"

// Inbound command topics.
const (
	VoteRequested    = "season.vote.requested"
	ResolveRequested = "season.resolve.requested"
	StartRequested   = "season.start.requested"
	ResetRequested   = "season.reset.requested"
	StateRequested   = "season.state.requested"
	PowerUnlocked    = "progression.power.unlocked"
)

// Outbound result and notification topics.
const (
	VoteRecorded   = "season.vote.recorded"
	VoteFailed     = "season.vote.failed"
	DayResolved    = "season.day.resolved"
	ResolveFailed  = "season.resolve.failed"
	Started        = "season.started"
	StartFailed    = "season.start.failed"
	ResetDone      = "season.reset.done"
	ResetFailed    = "season.reset.failed"
	StateRetrieved = "season.state.retrieved"
	BoardRefresh   = "season.board.refresh"
)

type VoteRequestedPayload struct {
	GuildID   sharedtypes.GuildID    `json:"guild_id"`
	UserID    sharedtypes.UserID     `json:"user_id"`
	FactionID sharedtypes.FactionID  `json:"faction_id"`
	Action    sharedtypes.VoteAction `json:"action"`
}

type VoteRecordedPayload struct {
	GuildID   sharedtypes.GuildID    `json:"guild_id"`
	UserID    sharedtypes.UserID     `json:"user_id"`
	FactionID sharedtypes.FactionID  `json:"faction_id"`
	Action    sharedtypes.VoteAction `json:"action"`
}

type VoteFailedPayload struct {
	GuildID   sharedtypes.GuildID    `json:"guild_id"`
	UserID    sharedtypes.UserID     `json:"user_id"`
	FactionID sharedtypes.FactionID  `json:"faction_id"`
	Action    sharedtypes.VoteAction `json:"action"`
	Reason    string                 `json:"reason"`
}

type ResolveRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	// Forced resolutions bypass the once-per-day idempotence.
	Forced bool `json:"forced"`
}

type DayResolvedPayload struct {
	GuildID sharedtypes.GuildID           `json:"guild_id"`
	Summary seasontypes.ResolutionSummary `json:"summary"`
}

type ResolveFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}

type StartRequestedPayload struct {
	GuildID    sharedtypes.GuildID    `json:"guild_id"`
	BossName   string                 `json:"boss_name"`
	BossMaxHP  int                    `json:"boss_max_hp"`
	AvatarURL  string                 `json:"avatar_url,omitempty"`
	Difficulty seasontypes.Difficulty `json:"difficulty"`
	BossType   seasontypes.BossType   `json:"boss_type"`
}

type StartedPayload struct {
	GuildID  sharedtypes.GuildID `json:"guild_id"`
	BossName string              `json:"boss_name"`
	Day      int                 `json:"day"`
}

type StartFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}

type ResetRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type ResetDonePayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type ResetFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}

type StateRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type StateRetrievedPayload struct {
	GuildID sharedtypes.GuildID      `json:"guild_id"`
	State   *seasontypes.SeasonState `json:"state"`
}

// BoardRefreshPayload asks the presentation worker to redraw the seasonal
// board. Fire-and-forget; failures are the worker's problem.
type BoardRefreshPayload struct {
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	EmbedChannelID string              `json:"embed_channel_id,omitempty"`
	EmbedMessageID string              `json:"embed_message_id,omitempty"`
}

// PowerUnlockedPayload arrives from the progression module when a faction
// crosses its point threshold.
type PowerUnlockedPayload struct {
	GuildID   sharedtypes.GuildID   `json:"guild_id"`
	FactionID sharedtypes.FactionID `json:"faction_id"`
	Points    int                   `json:"points"`
}
