// Package wanderingevents defines the wandering-monster topics and payloads.
package wanderingevents

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

const Stream = "wandering"

// Inbound command topics.
const (
	SpawnRequested   = "wandering.spawn.requested"
	JoinRequested    = "wandering.join.requested"
	ResolveRequested = "wandering.resolve.requested"
	StateRequested   = "wandering.state.requested"
)

// Outbound result and notification topics.
const (
	Spawned        = "wandering.spawned"
	SpawnFailed    = "wandering.spawn.failed"
	Joined         = "wandering.joined"
	JoinFailed     = "wandering.join.failed"
	Resolved       = "wandering.resolved"
	ResolveFailed  = "wandering.resolve.failed"
	Cleared        = "wandering.cleared"
	StateRetrieved = "wandering.state.retrieved"
)

type SpawnRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	// Empty difficulty means a weighted random pick.
	Difficulty wanderingtypes.EventDifficulty `json:"difficulty,omitempty"`
	ChannelID  string                         `json:"channel_id,omitempty"`
}

type SpawnedPayload struct {
	GuildID sharedtypes.GuildID   `json:"guild_id"`
	Event   *wanderingtypes.Event `json:"event"`
}

type SpawnFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Reason  string              `json:"reason"`
}

type JoinRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	EventID string              `json:"event_id"`
}

type JoinedPayload struct {
	GuildID      sharedtypes.GuildID `json:"guild_id"`
	UserID       sharedtypes.UserID  `json:"user_id"`
	EventID      string              `json:"event_id"`
	Participants int                 `json:"participants"`
	Required     int                 `json:"required"`
}

type JoinFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	EventID string              `json:"event_id"`
	Reason  string              `json:"reason"`
}

// ResolveRequestedPayload forces an early resolution from the command
// surface. EventID guards against racing a replacement spawn.
type ResolveRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	EventID string              `json:"event_id"`
}

type ResolveFailedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	EventID string              `json:"event_id"`
	Reason  string              `json:"reason"`
}

type ResolvedPayload struct {
	GuildID sharedtypes.GuildID     `json:"guild_id"`
	Outcome *wanderingtypes.Outcome `json:"outcome"`

	// Progression side effects of the payout, so downstream consumers can
	// announce them without re-reading the scoreboard.
	PowerUnlocks []sharedtypes.FactionID    `json:"power_unlocks,omitempty"`
	LevelUps     map[sharedtypes.UserID]int `json:"level_ups,omitempty"`
}

// ClearedPayload tells the worker to take down the event message after the
// post-resolution grace window.
type ClearedPayload struct {
	GuildID   sharedtypes.GuildID `json:"guild_id"`
	EventID   string              `json:"event_id"`
	ChannelID string              `json:"channel_id,omitempty"`
	MessageID string              `json:"message_id,omitempty"`
}

type StateRequestedPayload struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
}

type StateRetrievedPayload struct {
	GuildID sharedtypes.GuildID   `json:"guild_id"`
	Event   *wanderingtypes.Event `json:"event"`
}
