package wanderingtypes

import (
	"time"

	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// EventDifficulty classifies a wandering threat.
type EventDifficulty string

const (
	EventTest     EventDifficulty = "test"
	EventMinor    EventDifficulty = "minor"
	EventStandard EventDifficulty = "standard"
	EventMajor    EventDifficulty = "major"
	EventCritical EventDifficulty = "critical"
)

func (d EventDifficulty) IsValid() bool {
	switch d {
	case EventTest, EventMinor, EventStandard, EventMajor, EventCritical:
		return true
	}
	return false
}

// DifficultyPreset fixes the duration, participation threshold and rewards
// for one event difficulty.
type DifficultyPreset struct {
	Minutes              int
	RequiredParticipants int
	FactionReward        int
	GlobalReward         int
	XPReward             int
}

// DifficultyTable holds the fixed presets per difficulty.
var DifficultyTable = map[EventDifficulty]DifficultyPreset{
	EventTest:     {Minutes: 5, RequiredParticipants: 1, FactionReward: 5, GlobalReward: 5, XPReward: 10},
	EventMinor:    {Minutes: 15, RequiredParticipants: 1, FactionReward: 10, GlobalReward: 10, XPReward: 20},
	EventStandard: {Minutes: 20, RequiredParticipants: 3, FactionReward: 20, GlobalReward: 20, XPReward: 30},
	EventMajor:    {Minutes: 30, RequiredParticipants: 5, FactionReward: 30, GlobalReward: 25, XPReward: 40},
	EventCritical: {Minutes: 30, RequiredParticipants: 8, FactionReward: 40, GlobalReward: 30, XPReward: 50},
}

// SpawnWeights drives the random spawner; "test" never spawns on its own.
var SpawnWeights = map[EventDifficulty]int{
	EventMinor:    50,
	EventStandard: 25,
	EventMajor:    10,
	EventCritical: 3,
}

// Event is the wandering world-event document. At most one unresolved
// event exists per guild at a time.
type Event struct {
	EventID         string          `json:"event_id"`
	EndsAt          time.Time       `json:"ends_at"`
	DurationMinutes int             `json:"duration_minutes"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Difficulty      EventDifficulty `json:"difficulty"`

	RequiredParticipants int `json:"required_participants"`
	FactionReward        int `json:"faction_reward"`
	GlobalReward         int `json:"global_reward"`
	XPReward             int `json:"xp_reward"`

	Participants          sharedtypes.UserSet    `json:"participants"`
	ParticipatingFactions sharedtypes.FactionSet `json:"participating_factions"`
	Resolved              bool                   `json:"resolved"`

	// Display message pointer, owned by the presentation layer.
	ChannelID string `json:"channel_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// Normalize fills missing collections so callers can assume populated sets.
func (e *Event) Normalize() {
	if e.Participants == nil {
		e.Participants = make(sharedtypes.UserSet)
	}
	if e.ParticipatingFactions == nil {
		e.ParticipatingFactions = make(sharedtypes.FactionSet)
	}
}

// Expired reports whether the event's end time has passed.
func (e *Event) Expired(now time.Time) bool {
	return !now.Before(e.EndsAt)
}

// Succeeded reports whether enough hunters joined before resolution.
func (e *Event) Succeeded() bool {
	return len(e.Participants) >= e.RequiredParticipants
}

// Outcome is the result of resolving a wandering event.
type Outcome struct {
	EventID          string                  `json:"event_id"`
	Title            string                  `json:"title"`
	Success          bool                    `json:"success"`
	Participants     int                     `json:"participants"`
	Required         int                     `json:"required"`
	GlobalAwarded    int                     `json:"global_awarded"`
	FactionAwarded   int                     `json:"faction_awarded"`
	XPPerParticipant int                     `json:"xp_per_participant"`
	Factions         []sharedtypes.FactionID `json:"factions,omitempty"`
}
