package wanderingservice

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

var resolveAt = time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

func TestResolveEventSuccessPaysOut(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.Participants = sharedtypes.UserSet{"u1": {}, "u2": {}, "u3": {}}
	event.ParticipatingFactions = sharedtypes.FactionSet{
		sharedtypes.FactionSpellfire: {},
		sharedtypes.FactionVerdant:   {},
	}
	h.repo.event = event
	h.progression.awardReport = &progressionservice.RewardReport{
		PowerUnlocks: []sharedtypes.FactionID{sharedtypes.FactionVerdant},
		LevelUps:     map[sharedtypes.UserID]int{"u2": 3},
	}

	result, err := h.svc.ResolveEvent(context.Background(), testGuild, "ev-1", resolveAt)
	require.NoError(t, err)

	resolved, ok := result.Success.(*wanderingevents.ResolvedPayload)
	require.True(t, ok)

	want := &wanderingtypes.Outcome{
		EventID:          "ev-1",
		Title:            "Mistbound Marauders",
		Success:          true,
		Participants:     3,
		Required:         3,
		GlobalAwarded:    20,
		FactionAwarded:   20,
		XPPerParticipant: 30,
		Factions:         []sharedtypes.FactionID{sharedtypes.FactionSpellfire, sharedtypes.FactionVerdant},
	}
	if diff := cmp.Diff(want, resolved.Outcome); diff != "" {
		t.Errorf("outcome mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []sharedtypes.FactionID{sharedtypes.FactionVerdant}, resolved.PowerUnlocks)
	assert.Equal(t, map[sharedtypes.UserID]int{"u2": 3}, resolved.LevelUps)

	require.Len(t, h.progression.awards, 1)
	assert.Equal(t, event.Participants, h.progression.awards[0].Participants)
	assert.Equal(t, 30, h.progression.awards[0].XPReward)

	assert.True(t, h.repo.event.Resolved)
	require.Len(t, h.scheduler.clears, 1)
	assert.Equal(t, "ev-1", h.scheduler.clears[0].eventID)
	assert.Equal(t, resolveAt.Add(2*time.Minute), h.scheduler.clears[0].at)
}

func TestResolveEventUnderThreshold(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.Participants = sharedtypes.UserSet{"u1": {}}
	event.ParticipatingFactions = sharedtypes.FactionSet{sharedtypes.FactionSpellfire: {}}
	h.repo.event = event

	result, err := h.svc.ResolveEvent(context.Background(), testGuild, "ev-1", resolveAt)
	require.NoError(t, err)

	resolved := result.Success.(*wanderingevents.ResolvedPayload)
	assert.False(t, resolved.Outcome.Success)
	assert.Zero(t, resolved.Outcome.GlobalAwarded)
	assert.Zero(t, resolved.Outcome.XPPerParticipant)
	assert.Empty(t, h.progression.awards, "a failed hunt pays nothing")

	// The event stays on display until the clear timer fires.
	assert.True(t, h.repo.event.Resolved)
	require.Len(t, h.scheduler.clears, 1)
}

func TestResolveEventStaleTimerNoOps(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-2")

	result, err := h.svc.ResolveEvent(context.Background(), testGuild, "ev-1", resolveAt)
	require.NoError(t, err)

	assert.Equal(t, ErrNoEvent.Error(), result.Failure)
	assert.False(t, h.repo.event.Resolved)
	assert.Empty(t, h.scheduler.clears)
}

func TestResolveEventAlreadyResolved(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.Resolved = true
	h.repo.event = event

	result, err := h.svc.ResolveEvent(context.Background(), testGuild, "ev-1", resolveAt)
	require.NoError(t, err)

	assert.Equal(t, ErrAlreadyResolved.Error(), result.Failure)
	assert.Empty(t, h.progression.awards)
}

func TestClearEventRemovesResolvedEvent(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.Resolved = true
	event.ChannelID = "chan-1"
	event.MessageID = "msg-1"
	h.repo.event = event

	result, err := h.svc.ClearEvent(context.Background(), testGuild, "ev-1")
	require.NoError(t, err)

	cleared, ok := result.Success.(*wanderingevents.ClearedPayload)
	require.True(t, ok)
	assert.Equal(t, "ev-1", cleared.EventID)
	assert.Equal(t, "chan-1", cleared.ChannelID)
	assert.Equal(t, "msg-1", cleared.MessageID)
	assert.Nil(t, h.repo.event)
}

func TestClearEventLeavesLiveEventAlone(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-1")

	result, err := h.svc.ClearEvent(context.Background(), testGuild, "ev-1")
	require.NoError(t, err)

	assert.Equal(t, ErrNoEvent.Error(), result.Failure)
	assert.NotNil(t, h.repo.event)
}

func TestClearEventStaleTimerAfterReplacement(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-new")

	result, err := h.svc.ClearEvent(context.Background(), testGuild, "ev-old")
	require.NoError(t, err)

	assert.Equal(t, ErrNoEvent.Error(), result.Failure)
	assert.Equal(t, "ev-new", h.repo.event.EventID)
}

func TestStartupResumeReArmsLiveEvent(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	h.repo.event = event

	require.NoError(t, h.svc.StartupResume(context.Background(), testGuild, time.Now().UTC()))

	require.Len(t, h.scheduler.resolutions, 1)
	assert.Equal(t, "ev-1", h.scheduler.resolutions[0].eventID)
	assert.Equal(t, event.EndsAt, h.scheduler.resolutions[0].at)
}

func TestStartupResumeDiscardsExpiredEvent(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.EndsAt = time.Now().UTC().Add(-time.Hour)
	h.repo.event = event

	require.NoError(t, h.svc.StartupResume(context.Background(), testGuild, time.Now().UTC()))

	assert.Nil(t, h.repo.event, "expired hunts never resolve late")
	assert.Empty(t, h.scheduler.resolutions)
	assert.Empty(t, h.scheduler.clears)
}

func TestStartupResumeReArmsClearForResolvedEvent(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.Resolved = true
	h.repo.event = event

	now := time.Now().UTC()
	require.NoError(t, h.svc.StartupResume(context.Background(), testGuild, now))

	require.Len(t, h.scheduler.clears, 1)
	assert.Equal(t, now.Add(2*time.Minute), h.scheduler.clears[0].at)
}

func TestStartupResumeEmptySlot(t *testing.T) {
	h := newTestHarness()

	require.NoError(t, h.svc.StartupResume(context.Background(), testGuild, time.Now().UTC()))

	assert.Empty(t, h.scheduler.resolutions)
	assert.Empty(t, h.scheduler.clears)
}

func TestGetStateReturnsEvent(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-1")

	result, err := h.svc.GetState(context.Background(), testGuild)
	require.NoError(t, err)

	payload, ok := result.Success.(*wanderingevents.StateRetrievedPayload)
	require.True(t, ok)
	assert.Equal(t, "ev-1", payload.Event.EventID)
}
