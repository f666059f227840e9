package wanderingservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

func TestJoinEventAddsHunter(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-1")
	h.progression.factions["u1"] = sharedtypes.FactionSpellfire

	result, err := h.svc.JoinEvent(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: testGuild,
		UserID:  "u1",
		EventID: "ev-1",
	})
	require.NoError(t, err)

	payload, ok := result.Success.(*wanderingevents.JoinedPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.Participants)
	assert.Equal(t, 3, payload.Required)
	assert.True(t, h.repo.event.Participants.Contains("u1"))
	assert.Contains(t, h.repo.event.ParticipatingFactions, sharedtypes.FactionSpellfire)
}

func TestJoinEventWithoutFaction(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-1")

	result, err := h.svc.JoinEvent(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: testGuild,
		UserID:  "drifter",
		EventID: "ev-1",
	})
	require.NoError(t, err)

	payload, ok := result.Failure.(*wanderingevents.JoinFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrNoFaction.Error(), payload.Reason)
	assert.Empty(t, h.repo.event.Participants)
}

func TestJoinEventNoActiveEvent(t *testing.T) {
	h := newTestHarness()
	h.progression.factions["u1"] = sharedtypes.FactionVerdant

	result, err := h.svc.JoinEvent(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: testGuild,
		UserID:  "u1",
	})
	require.NoError(t, err)

	payload, ok := result.Failure.(*wanderingevents.JoinFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrNoEvent.Error(), payload.Reason)
}

func TestJoinEventStaleEventID(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-2")
	h.progression.factions["u1"] = sharedtypes.FactionVerdant

	result, err := h.svc.JoinEvent(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: testGuild,
		UserID:  "u1",
		EventID: "ev-1",
	})
	require.NoError(t, err)

	payload, ok := result.Failure.(*wanderingevents.JoinFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrNoEvent.Error(), payload.Reason)
}

func TestJoinEventAfterDeadline(t *testing.T) {
	h := newTestHarness()
	event := liveEvent("ev-1")
	event.EndsAt = time.Now().UTC().Add(-time.Minute)
	h.repo.event = event
	h.progression.factions["u1"] = sharedtypes.FactionVerdant

	result, err := h.svc.JoinEvent(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: testGuild,
		UserID:  "u1",
		EventID: "ev-1",
	})
	require.NoError(t, err)

	payload, ok := result.Failure.(*wanderingevents.JoinFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrEventEnded.Error(), payload.Reason)
}

func TestJoinEventRejoinIsIdempotent(t *testing.T) {
	h := newTestHarness()
	h.repo.event = liveEvent("ev-1")
	h.progression.factions["u1"] = sharedtypes.FactionShieldborne

	payload := &wanderingevents.JoinRequestedPayload{GuildID: testGuild, UserID: "u1", EventID: "ev-1"}

	_, err := h.svc.JoinEvent(context.Background(), payload)
	require.NoError(t, err)
	savesAfterFirst := h.repo.saves

	result, err := h.svc.JoinEvent(context.Background(), payload)
	require.NoError(t, err)

	joined, ok := result.Success.(*wanderingevents.JoinedPayload)
	require.True(t, ok)
	assert.Equal(t, 1, joined.Participants)
	assert.Equal(t, savesAfterFirst, h.repo.saves, "re-joining does not rewrite the document")
}
