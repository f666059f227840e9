package wanderinghandlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

type fakeWanderingService struct {
	result results.OperationResult
	err    error
}

func (f *fakeWanderingService) SpawnEvent(context.Context, *wanderingevents.SpawnRequestedPayload) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeWanderingService) JoinEvent(context.Context, *wanderingevents.JoinRequestedPayload) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeWanderingService) ResolveEvent(context.Context, sharedtypes.GuildID, string, time.Time) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeWanderingService) ClearEvent(context.Context, sharedtypes.GuildID, string) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeWanderingService) StartupResume(context.Context, sharedtypes.GuildID, time.Time) error {
	return f.err
}

func (f *fakeWanderingService) GetState(context.Context, sharedtypes.GuildID) (results.OperationResult, error) {
	return f.result, f.err
}

func newTestHandlers(svc *fakeWanderingService) *WanderingHandlers {
	return NewWanderingHandlers(svc, observability.NoOpProvider().Logger)
}

func TestHandleSpawnSuccess(t *testing.T) {
	svc := &fakeWanderingService{result: results.SuccessResult(&wanderingevents.SpawnedPayload{
		GuildID: "guild-1",
		Event:   &wanderingtypes.Event{EventID: "ev-1"},
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleSpawn(context.Background(), &wanderingevents.SpawnRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.Spawned, out[0].Topic)
}

func TestHandleSpawnFailure(t *testing.T) {
	svc := &fakeWanderingService{result: results.FailureResult(&wanderingevents.SpawnFailedPayload{
		GuildID: "guild-1",
		Reason:  "an event is already active",
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleSpawn(context.Background(), &wanderingevents.SpawnRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.SpawnFailed, out[0].Topic)
}

func TestHandleSpawnNilPayload(t *testing.T) {
	h := newTestHandlers(&fakeWanderingService{})

	_, err := h.HandleSpawn(context.Background(), nil)
	require.Error(t, err)
}

func TestHandleJoinRoutesTopics(t *testing.T) {
	svc := &fakeWanderingService{result: results.SuccessResult(&wanderingevents.JoinedPayload{
		GuildID: "guild-1", UserID: "u1", EventID: "ev-1", Participants: 2, Required: 3,
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleJoin(context.Background(), &wanderingevents.JoinRequestedPayload{
		GuildID: "guild-1", UserID: "u1", EventID: "ev-1",
	})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.Joined, out[0].Topic)
}

func TestHandleJoinServiceError(t *testing.T) {
	svc := &fakeWanderingService{err: errors.New("repo down")}
	h := newTestHandlers(svc)

	_, err := h.HandleJoin(context.Background(), &wanderingevents.JoinRequestedPayload{GuildID: "guild-1"})
	require.Error(t, err)
}

func TestHandleResolveSuccess(t *testing.T) {
	svc := &fakeWanderingService{result: results.SuccessResult(&wanderingevents.ResolvedPayload{
		GuildID: "guild-1",
		Outcome: &wanderingtypes.Outcome{EventID: "ev-1", Success: true},
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleResolve(context.Background(), &wanderingevents.ResolveRequestedPayload{
		GuildID: "guild-1", EventID: "ev-1",
	})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.Resolved, out[0].Topic)
}

func TestHandleResolveFailureWrapsReason(t *testing.T) {
	svc := &fakeWanderingService{result: results.OperationResult{Failure: "no wandering event is active"}}
	h := newTestHandlers(svc)

	out, err := h.HandleResolve(context.Background(), &wanderingevents.ResolveRequestedPayload{
		GuildID: "guild-1", EventID: "ev-1",
	})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.ResolveFailed, out[0].Topic)
	payload, ok := out[0].Payload.(*wanderingevents.ResolveFailedPayload)
	require.True(t, ok)
	assert.Equal(t, "no wandering event is active", payload.Reason)
}

func TestHandleGetStateMapsSingleTopic(t *testing.T) {
	svc := &fakeWanderingService{result: results.SuccessResult(&wanderingevents.StateRetrievedPayload{
		GuildID: "guild-1",
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleGetState(context.Background(), &wanderingevents.StateRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, wanderingevents.StateRetrieved, out[0].Topic)
}
