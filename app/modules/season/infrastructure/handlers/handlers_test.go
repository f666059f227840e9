package seasonhandlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// fakeSeasonService returns canned results so the tests exercise only the
// topic mapping.
type fakeSeasonService struct {
	result results.OperationResult
	err    error
}

func (f *fakeSeasonService) RegisterVote(context.Context, *seasonevents.VoteRequestedPayload) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) ResolveDue(context.Context, sharedtypes.GuildID, time.Time) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) ForceResolve(context.Context, sharedtypes.GuildID, time.Time) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) StartSeason(context.Context, *seasonevents.StartRequestedPayload) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) ResetSeason(context.Context, sharedtypes.GuildID) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) UnlockPower(context.Context, sharedtypes.GuildID, sharedtypes.FactionID) (results.OperationResult, error) {
	return f.result, f.err
}

func (f *fakeSeasonService) GetState(context.Context, sharedtypes.GuildID) (results.OperationResult, error) {
	return f.result, f.err
}

func newTestHandlers(svc *fakeSeasonService) *SeasonHandlers {
	return NewSeasonHandlers(svc, observability.NoOpProvider().Logger)
}

func votePayload() *seasonevents.VoteRequestedPayload {
	return &seasonevents.VoteRequestedPayload{
		GuildID:   "guild-1",
		UserID:    "u1",
		FactionID: sharedtypes.FactionSpellfire,
		Action:    sharedtypes.ActionAttack,
	}
}

func TestHandleVoteSuccessRoutesRecordedAndRefresh(t *testing.T) {
	svc := &fakeSeasonService{result: results.SuccessResult(&seasonevents.VoteRecordedPayload{
		GuildID: "guild-1", UserID: "u1",
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleVote(context.Background(), votePayload())
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, seasonevents.VoteRecorded, out[0].Topic)
	assert.Equal(t, seasonevents.BoardRefresh, out[1].Topic)
}

func TestHandleVoteBurstCoalescesBoardRefresh(t *testing.T) {
	svc := &fakeSeasonService{result: results.SuccessResult(&seasonevents.VoteRecordedPayload{})}
	h := newTestHandlers(svc)

	refreshes := 0
	for i := 0; i < 10; i++ {
		out, err := h.HandleVote(context.Background(), votePayload())
		require.NoError(t, err)
		for _, r := range out {
			if r.Topic == seasonevents.BoardRefresh {
				refreshes++
			}
		}
	}

	assert.Equal(t, 1, refreshes, "a burst of votes redraws the board once")
}

func TestHandleVoteFailureRoutesFailedTopic(t *testing.T) {
	svc := &fakeSeasonService{result: results.FailureResult(&seasonevents.VoteFailedPayload{
		Reason: "no active season",
	})}
	h := newTestHandlers(svc)

	out, err := h.HandleVote(context.Background(), votePayload())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, seasonevents.VoteFailed, out[0].Topic)
}

func TestHandleVoteNilPayload(t *testing.T) {
	h := newTestHandlers(&fakeSeasonService{})

	_, err := h.HandleVote(context.Background(), nil)
	require.Error(t, err)
}

func TestHandleVoteServiceError(t *testing.T) {
	svc := &fakeSeasonService{err: errors.New("repo down")}
	h := newTestHandlers(svc)

	_, err := h.HandleVote(context.Background(), votePayload())
	require.Error(t, err)
}

func TestHandleStartSeason(t *testing.T) {
	svc := &fakeSeasonService{result: results.SuccessResult(&seasonevents.StartedPayload{GuildID: "guild-1"})}
	h := newTestHandlers(svc)

	out, err := h.HandleStartSeason(context.Background(), &seasonevents.StartRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, seasonevents.Started, out[0].Topic)
}

func TestHandleGetStateMapsSingleTopic(t *testing.T) {
	svc := &fakeSeasonService{result: results.SuccessResult(&seasonevents.StateRetrievedPayload{GuildID: "guild-1"})}
	h := newTestHandlers(svc)

	out, err := h.HandleGetState(context.Background(), &seasonevents.StateRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, seasonevents.StateRetrieved, out[0].Topic)
}
