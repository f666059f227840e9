package seasonservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

func TestStartSeasonActivatesFreshFight(t *testing.T) {
	repo := &fakeSeasonRepo{}
	svc := newTestService(repo, 0)

	result, err := svc.StartSeason(context.Background(), &seasonevents.StartRequestedPayload{
		GuildID:    "guild-1",
		BossName:   "Gravetide Herald",
		BossMaxHP:  500,
		Difficulty: seasontypes.DifficultyHard,
		BossType:   seasontypes.BossMinor,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	state := repo.state
	assert.True(t, state.Active)
	assert.Equal(t, 1, state.Day)
	assert.Equal(t, "Gravetide Herald", state.Boss.Name)
	assert.Equal(t, 500, state.Boss.HP)
	assert.Equal(t, 500, state.Boss.MaxHP)
	assert.Equal(t, seasontypes.DifficultyHard, state.Difficulty)
	assert.Equal(t, seasontypes.BossMinor, state.BossType)
}

func TestStartSeasonRejectsWhenActive(t *testing.T) {
	repo := &fakeSeasonRepo{state: activeState()}
	svc := newTestService(repo, 0)

	result, err := svc.StartSeason(context.Background(), &seasonevents.StartRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
}

func TestStartSeasonCarriesForwardUnlockedPowers(t *testing.T) {
	prev := seasontypes.NewSeasonState()
	prev.FactionPowers[sharedtypes.FactionVerdant].Unlocked = true
	prev.FactionPowers[sharedtypes.FactionVerdant].Used = true
	repo := &fakeSeasonRepo{state: prev}
	svc := newTestService(repo, 0)

	_, err := svc.StartSeason(context.Background(), &seasonevents.StartRequestedPayload{GuildID: "guild-1"})
	require.NoError(t, err)

	power := repo.state.FactionPowers[sharedtypes.FactionVerdant]
	assert.True(t, power.Unlocked)
	assert.False(t, power.Used, "used flag resets with the new fight")
}

func TestResetSeasonRestoresEverythingButUnlocks(t *testing.T) {
	state := activeState()
	state.Day = 12
	state.Date = "2026-03-14"
	state.Boss.HP = 40
	state.EndedReason = seasontypes.EndReasonBossDefeated
	state.FactionHealth[sharedtypes.FactionSpellfire].HP = 0
	state.FactionPowers[sharedtypes.FactionSpellfire].Unlocked = true
	state.FactionPowers[sharedtypes.FactionSpellfire].Used = true
	castVotes(state, sharedtypes.FactionVerdant, sharedtypes.ActionHeal, 3)
	repo := &fakeSeasonRepo{state: state}
	svc := newTestService(repo, 0)

	result, err := svc.ResetSeason(context.Background(), "guild-1")
	require.NoError(t, err)
	require.NotNil(t, result.Success)

	got := repo.state
	assert.False(t, got.Active)
	assert.Equal(t, 1, got.Day)
	assert.Empty(t, got.Date)
	assert.Equal(t, seasontypes.EndReasonNone, got.EndedReason)
	assert.Equal(t, got.Boss.MaxHP, got.Boss.HP)
	for _, fid := range sharedtypes.FactionIDs() {
		assert.Equal(t, got.FactionHealth[fid].MaxHP, got.FactionHealth[fid].HP)
		assert.False(t, got.FactionPowers[fid].Used)
		assert.True(t, got.AliveFactions.Contains(fid))
		for _, action := range sharedtypes.VoteActions {
			assert.Empty(t, got.Votes[fid][action])
		}
	}
	assert.True(t, got.FactionPowers[sharedtypes.FactionSpellfire].Unlocked, "unlocks persist across resets")
}

func TestUnlockPowerIsIdempotent(t *testing.T) {
	repo := &fakeSeasonRepo{state: activeState()}
	svc := newTestService(repo, 0)
	ctx := context.Background()

	_, err := svc.UnlockPower(ctx, "guild-1", sharedtypes.FactionSpellfire)
	require.NoError(t, err)
	savesAfterFirst := repo.saves

	_, err = svc.UnlockPower(ctx, "guild-1", sharedtypes.FactionSpellfire)
	require.NoError(t, err)

	assert.True(t, repo.state.FactionPowers[sharedtypes.FactionSpellfire].Unlocked)
	assert.Equal(t, savesAfterFirst, repo.saves, "repeat unlock does not rewrite the document")
}

func TestUnlockPowerUnknownFaction(t *testing.T) {
	repo := &fakeSeasonRepo{state: activeState()}
	svc := newTestService(repo, 0)

	result, err := svc.UnlockPower(context.Background(), "guild-1", "outsiders")
	require.NoError(t, err)
	require.NotNil(t, result.Failure)
}

func TestGetStateReturnsDocument(t *testing.T) {
	repo := &fakeSeasonRepo{state: activeState()}
	svc := newTestService(repo, 0)

	result, err := svc.GetState(context.Background(), "guild-1")
	require.NoError(t, err)
	payload, ok := result.Success.(*seasonevents.StateRetrievedPayload)
	require.True(t, ok)
	assert.True(t, payload.State.Active)
}
