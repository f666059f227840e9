package progressionservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

func TestGetProfileFreshMember(t *testing.T) {
	repo := newFakeProgressionRepo()
	svc := newTestService(repo, 100, 1000)

	result, err := svc.GetProfile(context.Background(), testGuild, "u1")
	require.NoError(t, err)

	payload, ok := result.Success.(*progressionevents.ProfileRetrievedPayload)
	require.True(t, ok)
	assert.Equal(t, sharedtypes.UserID("u1"), payload.UserID)
	assert.Equal(t, 1, payload.Level)
	assert.Zero(t, payload.XP)
	assert.Empty(t, payload.FactionID)
}

func TestGetProfileRepoError(t *testing.T) {
	repo := newFakeProgressionRepo()
	repo.getPlayerErr = errors.New("connection refused")
	svc := newTestService(repo, 100, 1000)

	_, err := svc.GetProfile(context.Background(), testGuild, "u1")
	require.Error(t, err)
}

func TestJoinFactionAssignsMember(t *testing.T) {
	repo := newFakeProgressionRepo()
	svc := newTestService(repo, 100, 1000)

	result, err := svc.JoinFaction(context.Background(), &progressionevents.JoinFactionRequestedPayload{
		GuildID:   testGuild,
		UserID:    "u1",
		FactionID: sharedtypes.FactionVerdant,
	})
	require.NoError(t, err)

	payload, ok := result.Success.(*progressionevents.FactionJoinedPayload)
	require.True(t, ok)
	assert.Equal(t, sharedtypes.FactionVerdant, payload.FactionID)
	assert.Equal(t, sharedtypes.FactionVerdant, repo.players["u1"].FactionID)
}

func TestJoinFactionUnknownFaction(t *testing.T) {
	repo := newFakeProgressionRepo()
	svc := newTestService(repo, 100, 1000)

	result, err := svc.JoinFaction(context.Background(), &progressionevents.JoinFactionRequestedPayload{
		GuildID:   testGuild,
		UserID:    "u1",
		FactionID: "outsiders",
	})
	require.NoError(t, err)

	payload, ok := result.Failure.(*progressionevents.FactionJoinFailedPayload)
	require.True(t, ok)
	assert.Equal(t, ErrUnknownFaction.Error(), payload.Reason)
	assert.Zero(t, repo.playerSaves)
}

func TestJoinFactionSwitchKeepsProgression(t *testing.T) {
	repo := newFakeProgressionRepo()
	svc := newTestService(repo, 100, 1000)

	player, err := repo.GetPlayer(context.Background(), testGuild, "u1")
	require.NoError(t, err)
	player.FactionID = sharedtypes.FactionShieldborne
	player.XP = 40
	player.MonstersLifetime = 7

	_, err = svc.JoinFaction(context.Background(), &progressionevents.JoinFactionRequestedPayload{
		GuildID:   testGuild,
		UserID:    "u1",
		FactionID: sharedtypes.FactionSpellfire,
	})
	require.NoError(t, err)

	assert.Equal(t, sharedtypes.FactionSpellfire, repo.players["u1"].FactionID)
	assert.Equal(t, 40, repo.players["u1"].XP)
	assert.Equal(t, 7, repo.players["u1"].MonstersLifetime)
}

func TestPlayerFaction(t *testing.T) {
	repo := newFakeProgressionRepo()
	svc := newTestService(repo, 100, 1000)

	fid, err := svc.PlayerFaction(context.Background(), testGuild, "u1")
	require.NoError(t, err)
	assert.Empty(t, fid, "unaffiliated members report an empty faction")

	_, err = svc.JoinFaction(context.Background(), &progressionevents.JoinFactionRequestedPayload{
		GuildID:   testGuild,
		UserID:    "u1",
		FactionID: sharedtypes.FactionVerdant,
	})
	require.NoError(t, err)

	fid, err = svc.PlayerFaction(context.Background(), testGuild, "u1")
	require.NoError(t, err)
	assert.Equal(t, sharedtypes.FactionVerdant, fid)
}
