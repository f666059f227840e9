package sharedtypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSetMarshalsSorted(t *testing.T) {
	set := UserSet{"zeta": {}, "alpha": {}, "mid": {}}

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["alpha","mid","zeta"]`, string(raw))
}

func TestUserSetRoundTrip(t *testing.T) {
	var set UserSet
	require.NoError(t, json.Unmarshal([]byte(`["u1","u2"]`), &set))

	assert.True(t, set.Contains("u1"))
	assert.False(t, set.Contains("u3"))
	assert.Len(t, set, 2)
}

func TestFactionSetMarshalsSorted(t *testing.T) {
	set := FactionSet{FactionVerdant: {}, FactionShieldborne: {}}

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["shieldborne","verdant"]`, string(raw))
}

func TestVoteActionIsValid(t *testing.T) {
	for _, a := range VoteActions {
		assert.True(t, a.IsValid(), string(a))
	}
	assert.False(t, VoteAction("dance").IsValid())
	assert.False(t, VoteAction("").IsValid())
}

func TestEveryFactionHasDefinition(t *testing.T) {
	for _, id := range FactionIDs() {
		f, ok := GetFaction(id)
		require.True(t, ok, string(id))
		assert.Equal(t, id, f.ID)
		assert.True(t, f.DefaultAction.IsValid())
	}
	_, ok := GetFaction("outsiders")
	assert.False(t, ok)
}
