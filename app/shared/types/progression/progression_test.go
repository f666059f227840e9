package progressiontypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddXPCarriesSurplusAcrossLevels(t *testing.T) {
	p := NewPlayer("u1")

	// 100 per level at level 1: 250 XP clears level 1 (100) and level 2
	// (200 needed, only 150 left), landing at level 2 with 150 spare.
	gained := p.AddXP(250)

	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 150, p.XP)

	// 50 more finishes level 2.
	gained = p.AddXP(50)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 3, p.Level)
	assert.Zero(t, p.XP)
}

func TestAddXPMultipleLevelsAtOnce(t *testing.T) {
	p := NewPlayer("u1")

	// 100 + 200 + 300 = 600 clears three levels exactly.
	gained := p.AddXP(600)

	assert.Equal(t, 3, gained)
	assert.Equal(t, 4, p.Level)
	assert.Zero(t, p.XP)
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	p := NewPlayer("u1")

	assert.Zero(t, p.AddXP(0))
	assert.Zero(t, p.AddXP(-10))
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.XP)
}

func TestBoardResetKeepsDisplayPointer(t *testing.T) {
	b := NewBoard()
	b.GlobalPoints = 40
	b.FactionPoints["spellfire"] = 90
	b.ChannelID = "chan-1"
	b.MessageID = "msg-1"

	b.ResetSeason("season-2")

	assert.Equal(t, "season-2", b.SeasonID)
	assert.Zero(t, b.GlobalPoints)
	assert.Empty(t, b.FactionPoints)
	assert.Equal(t, "chan-1", b.ChannelID)
	assert.Equal(t, "msg-1", b.MessageID)
}

func TestBoardNormalizeFillsDefaults(t *testing.T) {
	b := &Board{}
	b.Normalize()

	assert.Equal(t, "default_season", b.SeasonID)
	assert.NotNil(t, b.FactionPoints)
}
