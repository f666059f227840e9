// Package progressiontypes holds the player progression and scoreboard
// domain types.
package progressiontypes

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Player is one member's progression record.
type Player struct {
	UserID           sharedtypes.UserID    `json:"user_id"`
	FactionID        sharedtypes.FactionID `json:"faction_id,omitempty"`
	XP               int                   `json:"xp"`
	Level            int                   `json:"level"`
	MonstersSeason   int                   `json:"monsters_season"`
	MonstersLifetime int                   `json:"monsters_lifetime"`
}

// NewPlayer returns a fresh level-1 record.
func NewPlayer(userID sharedtypes.UserID) *Player {
	return &Player{UserID: userID, Level: 1}
}

// NextLevelXP is the XP needed to finish the current level.
func (p *Player) NextLevelXP() int {
	if p.Level < 1 {
		p.Level = 1
	}
	return 100 * p.Level
}

// AddXP credits experience and applies level-ups, carrying surplus XP into
// the next level. Returns the number of levels gained.
func (p *Player) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.XP += amount
	gained := 0
	for p.XP >= p.NextLevelXP() {
		p.XP -= p.NextLevelXP()
		p.Level++
		gained++
	}
	return gained
}

// Board is the seasonal scoreboard: one global point pool plus per-faction
// point totals feeding the power-unlock thresholds.
type Board struct {
	SeasonID      string                        `json:"season_id"`
	GlobalPoints  int                           `json:"global_points"`
	FactionPoints map[sharedtypes.FactionID]int `json:"faction_points"`

	// Display message pointer, owned by the presentation layer.
	ChannelID string `json:"channel_id,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// NewBoard returns an empty scoreboard.
func NewBoard() *Board {
	return &Board{
		SeasonID:      "default_season",
		FactionPoints: make(map[sharedtypes.FactionID]int),
	}
}

// Normalize fills missing collections after load.
func (b *Board) Normalize() {
	if b.SeasonID == "" {
		b.SeasonID = "default_season"
	}
	if b.FactionPoints == nil {
		b.FactionPoints = make(map[sharedtypes.FactionID]int)
	}
}

// ResetSeason starts a new season, zeroing points but keeping the display
// pointer so the same board message can be reused.
func (b *Board) ResetSeason(seasonID string) {
	b.SeasonID = seasonID
	b.GlobalPoints = 0
	b.FactionPoints = make(map[sharedtypes.FactionID]int)
}
