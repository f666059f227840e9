package seasontypes

import (
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// Difficulty selects the retaliation preset for a season.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// BossType selects the per-day retaliation escalation increment.
type BossType string

const (
	BossMinor    BossType = "minor"
	BossSeasonal BossType = "seasonal"
)

func (b BossType) IsValid() bool {
	return b == BossMinor || b == BossSeasonal
}

// EndReason records why a season fight ended.
type EndReason string

const (
	EndReasonNone             EndReason = ""
	EndReasonBossDefeated     EndReason = "boss_defeated"
	EndReasonFactionsDefeated EndReason = "factions_defeated"
	EndReasonTimeExpired      EndReason = "time_expired"
)

// Boss holds the seasonal boss display and health values.
type Boss struct {
	Name      string `json:"name"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"max_hp"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// FactionHealth tracks one faction's HP pool.
type FactionHealth struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
}

// FactionPower tracks a faction's once-per-season power.
// Invariant: Used implies Unlocked.
type FactionPower struct {
	Unlocked bool `json:"unlocked"`
	Used     bool `json:"used"`
}

// VoterSet is a set of voter identities.
type VoterSet = sharedtypes.UserSet

// ActionVotes maps each recognized action to its voter set for one faction.
type ActionVotes map[sharedtypes.VoteAction]VoterSet

// VoteLedger holds the daily vote sets for every faction.
type VoteLedger map[sharedtypes.FactionID]ActionVotes

// SeasonState is the singleton seasonal-event document for a guild.
type SeasonState struct {
	Active     bool       `json:"active"`
	Day        int        `json:"day"`
	Date       string     `json:"date"` // last-resolved calendar date, ISO, UTC
	Difficulty Difficulty `json:"difficulty"`
	BossType   BossType   `json:"boss_type"`

	Boss          Boss                                     `json:"boss"`
	FactionHealth map[sharedtypes.FactionID]*FactionHealth `json:"faction_health"`
	FactionPowers map[sharedtypes.FactionID]*FactionPower  `json:"faction_powers"`
	Votes         VoteLedger                               `json:"votes"`
	AliveFactions sharedtypes.FactionSet                   `json:"alive_factions"`

	EndedReason EndReason `json:"ended_reason,omitempty"`

	// Pointer to the externally displayed board; owned by the presentation
	// layer, merely stored here for refresh.
	EmbedChannelID string `json:"embed_channel_id,omitempty"`
	EmbedMessageID string `json:"embed_message_id,omitempty"`
}

const (
	DefaultBossMaxHP    = 1000
	DefaultFactionMaxHP = 100
)

// NewSeasonState returns an inactive season document with full health pools
// and empty vote sets for every faction.
func NewSeasonState() *SeasonState {
	s := &SeasonState{
		Day:        1,
		Difficulty: DifficultyNormal,
		BossType:   BossSeasonal,
		Boss:       Boss{Name: "The Mist Sovereign", HP: DefaultBossMaxHP, MaxHP: DefaultBossMaxHP},
	}
	s.Normalize()
	return s
}

// Normalize fills any missing maps and sub-documents with safe defaults so
// callers can assume a fully populated state. It is applied once at the
// persistence boundary after load (forward-compatible schema evolution).
func (s *SeasonState) Normalize() {
	if s.Day < 1 {
		s.Day = 1
	}
	if !s.Difficulty.IsValid() {
		s.Difficulty = DifficultyNormal
	}
	if !s.BossType.IsValid() {
		s.BossType = BossSeasonal
	}
	if s.Boss.MaxHP <= 0 {
		s.Boss.MaxHP = DefaultBossMaxHP
	}
	if s.Boss.HP < 0 {
		s.Boss.HP = 0
	}
	if s.Boss.HP > s.Boss.MaxHP {
		s.Boss.HP = s.Boss.MaxHP
	}
	if s.FactionHealth == nil {
		s.FactionHealth = make(map[sharedtypes.FactionID]*FactionHealth)
	}
	if s.FactionPowers == nil {
		s.FactionPowers = make(map[sharedtypes.FactionID]*FactionPower)
	}
	if s.Votes == nil {
		s.Votes = make(VoteLedger)
	}
	for _, fid := range sharedtypes.FactionIDs() {
		if s.FactionHealth[fid] == nil {
			s.FactionHealth[fid] = &FactionHealth{HP: DefaultFactionMaxHP, MaxHP: DefaultFactionMaxHP}
		}
		fh := s.FactionHealth[fid]
		if fh.MaxHP <= 0 {
			fh.MaxHP = DefaultFactionMaxHP
		}
		if fh.HP < 0 {
			fh.HP = 0
		}
		if fh.HP > fh.MaxHP {
			fh.HP = fh.MaxHP
		}
		if s.FactionPowers[fid] == nil {
			s.FactionPowers[fid] = &FactionPower{}
		}
		if s.Votes[fid] == nil {
			s.Votes[fid] = make(ActionVotes)
		}
		for _, action := range sharedtypes.VoteActions {
			if s.Votes[fid][action] == nil {
				s.Votes[fid][action] = make(VoterSet)
			}
		}
	}
	if s.AliveFactions == nil {
		s.SnapshotAliveFactions()
	}
}

// SnapshotAliveFactions records which factions start the current day with
// HP above zero. Defeated factions are excluded from voting and from
// retaliation targeting until the next snapshot.
func (s *SeasonState) SnapshotAliveFactions() {
	s.AliveFactions = make(sharedtypes.FactionSet)
	for fid, fh := range s.FactionHealth {
		if fh != nil && fh.HP > 0 {
			s.AliveFactions[fid] = struct{}{}
		}
	}
}

// ClearVotes empties every action set for every faction.
func (s *SeasonState) ClearVotes() {
	for fid := range s.Votes {
		for action := range s.Votes[fid] {
			s.Votes[fid][action] = make(VoterSet)
		}
	}
}

// VoteCounts returns the raw per-action counts for one faction.
func (s *SeasonState) VoteCounts(fid sharedtypes.FactionID) map[sharedtypes.VoteAction]int {
	counts := make(map[sharedtypes.VoteAction]int, len(sharedtypes.VoteActions))
	for _, action := range sharedtypes.VoteActions {
		counts[action] = len(s.Votes[fid][action])
	}
	return counts
}

// ResolutionSummary is the outcome of one daily resolution, returned to the
// caller for logging and display.
type ResolutionSummary struct {
	Day          int `json:"day"`
	BossHPBefore int `json:"boss_hp_before"`
	BossHPAfter  int `json:"boss_hp_after"`
	RawDamage    int `json:"raw_damage"`
	Defense      int `json:"defense"`
	NetDamage    int `json:"net_damage"`

	Retaliation        int                           `json:"retaliation"`
	RetaliationTarget  sharedtypes.FactionID         `json:"retaliation_target,omitempty"`
	RetaliationApplied int                           `json:"retaliation_applied"`
	Healed             map[sharedtypes.FactionID]int `json:"healed,omitempty"`
	PowersUsed         []sharedtypes.FactionID       `json:"powers_used,omitempty"`

	Ended       bool      `json:"ended"`
	EndedReason EndReason `json:"ended_reason,omitempty"`
}
