package sharedtypes

import (
	"encoding/json"
	"sort"
)

// UserID is a Discord user snowflake, stored as a string.
type UserID string

// GuildID is a Discord guild snowflake, stored as a string.
type GuildID string

func (u UserID) String() string  { return string(u) }
func (g GuildID) String() string { return string(g) }

// FactionID identifies one of the three fixed guild factions.
type FactionID string

const (
	FactionShieldborne FactionID = "shieldborne"
	FactionSpellfire   FactionID = "spellfire"
	FactionVerdant     FactionID = "verdant"
)

func (f FactionID) String() string { return string(f) }

// VoteAction is a seasonal boss vote choice.
type VoteAction string

const (
	ActionAttack VoteAction = "attack"
	ActionDefend VoteAction = "defend"
	ActionHeal   VoteAction = "heal"
	ActionPower  VoteAction = "power"
)

// VoteActions lists every recognized action in display order.
var VoteActions = []VoteAction{ActionAttack, ActionDefend, ActionHeal, ActionPower}

// IsValid reports whether the action is one of the four recognized votes.
func (a VoteAction) IsValid() bool {
	switch a {
	case ActionAttack, ActionDefend, ActionHeal, ActionPower:
		return true
	}
	return false
}

// Faction is the static definition of a guild faction.
type Faction struct {
	ID            FactionID
	Name          string
	Emoji         string
	Description   string
	DefaultAction VoteAction
}

// Factions holds the fixed faction table. The default action is the stat a
// power vote folds into during daily resolution.
var Factions = map[FactionID]Faction{
	FactionShieldborne: {
		ID:            FactionShieldborne,
		Name:          "Shieldborne Order",
		Emoji:         "🛡️",
		Description:   "Stalwart defenders who shield the guild and its allies.",
		DefaultAction: ActionDefend,
	},
	FactionSpellfire: {
		ID:            FactionSpellfire,
		Name:          "Spellfire Conclave",
		Emoji:         "🔥",
		Description:   "Mages and arcanists who wield raw power in the guild's name.",
		DefaultAction: ActionAttack,
	},
	FactionVerdant: {
		ID:            FactionVerdant,
		Name:          "Verdant Circle",
		Emoji:         "🌿",
		Description:   "Wardens of life and nature who keep the guild thriving.",
		DefaultAction: ActionHeal,
	},
}

// FactionIDs returns every faction id in a stable order.
func FactionIDs() []FactionID {
	return []FactionID{FactionShieldborne, FactionSpellfire, FactionVerdant}
}

// GetFaction looks up a faction definition by id.
func GetFaction(id FactionID) (Faction, bool) {
	f, ok := Factions[id]
	return f, ok
}

// UserSet is a set of user ids. It marshals as a sorted JSON list so the
// persisted documents stay diffable.
type UserSet map[UserID]struct{}

func (s UserSet) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return json.Marshal(ids)
}

func (s *UserSet) UnmarshalJSON(data []byte) error {
	var ids []UserID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	out := make(UserSet, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	*s = out
	return nil
}

// Contains reports set membership.
func (s UserSet) Contains(id UserID) bool {
	_, ok := s[id]
	return ok
}

// FactionSet is a set of faction ids, marshaled as a sorted JSON list.
type FactionSet map[FactionID]struct{}

func (s FactionSet) MarshalJSON() ([]byte, error) {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	return json.Marshal(ids)
}

func (s *FactionSet) UnmarshalJSON(data []byte) error {
	var ids []FactionID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	out := make(FactionSet, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	*s = out
	return nil
}

func (s FactionSet) Contains(id FactionID) bool {
	_, ok := s[id]
	return ok
}
