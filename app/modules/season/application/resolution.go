package seasonservice

import (
	"sort"

	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/jollyfox-guild/vale-bot/config"
)

// tally holds one faction's effective action counts after power folding.
type tally struct {
	attack int
	defend int
	heal   int
	power  int
}

// ResolveDay runs one daily resolution over the seasonal document, mutating
// it in place and returning the arithmetic summary. It is a pure function of
// the state, the balance constants, and the injected random source; callers
// own persistence and the day/date bookkeeping.
func ResolveDay(state *seasontypes.SeasonState, bal config.BalanceConfig, randInt func(n int) int) *seasontypes.ResolutionSummary {
	summary := &seasontypes.ResolutionSummary{
		Day:          state.Day,
		BossHPBefore: state.Boss.HP,
		Healed:       make(map[sharedtypes.FactionID]int),
	}

	// Tally per faction. Power votes still contribute to the faction's
	// identity stat, they are only tracked separately for eligibility.
	tallies := make(map[sharedtypes.FactionID]tally)
	totalAttack, totalDefend, totalHeal, totalVotes := 0, 0, 0, 0
	for _, fid := range sharedtypes.FactionIDs() {
		counts := state.VoteCounts(fid)
		t := tally{
			attack: counts[sharedtypes.ActionAttack],
			defend: counts[sharedtypes.ActionDefend],
			heal:   counts[sharedtypes.ActionHeal],
			power:  counts[sharedtypes.ActionPower],
		}
		totalVotes += t.attack + t.defend + t.heal + t.power
		switch sharedtypes.Factions[fid].DefaultAction {
		case sharedtypes.ActionAttack:
			t.attack += t.power
		case sharedtypes.ActionDefend:
			t.defend += t.power
		case sharedtypes.ActionHeal:
			t.heal += t.power
		}
		totalAttack += t.attack
		totalDefend += t.defend
		totalHeal += t.heal
		tallies[fid] = t
	}

	// Identity bonuses are flat per effective vote and additive.
	attackBonus := tallies[sharedtypes.FactionSpellfire].attack * bal.AttackBonusPerVote
	defenseBonus := tallies[sharedtypes.FactionShieldborne].defend * bal.DefenseBonusPerVote
	healBonus := tallies[sharedtypes.FactionVerdant].heal * bal.HealBonusPerVote

	// One-time power activation, at most once per season per faction.
	var spellfireSurge, shieldborneWard, verdantBloom bool
	for _, fid := range sharedtypes.FactionIDs() {
		power := state.FactionPowers[fid]
		if !power.Unlocked || power.Used || !PowerVoteEligible(state, fid) {
			continue
		}
		power.Used = true
		summary.PowersUsed = append(summary.PowersUsed, fid)
		switch fid {
		case sharedtypes.FactionSpellfire:
			spellfireSurge = true
		case sharedtypes.FactionShieldborne:
			shieldborneWard = true
		case sharedtypes.FactionVerdant:
			verdantBloom = true
		}
	}

	// Boss damage.
	rawDamage := totalAttack*bal.BaseAttackDamage + attackBonus
	if spellfireSurge {
		rawDamage *= bal.SpellfireMultiplier
	}
	defense := totalDefend*bal.BaseDefense + defenseBonus
	netDamage := rawDamage - defense
	if netDamage < 0 {
		netDamage = 0
	}
	state.Boss.HP -= netDamage
	if state.Boss.HP < 0 {
		state.Boss.HP = 0
	}
	summary.RawDamage = rawDamage
	summary.Defense = defense
	summary.NetDamage = netDamage
	summary.BossHPAfter = state.Boss.HP

	// Retaliation.
	retaliation := retaliationBase(state.Difficulty, bal) +
		state.Day*escalation(state.BossType, bal) +
		(totalVotes/5)*bal.RetaliationVoteScale -
		totalDefend*bal.DefendReduction
	if retaliation < 0 {
		retaliation = 0
	}
	summary.Retaliation = retaliation

	if !shieldborneWard && retaliation > 0 {
		if target, ok := pickRetaliationTarget(state, randInt); ok {
			fh := state.FactionHealth[target]
			applied := retaliation
			if applied > fh.HP {
				applied = fh.HP
			}
			fh.HP -= applied
			summary.RetaliationTarget = target
			summary.RetaliationApplied = applied
		}
	}

	// Healing: greedy pool distribution, lowest HP first, never overfilling.
	pool := totalHeal*bal.BaseHeal + healBonus
	for _, fid := range factionsByAscendingHP(state) {
		if pool <= 0 {
			break
		}
		fh := state.FactionHealth[fid]
		missing := fh.MaxHP - fh.HP
		if missing <= 0 {
			continue
		}
		granted := missing
		if granted > pool {
			granted = pool
		}
		fh.HP += granted
		pool -= granted
		summary.Healed[fid] += granted
	}

	// Verdant's bloom heals every faction a share of max HP, independent of
	// the pool.
	if verdantBloom {
		for _, fid := range sharedtypes.FactionIDs() {
			fh := state.FactionHealth[fid]
			bonus := int(float64(fh.MaxHP) * bal.VerdantMassHealPct)
			if fh.HP+bonus > fh.MaxHP {
				bonus = fh.MaxHP - fh.HP
			}
			if bonus > 0 {
				fh.HP += bonus
				summary.Healed[fid] += bonus
			}
		}
	}

	// End conditions. Factions falling checks first so a mutual kill counts
	// as a loss.
	allDown := true
	for _, fid := range sharedtypes.FactionIDs() {
		if state.FactionHealth[fid].HP > 0 {
			allDown = false
			break
		}
	}
	if allDown {
		state.Active = false
		state.EndedReason = seasontypes.EndReasonFactionsDefeated
	} else if state.Boss.HP == 0 {
		state.Active = false
		state.EndedReason = seasontypes.EndReasonBossDefeated
	}
	summary.Ended = !state.Active
	summary.EndedReason = state.EndedReason

	return summary
}

func retaliationBase(d seasontypes.Difficulty, bal config.BalanceConfig) int {
	switch d {
	case seasontypes.DifficultyEasy:
		return bal.RetaliationBaseEasy
	case seasontypes.DifficultyHard:
		return bal.RetaliationBaseHard
	default:
		return bal.RetaliationBaseNormal
	}
}

func escalation(b seasontypes.BossType, bal config.BalanceConfig) int {
	if b == seasontypes.BossMinor {
		return bal.EscalationMinor
	}
	return bal.EscalationSeasonal
}

// pickRetaliationTarget picks one faction with probability weighted by
// ascending HP rank: with N candidates the lowest-HP faction has weight N,
// the highest weight 1. Factions already at zero HP are not targets.
func pickRetaliationTarget(state *seasontypes.SeasonState, randInt func(n int) int) (sharedtypes.FactionID, bool) {
	var candidates []sharedtypes.FactionID
	for _, fid := range factionsByAscendingHP(state) {
		if state.FactionHealth[fid].HP > 0 {
			candidates = append(candidates, fid)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	n := len(candidates)
	totalWeight := n * (n + 1) / 2
	roll := randInt(totalWeight)
	for i, fid := range candidates {
		weight := n - i
		if roll < weight {
			return fid, true
		}
		roll -= weight
	}
	return candidates[len(candidates)-1], true
}

// factionsByAscendingHP returns the faction ids sorted by current HP, ties
// broken by the stable faction order.
func factionsByAscendingHP(state *seasontypes.SeasonState) []sharedtypes.FactionID {
	fids := sharedtypes.FactionIDs()
	sort.SliceStable(fids, func(i, j int) bool {
		return state.FactionHealth[fids[i]].HP < state.FactionHealth[fids[j]].HP
	})
	return fids
}
