package progressionservice

import (
	"context"
	"sort"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// AwardEventRewards pays out a successful wandering event. The global
// reward is credited once, the faction reward once per distinct
// participating faction, and every participant receives the XP reward plus
// a seasonal and lifetime kill credit.
//
// The report lists factions whose point total crossed the power-unlock
// threshold during this payout and members who leveled up, so the caller
// can publish the matching notifications.
func (s *ProgressionService) AwardEventRewards(ctx context.Context, guildID sharedtypes.GuildID, rewards EventRewards) (*RewardReport, error) {
	ctx, span := s.tracer.Start(ctx, "AwardEventRewards")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.repo.GetBoard(ctx, guildID)
	if err != nil {
		return nil, err
	}

	report := &RewardReport{LevelUps: make(map[sharedtypes.UserID]int)}

	board.GlobalPoints += rewards.GlobalReward
	report.GlobalPoints = board.GlobalPoints

	for _, fid := range sortedFactions(rewards.Factions) {
		before := board.FactionPoints[fid]
		board.FactionPoints[fid] = before + rewards.FactionReward
		if before < s.powerUnlockThreshold && board.FactionPoints[fid] >= s.powerUnlockThreshold {
			report.PowerUnlocks = append(report.PowerUnlocks, fid)
		}
	}

	if err := s.repo.SaveBoard(ctx, guildID, board); err != nil {
		return nil, err
	}

	for _, uid := range sortedUsers(rewards.Participants) {
		player, err := s.repo.GetPlayer(ctx, guildID, uid)
		if err != nil {
			return nil, err
		}
		player.MonstersSeason++
		player.MonstersLifetime++
		if gained := player.AddXP(rewards.XPReward); gained > 0 {
			report.LevelUps[uid] = player.Level
		}
		if err := s.repo.SavePlayer(ctx, guildID, player); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "Event rewards paid out",
		attr.ExtractCorrelationID(ctx),
		attr.GuildID("guild_id", guildID),
		attr.Int("participants", len(rewards.Participants)),
		attr.Int("factions", len(rewards.Factions)),
		attr.Int("global_points", board.GlobalPoints),
		attr.Int("power_unlocks", len(report.PowerUnlocks)),
	)

	return report, nil
}

func sortedFactions(set sharedtypes.FactionSet) []sharedtypes.FactionID {
	out := make([]sharedtypes.FactionID, 0, len(set))
	for fid := range set {
		out = append(out, fid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedUsers(set sharedtypes.UserSet) []sharedtypes.UserID {
	out := make([]sharedtypes.UserID, 0, len(set))
	for uid := range set {
		out = append(out, uid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
