package progressionservice

import (
	"context"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// GetScoreboard returns the guild's point standings.
func (s *ProgressionService) GetScoreboard(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetScoreboard", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		board, err := s.repo.GetBoard(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		standings := make([]progressionevents.FactionStanding, 0, len(sharedtypes.FactionIDs()))
		for _, fid := range sharedtypes.FactionIDs() {
			points := board.FactionPoints[fid]
			standings = append(standings, progressionevents.FactionStanding{
				FactionID:     fid,
				Points:        points,
				PowerUnlocked: points >= s.powerUnlockThreshold,
			})
		}

		return results.SuccessResult(&progressionevents.ScoreboardRetrievedPayload{
			GuildID:      guildID,
			GlobalPoints: board.GlobalPoints,
			SeasonGoal:   s.seasonGoal,
			Factions:     standings,
		}), nil
	})
}

// ResetSeason starts a fresh scoreboard season and zeroes every member's
// seasonal kill counter. Lifetime counters and levels survive.
func (s *ProgressionService) ResetSeason(ctx context.Context, guildID sharedtypes.GuildID, seasonID string) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResetSeason", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		board, err := s.repo.GetBoard(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		board.ResetSeason(seasonID)
		if err := s.repo.SaveBoard(ctx, guildID, board); err != nil {
			return results.OperationResult{}, err
		}
		if err := s.repo.ResetSeasonCounters(ctx, guildID); err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Scoreboard season reset",
			attr.ExtractCorrelationID(ctx),
			attr.GuildID("guild_id", guildID),
			attr.String("season_id", seasonID),
		)

		return results.SuccessResult(&progressionevents.ScoreboardRetrievedPayload{
			GuildID:      guildID,
			GlobalPoints: 0,
			Factions:     nil,
		}), nil
	})
}
