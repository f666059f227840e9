package seasonservice

import (
	"context"
	"time"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// ResolveDue runs the daily resolution unless it already ran for the
// current UTC date, which makes the midnight job safe to re-run.
func (s *SeasonService) ResolveDue(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResolveDue", guildID, func(ctx context.Context) (results.OperationResult, error) {
		return s.resolve(ctx, guildID, now, false)
	})
}

// ForceResolve re-runs the resolution immediately, clearing votes even if
// the UTC date has not changed.
func (s *SeasonService) ForceResolve(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ForceResolve", guildID, func(ctx context.Context) (results.OperationResult, error) {
		return s.resolve(ctx, guildID, now, true)
	})
}

func (s *SeasonService) resolve(ctx context.Context, guildID sharedtypes.GuildID, now time.Time, forced bool) (results.OperationResult, error) {
	failure := func(reason string) results.OperationResult {
		return results.FailureResult(&seasonevents.ResolveFailedPayload{
			GuildID: guildID,
			Reason:  reason,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(ctx, guildID)
	if err != nil {
		return results.OperationResult{}, err
	}

	if !state.Active {
		return failure(ErrSeasonNotActive.Error()), nil
	}

	today := now.UTC().Format(time.DateOnly)
	if !forced && state.Date == today {
		return failure(ErrAlreadyResolved.Error()), nil
	}

	summary := ResolveDay(state, s.balance, s.randInt)
	state.Date = today

	if state.Active {
		state.Day++
		// Time expiry is a scheduling concern layered on top of the pure
		// HP-based end conditions.
		if s.maxDays > 0 && state.Day > s.maxDays {
			state.Active = false
			state.EndedReason = seasontypes.EndReasonTimeExpired
			summary.Ended = true
			summary.EndedReason = state.EndedReason
		}
	}

	state.ClearVotes()
	state.SnapshotAliveFactions()

	if err := s.repo.Save(ctx, guildID, state); err != nil {
		return results.OperationResult{}, err
	}

	s.logger.InfoContext(ctx, "Daily resolution complete",
		attr.ExtractCorrelationID(ctx),
		attr.GuildID("guild_id", guildID),
		attr.Int("day", summary.Day),
		attr.Int("net_damage", summary.NetDamage),
		attr.Int("boss_hp", summary.BossHPAfter),
		attr.Bool("forced", forced),
		attr.Bool("ended", summary.Ended),
	)

	return results.SuccessResult(&seasonevents.DayResolvedPayload{
		GuildID: guildID,
		Summary: *summary,
	}), nil
}
