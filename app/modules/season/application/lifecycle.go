package seasonservice

import (
	"context"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// StartSeason activates a new boss fight, carrying forward each faction's
// unlocked-power flag from the previous season.
func (s *SeasonService) StartSeason(ctx context.Context, payload *seasonevents.StartRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "StartSeason", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		failure := func(reason string) results.OperationResult {
			return results.FailureResult(&seasonevents.StartFailedPayload{
				GuildID: payload.GuildID,
				Reason:  reason,
			})
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		prev, err := s.repo.Load(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if prev.Active {
			return failure(ErrSeasonAlreadyActive.Error()), nil
		}

		state := seasontypes.NewSeasonState()
		state.Active = true
		if payload.BossName != "" {
			state.Boss.Name = payload.BossName
		}
		if payload.BossMaxHP > 0 {
			state.Boss.MaxHP = payload.BossMaxHP
			state.Boss.HP = payload.BossMaxHP
		}
		state.Boss.AvatarURL = payload.AvatarURL
		if payload.Difficulty.IsValid() {
			state.Difficulty = payload.Difficulty
		}
		if payload.BossType.IsValid() {
			state.BossType = payload.BossType
		}
		for fid, power := range prev.FactionPowers {
			state.FactionPowers[fid].Unlocked = power.Unlocked
		}
		state.EmbedChannelID = prev.EmbedChannelID
		state.EmbedMessageID = prev.EmbedMessageID
		state.SnapshotAliveFactions()

		if err := s.repo.Save(ctx, payload.GuildID, state); err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Season started",
			attr.ExtractCorrelationID(ctx),
			attr.GuildID("guild_id", payload.GuildID),
			attr.String("boss_name", state.Boss.Name),
			attr.String("difficulty", string(state.Difficulty)),
		)

		return results.SuccessResult(&seasonevents.StartedPayload{
			GuildID:  payload.GuildID,
			BossName: state.Boss.Name,
			Day:      state.Day,
		}), nil
	})
}

// ResetSeason restores every faction to full HP, clears all vote sets and
// used-power flags, keeps unlocked flags, and deactivates the fight.
func (s *SeasonService) ResetSeason(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResetSeason", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		state, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		state.Active = false
		state.Day = 1
		state.Date = ""
		state.EndedReason = seasontypes.EndReasonNone
		state.Boss.HP = state.Boss.MaxHP
		for _, fid := range sharedtypes.FactionIDs() {
			fh := state.FactionHealth[fid]
			fh.HP = fh.MaxHP
			state.FactionPowers[fid].Used = false
		}
		state.ClearVotes()
		state.SnapshotAliveFactions()

		if err := s.repo.Save(ctx, guildID, state); err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&seasonevents.ResetDonePayload{GuildID: guildID}), nil
	})
}

// UnlockPower marks a faction's seasonal power as available. Invoked when
// the progression module reports a crossed point threshold.
func (s *SeasonService) UnlockPower(ctx context.Context, guildID sharedtypes.GuildID, factionID sharedtypes.FactionID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "UnlockPower", guildID, func(ctx context.Context) (results.OperationResult, error) {
		if _, ok := sharedtypes.GetFaction(factionID); !ok {
			return results.FailureResult(&seasonevents.ResolveFailedPayload{
				GuildID: guildID,
				Reason:  ErrUnknownFaction.Error(),
			}), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		state, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if state.FactionPowers[factionID].Unlocked {
			// Idempotent; repeated threshold events are harmless.
			return results.SuccessResult(&seasonevents.StateRetrievedPayload{GuildID: guildID, State: state}), nil
		}

		state.FactionPowers[factionID].Unlocked = true
		if err := s.repo.Save(ctx, guildID, state); err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Faction power unlocked",
			attr.ExtractCorrelationID(ctx),
			attr.GuildID("guild_id", guildID),
			attr.FactionID("faction_id", factionID),
		)

		return results.SuccessResult(&seasonevents.StateRetrievedPayload{GuildID: guildID, State: state}), nil
	})
}

// GetState returns the current seasonal document for display.
func (s *SeasonService) GetState(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetState", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		state, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&seasonevents.StateRetrievedPayload{
			GuildID: guildID,
			State:   state,
		}), nil
	})
}
