package seasonservice

import (
	"context"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	seasonevents "github.com/jollyfox-guild/vale-bot/app/shared/events/season"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// RegisterVote records a voter's daily action for their faction. The voter
// is first removed from every action set of that faction, so voting is
// last-vote-wins and idempotent within a day.
func (s *SeasonService) RegisterVote(ctx context.Context, payload *seasonevents.VoteRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RegisterVote", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		failure := func(reason string) results.OperationResult {
			return results.FailureResult(&seasonevents.VoteFailedPayload{
				GuildID:   payload.GuildID,
				UserID:    payload.UserID,
				FactionID: payload.FactionID,
				Action:    payload.Action,
				Reason:    reason,
			})
		}

		if _, ok := sharedtypes.GetFaction(payload.FactionID); !ok {
			return failure(ErrUnknownFaction.Error()), nil
		}
		if !payload.Action.IsValid() {
			return failure(ErrUnknownAction.Error()), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		state, err := s.repo.Load(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}

		if !state.Active {
			return failure(ErrSeasonNotActive.Error()), nil
		}
		if !state.AliveFactions.Contains(payload.FactionID) {
			return failure(ErrFactionDefeated.Error()), nil
		}
		if payload.Action == sharedtypes.ActionPower {
			power := state.FactionPowers[payload.FactionID]
			if !power.Unlocked {
				return failure(ErrPowerNotUnlocked.Error()), nil
			}
			if power.Used {
				return failure(ErrPowerAlreadyUsed.Error()), nil
			}
		}

		for _, action := range sharedtypes.VoteActions {
			delete(state.Votes[payload.FactionID][action], payload.UserID)
		}
		state.Votes[payload.FactionID][payload.Action][payload.UserID] = struct{}{}

		if err := s.repo.Save(ctx, payload.GuildID, state); err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Vote recorded",
			attr.ExtractCorrelationID(ctx),
			attr.UserID("user_id", payload.UserID),
			attr.FactionID("faction_id", payload.FactionID),
			attr.String("action", string(payload.Action)),
		)

		return results.SuccessResult(&seasonevents.VoteRecordedPayload{
			GuildID:   payload.GuildID,
			UserID:    payload.UserID,
			FactionID: payload.FactionID,
			Action:    payload.Action,
		}), nil
	})
}

// PowerVoteEligible reports whether a faction's power votes form a strict
// majority of its combined daily votes. Zero votes is never a majority.
func PowerVoteEligible(state *seasontypes.SeasonState, factionID sharedtypes.FactionID) bool {
	total := 0
	for _, action := range sharedtypes.VoteActions {
		total += len(state.Votes[factionID][action])
	}
	if total == 0 {
		return false
	}
	return 2*len(state.Votes[factionID][sharedtypes.ActionPower]) > total
}
