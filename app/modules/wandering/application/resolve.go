package wanderingservice

import (
	"context"
	"sort"
	"time"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

// ResolveEvent settles an event at its deadline. Success needs the
// participation threshold met; failure pays out nothing. Either way the
// event stays on display until its clear timer fires.
func (s *WanderingService) ResolveEvent(ctx context.Context, guildID sharedtypes.GuildID, eventID string, now time.Time) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResolveEvent", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		event, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if event == nil || event.EventID != eventID {
			// The event was replaced or discarded; a stale timer fired.
			return results.OperationResult{Failure: ErrNoEvent.Error()}, nil
		}
		if event.Resolved {
			return results.OperationResult{Failure: ErrAlreadyResolved.Error()}, nil
		}

		outcome := &wanderingtypes.Outcome{
			EventID:      event.EventID,
			Title:        event.Title,
			Success:      event.Succeeded(),
			Participants: len(event.Participants),
			Required:     event.RequiredParticipants,
			Factions:     sortedFactions(event.ParticipatingFactions),
		}

		resolved := &wanderingevents.ResolvedPayload{
			GuildID: guildID,
			Outcome: outcome,
		}

		if outcome.Success {
			report, err := s.progression.AwardEventRewards(ctx, guildID, progressionservice.EventRewards{
				Participants:  event.Participants,
				Factions:      event.ParticipatingFactions,
				GlobalReward:  event.GlobalReward,
				FactionReward: event.FactionReward,
				XPReward:      event.XPReward,
			})
			if err != nil {
				return results.OperationResult{}, err
			}
			outcome.GlobalAwarded = event.GlobalReward
			outcome.FactionAwarded = event.FactionReward
			outcome.XPPerParticipant = event.XPReward
			resolved.PowerUnlocks = report.PowerUnlocks
			resolved.LevelUps = report.LevelUps
		}

		event.Resolved = true
		if err := s.repo.Save(ctx, guildID, event); err != nil {
			return results.OperationResult{}, err
		}

		s.scheduleClear(ctx, guildID, event.EventID, now.Add(s.clearGrace))

		return results.OperationResult{Success: resolved}, nil
	})
}

// ClearEvent removes a resolved event once its display grace window passes.
func (s *WanderingService) ClearEvent(ctx context.Context, guildID sharedtypes.GuildID, eventID string) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ClearEvent", guildID, func(ctx context.Context) (results.OperationResult, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		event, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if event == nil || event.EventID != eventID || !event.Resolved {
			// Already cleared, replaced, or still live. Stale timers are
			// expected after a spawn reclaims the slot.
			return results.OperationResult{Failure: ErrNoEvent.Error()}, nil
		}

		if err := s.repo.Save(ctx, guildID, nil); err != nil {
			return results.OperationResult{}, err
		}

		return results.OperationResult{Success: &wanderingevents.ClearedPayload{
			GuildID:   guildID,
			EventID:   event.EventID,
			ChannelID: event.ChannelID,
			MessageID: event.MessageID,
		}}, nil
	})
}

// StartupResume repairs event scheduling after a restart. An unresolved
// event whose deadline passed while the process was down is discarded
// rather than resolved late; live ones get their timers re-armed.
func (s *WanderingService) StartupResume(ctx context.Context, guildID sharedtypes.GuildID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.repo.Load(ctx, guildID)
	if err != nil {
		return err
	}
	if event == nil {
		return nil
	}

	if event.Resolved {
		s.scheduleClear(ctx, guildID, event.EventID, now.Add(s.clearGrace))
		return nil
	}

	if event.Expired(now) {
		s.logger.InfoContext(ctx, "Discarding wandering event that expired while offline",
			attr.GuildID("guild_id", guildID),
			attr.String("event_id", event.EventID),
			attr.String("title", event.Title),
		)
		return s.repo.Save(ctx, guildID, nil)
	}

	s.scheduleResolution(ctx, guildID, event.EventID, event.EndsAt)
	return nil
}

// GetState returns the current event, if any.
func (s *WanderingService) GetState(ctx context.Context, guildID sharedtypes.GuildID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetWanderingState", guildID, func(ctx context.Context) (results.OperationResult, error) {
		event, err := s.repo.Load(ctx, guildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		return results.OperationResult{Success: &wanderingevents.StateRetrievedPayload{
			GuildID: guildID,
			Event:   event,
		}}, nil
	})
}

func sortedFactions(set sharedtypes.FactionSet) []sharedtypes.FactionID {
	if len(set) == 0 {
		return nil
	}
	out := make([]sharedtypes.FactionID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
