package wanderingservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

// SpawnEvent creates a new wandering event when the slot is free.
func (s *WanderingService) SpawnEvent(ctx context.Context, payload *wanderingevents.SpawnRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "SpawnEvent", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if payload.Difficulty != "" && !payload.Difficulty.IsValid() {
			return results.OperationResult{Failure: &wanderingevents.SpawnFailedPayload{
				GuildID: payload.GuildID,
				Reason:  ErrUnknownDifficulty.Error(),
			}}, nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		current, err := s.repo.Load(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		// An unresolved event blocks the slot. A resolved one still waiting
		// on its clear timer does not; the replacement takes its place and
		// the stale clear job becomes a no-op.
		if current != nil && !current.Resolved {
			return results.OperationResult{Failure: &wanderingevents.SpawnFailedPayload{
				GuildID: payload.GuildID,
				Reason:  ErrEventActive.Error(),
			}}, nil
		}

		var monster Monster
		if payload.Difficulty != "" {
			candidates := monstersByDifficulty(payload.Difficulty)
			monster = candidates[s.randInt(len(candidates))]
		} else {
			monster = pickRandomMonster(s.randInt)
		}

		preset := wanderingtypes.DifficultyTable[monster.Difficulty]
		now := time.Now().UTC()
		event := &wanderingtypes.Event{
			EventID:              uuid.New().String(),
			EndsAt:               now.Add(time.Duration(preset.Minutes) * time.Minute),
			DurationMinutes:      preset.Minutes,
			Title:                monster.Title,
			Description:          monster.Description,
			Difficulty:           monster.Difficulty,
			RequiredParticipants: preset.RequiredParticipants,
			FactionReward:        preset.FactionReward,
			GlobalReward:         preset.GlobalReward,
			XPReward:             preset.XPReward,
			ChannelID:            payload.ChannelID,
		}
		event.Normalize()

		if err := s.repo.Save(ctx, payload.GuildID, event); err != nil {
			return results.OperationResult{}, err
		}

		s.scheduleResolution(ctx, payload.GuildID, event.EventID, event.EndsAt)

		return results.OperationResult{Success: &wanderingevents.SpawnedPayload{
			GuildID: payload.GuildID,
			Event:   event,
		}}, nil
	})
}
