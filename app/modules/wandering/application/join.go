package wanderingservice

import (
	"context"
	"time"

	wanderingevents "github.com/jollyfox-guild/vale-bot/app/shared/events/wandering"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
)

// JoinEvent adds a member to the active event's hunting party.
func (s *WanderingService) JoinEvent(ctx context.Context, payload *wanderingevents.JoinRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "JoinEvent", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		failure := func(reason string) results.OperationResult {
			return results.OperationResult{Failure: &wanderingevents.JoinFailedPayload{
				GuildID: payload.GuildID,
				UserID:  payload.UserID,
				EventID: payload.EventID,
				Reason:  reason,
			}}
		}

		// Faction membership comes from the player directory, never from
		// the request.
		factionID, err := s.progression.PlayerFaction(ctx, payload.GuildID, payload.UserID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if factionID == "" {
			return failure(ErrNoFaction.Error()), nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		event, err := s.repo.Load(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if event == nil || (payload.EventID != "" && event.EventID != payload.EventID) {
			return failure(ErrNoEvent.Error()), nil
		}
		if event.Resolved || event.Expired(time.Now().UTC()) {
			return failure(ErrEventEnded.Error()), nil
		}

		joined := &wanderingevents.JoinedPayload{
			GuildID:      payload.GuildID,
			UserID:       payload.UserID,
			EventID:      event.EventID,
			Participants: len(event.Participants),
			Required:     event.RequiredParticipants,
		}
		if event.Participants.Contains(payload.UserID) {
			// Re-joining is harmless; report the current headcount.
			return results.OperationResult{Success: joined}, nil
		}

		event.Participants[payload.UserID] = struct{}{}
		event.ParticipatingFactions[factionID] = struct{}{}
		if err := s.repo.Save(ctx, payload.GuildID, event); err != nil {
			return results.OperationResult{}, err
		}

		joined.Participants = len(event.Participants)
		return results.OperationResult{Success: joined}, nil
	})
}
