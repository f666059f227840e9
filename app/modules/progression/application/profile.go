package progressionservice

import (
	"context"

	"github.com/jollyfox-guild/vale-bot/app/shared/attr"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// GetProfile returns a member's progression record for display.
func (s *ProgressionService) GetProfile(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "GetProfile", guildID, func(ctx context.Context) (results.OperationResult, error) {
		player, err := s.repo.GetPlayer(ctx, guildID, userID)
		if err != nil {
			return results.OperationResult{}, err
		}

		return results.SuccessResult(&progressionevents.ProfileRetrievedPayload{
			GuildID:          guildID,
			UserID:           userID,
			FactionID:        player.FactionID,
			XP:               player.XP,
			Level:            player.Level,
			MonstersSeason:   player.MonstersSeason,
			MonstersLifetime: player.MonstersLifetime,
		}), nil
	})
}

// JoinFaction assigns a member to a faction. Re-joining the same faction is
// a no-op success; switching factions is allowed and keeps progression.
func (s *ProgressionService) JoinFaction(ctx context.Context, payload *progressionevents.JoinFactionRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "JoinFaction", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		if _, ok := sharedtypes.GetFaction(payload.FactionID); !ok {
			return results.FailureResult(&progressionevents.FactionJoinFailedPayload{
				GuildID: payload.GuildID,
				UserID:  payload.UserID,
				Reason:  ErrUnknownFaction.Error(),
			}), nil
		}

		player, err := s.repo.GetPlayer(ctx, payload.GuildID, payload.UserID)
		if err != nil {
			return results.OperationResult{}, err
		}

		player.FactionID = payload.FactionID
		if err := s.repo.SavePlayer(ctx, payload.GuildID, player); err != nil {
			return results.OperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Member joined faction",
			attr.ExtractCorrelationID(ctx),
			attr.UserID("user_id", payload.UserID),
			attr.FactionID("faction_id", payload.FactionID),
		)

		return results.SuccessResult(&progressionevents.FactionJoinedPayload{
			GuildID:   payload.GuildID,
			UserID:    payload.UserID,
			FactionID: payload.FactionID,
		}), nil
	})
}

// PlayerFaction reports which faction a member belongs to.
func (s *ProgressionService) PlayerFaction(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (sharedtypes.FactionID, error) {
	player, err := s.repo.GetPlayer(ctx, guildID, userID)
	if err != nil {
		return "", err
	}
	return player.FactionID, nil
}
